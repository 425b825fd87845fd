package mapview

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dondi-c/church-finder/internal/google"
)

type fakeMap struct {
	places  []Place
	err     error
	markers map[MarkerID]Marker
	nextID  MarkerID
	removed []MarkerID
}

func newFakeMap(places ...Place) *fakeMap {
	return &fakeMap{places: places, markers: make(map[MarkerID]Marker)}
}

func (f *fakeMap) Create(LatLng, int) error { return nil }

func (f *fakeMap) PlaceMarker(m Marker) MarkerID {
	f.nextID++
	f.markers[f.nextID] = m
	return f.nextID
}

func (f *fakeMap) RemoveMarker(id MarkerID) {
	f.removed = append(f.removed, id)
	delete(f.markers, id)
}

func (f *fakeMap) SearchNearby(context.Context, Bounds, string) ([]Place, error) {
	return f.places, f.err
}

func (f *fakeMap) Bounds() Bounds { return Bounds{} }

type fakeResolver map[string]*Church

func (r fakeResolver) Resolve(_ context.Context, p Place) (*Church, error) {
	c, ok := r[p.PlaceID]
	if !ok {
		return nil, errors.New("resolve failed")
	}
	return c, nil
}

type fakeNearby struct {
	got     google.NearbyRequest
	results []google.Place
}

func (f *fakeNearby) NearbySearch(_ context.Context, req google.NearbyRequest) ([]google.Place, error) {
	f.got = req
	return f.results, nil
}

func places() []Place {
	return []Place{
		{PlaceID: "p1", Name: "St. Mary", Location: LatLng{Lat: 1, Lng: 1}},
		{PlaceID: "p2", Name: "Grace Chapel", Location: LatLng{Lat: 2, Lng: 2}},
		{PlaceID: "p3", Name: "Unknown", Location: LatLng{Lat: 3, Lng: 3}},
	}
}

func TestController_OnIdle_PlacesAllWithoutFilter(t *testing.T) {
	m := newFakeMap(places()...)
	resolver := fakeResolver{
		"p1": {ID: 1, Denomination: "Catholic"},
		"p2": {ID: 2, Denomination: "Baptist"},
	}
	c := NewController(m, resolver, zerolog.Nop())

	placed, err := c.OnIdle(context.Background())

	require.NoError(t, err)
	assert.Len(t, placed, 3)
	assert.Len(t, m.markers, 3)
	assert.Nil(t, placed[2].Church, "unresolved place keeps its marker")
}

func TestController_OnIdle_FiltersByDenomination(t *testing.T) {
	m := newFakeMap(places()...)
	resolver := fakeResolver{
		"p1": {ID: 1, Denomination: " catholic "},
		"p2": {ID: 2, Denomination: "Baptist"},
	}
	c := NewController(m, resolver, zerolog.Nop())
	c.SetDenominationFilter("Catholic")

	placed, err := c.OnIdle(context.Background())

	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, "p1", placed[0].Place.PlaceID)
}

func TestController_OnIdle_ReplacesPreviousMarkers(t *testing.T) {
	m := newFakeMap(places()[:1]...)
	c := NewController(m, fakeResolver{"p1": {ID: 1}}, zerolog.Nop())

	first, err := c.OnIdle(context.Background())
	require.NoError(t, err)
	_, err = c.OnIdle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []MarkerID{first[0].ID}, m.removed)
	assert.Len(t, m.markers, 1)
	assert.Len(t, c.Markers(), 1)
}

func TestController_OnIdle_SearchErrorKeepsMarkers(t *testing.T) {
	m := newFakeMap(places()[:1]...)
	c := NewController(m, fakeResolver{"p1": {ID: 1}}, zerolog.Nop())
	_, err := c.OnIdle(context.Background())
	require.NoError(t, err)

	m.err = errors.New("OVER_QUERY_LIMIT")
	_, err = c.OnIdle(context.Background())

	assert.Error(t, err)
	assert.Len(t, c.Markers(), 1)
}

func TestController_Select(t *testing.T) {
	m := newFakeMap(places()[:2]...)
	c := NewController(m, fakeResolver{"p1": {ID: 7, Denomination: "Catholic"}}, zerolog.Nop())
	placed, err := c.OnIdle(context.Background())
	require.NoError(t, err)

	pm, ok := c.Select(placed[0].ID)
	require.True(t, ok)
	assert.Equal(t, "St. Mary", pm.Place.Name)
	assert.Equal(t, int64(7), pm.Church.ID)

	_, ok = c.Select(MarkerID(999))
	assert.False(t, ok)
}

func TestPlacesMap_Create_Validates(t *testing.T) {
	m := NewPlacesMap(&fakeNearby{})

	assert.Error(t, m.Create(LatLng{Lat: 91}, 12))
	assert.Error(t, m.Create(LatLng{Lat: 10, Lng: 10}, 30))
	assert.NoError(t, m.Create(LatLng{Lat: 10, Lng: 10}, 12))
}

func TestPlacesMap_BoundsShrinkWithZoom(t *testing.T) {
	m := NewPlacesMap(&fakeNearby{})
	require.NoError(t, m.Create(LatLng{Lat: 14.5995, Lng: 120.9842}, 12))
	wide := m.Bounds()
	require.NoError(t, m.Create(LatLng{Lat: 14.5995, Lng: 120.9842}, 15))
	narrow := m.Bounds()

	assert.Greater(t, wide.RadiusMeters(), narrow.RadiusMeters())
	assert.InDelta(t, 14.5995, narrow.Center().Lat, 1e-9)
	assert.InDelta(t, 120.9842, narrow.Center().Lng, 1e-9)
}

func TestPlacesMap_SearchNearby(t *testing.T) {
	rating := 4.5
	nearby := &fakeNearby{results: []google.Place{
		{PlaceID: "p1", Name: "St. Mary", Vicinity: "Main St", Rating: &rating, Location: google.LatLng{Lat: 1, Lng: 2}},
	}}
	m := NewPlacesMap(nearby)
	require.NoError(t, m.Create(LatLng{Lat: 10, Lng: 20}, 14))

	got, err := m.SearchNearby(context.Background(), m.Bounds(), "church")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Main St", got[0].Vicinity)
	assert.Equal(t, LatLng{Lat: 1, Lng: 2}, got[0].Location)
	assert.Equal(t, "church", nearby.got.Type)
	assert.Greater(t, nearby.got.Radius, 0)
	assert.LessOrEqual(t, nearby.got.Radius, maxSearchRadius)
}

func TestPlacesMap_SearchNearby_CapsRadius(t *testing.T) {
	nearby := &fakeNearby{}
	m := NewPlacesMap(nearby)
	require.NoError(t, m.Create(LatLng{Lat: 0, Lng: 0}, 2))

	_, err := m.SearchNearby(context.Background(), m.Bounds(), "church")

	require.NoError(t, err)
	assert.Equal(t, maxSearchRadius, nearby.got.Radius)
}

func TestPlacesMap_Markers(t *testing.T) {
	m := NewPlacesMap(&fakeNearby{})
	a := m.PlaceMarker(Marker{PlaceID: "a"})
	b := m.PlaceMarker(Marker{PlaceID: "b"})
	assert.NotEqual(t, a, b)

	m.RemoveMarker(a)
	assert.Equal(t, 1, m.MarkerCount())
}

func TestDistance(t *testing.T) {
	// one degree of latitude is about 111 km
	d := Distance(LatLng{Lat: 0, Lng: 0}, LatLng{Lat: 1, Lng: 0})
	assert.InDelta(t, 111195, d, 100)
}

func TestController_OnIdle_KeepsSearchOrder(t *testing.T) {
	var many []Place
	resolver := fakeResolver{}
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("p%02d", i)
		many = append(many, Place{PlaceID: id})
		resolver[id] = &Church{ID: int64(i)}
	}
	c := NewController(newFakeMap(many...), resolver, zerolog.Nop())
	c.SetResolveWorkers(3)

	placed, err := c.OnIdle(context.Background())

	require.NoError(t, err)
	require.Len(t, placed, 20)
	for i, pm := range placed {
		assert.Equal(t, int64(i), pm.Church.ID)
	}
}

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	var done atomic.Int32
	pool := NewWorkerPool(context.Background(), 4)
	pool.Start()
	for i := 0; i < 50; i++ {
		require.True(t, pool.Submit(func(context.Context) { done.Add(1) }))
	}
	pool.Wait()

	assert.Equal(t, int32(50), done.Load())
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var done atomic.Int32
	pool := NewWorkerPool(ctx, 0)
	pool.Start()
	for i := 0; i < 10; i++ {
		pool.Submit(func(context.Context) { done.Add(1) })
	}
	pool.Wait()

	assert.Equal(t, int32(0), done.Load())
}
