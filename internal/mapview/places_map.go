package mapview

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/dondi-c/church-finder/internal/google"
)

const (
	// Nearby Search rejects larger radii
	maxSearchRadius = 50000

	defaultViewportPx = 640
	maxZoom           = 21
)

// NearbySearcher is the part of the Google client PlacesMap needs.
type NearbySearcher interface {
	NearbySearch(ctx context.Context, req google.NearbyRequest) ([]google.Place, error)
}

// PlacesMap is a headless Map: the viewport is derived from a center and a
// zoom level, markers live in memory and searches go to Nearby Search.
type PlacesMap struct {
	mu         sync.Mutex
	client     NearbySearcher
	center     LatLng
	zoom       int
	viewportPx int
	markers    map[MarkerID]Marker
	nextID     MarkerID
}

func NewPlacesMap(client NearbySearcher) *PlacesMap {
	return &PlacesMap{
		client:     client,
		viewportPx: defaultViewportPx,
		markers:    make(map[MarkerID]Marker),
	}
}

func (p *PlacesMap) Create(center LatLng, zoom int) error {
	if center.Lat < -90 || center.Lat > 90 || center.Lng < -180 || center.Lng > 180 {
		return fmt.Errorf("invalid center %f,%f", center.Lat, center.Lng)
	}
	if zoom < 0 || zoom > maxZoom {
		return fmt.Errorf("zoom must be between 0 and %d", maxZoom)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.center = center
	p.zoom = zoom
	p.markers = make(map[MarkerID]Marker)
	return nil
}

// Bounds uses the Web Mercator ground resolution at the center latitude.
func (p *PlacesMap) Bounds() Bounds {
	p.mu.Lock()
	defer p.mu.Unlock()

	latRad := p.center.Lat * math.Pi / 180
	metersPerPixel := 156543.03392 * math.Cos(latRad) / math.Pow(2, float64(p.zoom))
	half := metersPerPixel * float64(p.viewportPx) / 2

	dLat := half / 111320
	dLng := half / (111320 * math.Max(math.Cos(latRad), 1e-6))

	return Bounds{
		NorthEast: LatLng{Lat: math.Min(p.center.Lat+dLat, 90), Lng: math.Min(p.center.Lng+dLng, 180)},
		SouthWest: LatLng{Lat: math.Max(p.center.Lat-dLat, -90), Lng: math.Max(p.center.Lng-dLng, -180)},
	}
}

func (p *PlacesMap) SearchNearby(ctx context.Context, bounds Bounds, placeType string) ([]Place, error) {
	center := bounds.Center()
	radius := int(math.Ceil(bounds.RadiusMeters()))
	if radius < 1 {
		radius = 1
	}
	if radius > maxSearchRadius {
		radius = maxSearchRadius
	}

	results, err := p.client.NearbySearch(ctx, google.NearbyRequest{
		Location: google.LatLng{Lat: center.Lat, Lng: center.Lng},
		Radius:   radius,
		Type:     placeType,
	})
	if err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		places = append(places, Place{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Vicinity: r.Vicinity,
			Location: LatLng{Lat: r.Location.Lat, Lng: r.Location.Lng},
			Rating:   r.Rating,
		})
	}
	return places, nil
}

func (p *PlacesMap) PlaceMarker(m Marker) MarkerID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.markers[p.nextID] = m
	return p.nextID
}

func (p *PlacesMap) RemoveMarker(id MarkerID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.markers, id)
}

// MarkerCount is the number of markers on the map.
func (p *PlacesMap) MarkerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.markers)
}
