package mapview

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	churchPlaceType = "church"

	defaultResolveWorkers = 4
)

// Church is what the REST layer knows about a place.
type Church struct {
	ID           int64
	Denomination string
}

// ChurchResolver finds or creates the stored church for a place.
type ChurchResolver interface {
	Resolve(ctx context.Context, place Place) (*Church, error)
}

// PlacedMarker is a marker currently on the map. Church is nil when the
// place could not be resolved.
type PlacedMarker struct {
	ID     MarkerID
	Place  Place
	Church *Church
}

// Controller keeps the markers of a Map in sync with the nearby churches
// and the denomination filter.
type Controller struct {
	mu       sync.Mutex
	m        Map
	resolver ChurchResolver
	filter   string
	markers  map[MarkerID]PlacedMarker
	workers  int
	log      zerolog.Logger
}

func NewController(m Map, resolver ChurchResolver, log zerolog.Logger) *Controller {
	return &Controller{
		m:        m,
		resolver: resolver,
		markers:  make(map[MarkerID]PlacedMarker),
		workers:  defaultResolveWorkers,
		log:      log,
	}
}

// SetResolveWorkers sets how many places of one idle event are resolved at
// the same time.
func (c *Controller) SetResolveWorkers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workers = n
}

// SetDenominationFilter sets the filter used by the next idle event. An
// empty string shows every church.
func (c *Controller) SetDenominationFilter(denomination string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = strings.TrimSpace(denomination)
}

func (c *Controller) matches(church *Church) bool {
	if c.filter == "" {
		return true
	}
	return church != nil && strings.EqualFold(strings.TrimSpace(church.Denomination), c.filter)
}

// OnIdle runs after the map stops moving: it searches the visible area,
// replaces the markers and returns the ones placed. Idle events are handled
// one at a time.
func (c *Controller) OnIdle(ctx context.Context) ([]PlacedMarker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	places, err := c.m.SearchNearby(ctx, c.m.Bounds(), churchPlaceType)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	for id := range c.markers {
		c.m.RemoveMarker(id)
		delete(c.markers, id)
	}

	churches, errs := c.resolveAll(ctx, places)

	placed := make([]PlacedMarker, 0, len(places))
	for i, p := range places {
		church := churches[i]
		if errs[i] != nil {
			c.log.Warn().Err(errs[i]).Str("place_id", p.PlaceID).Msg("could not resolve church")
			church = nil
		}
		if !c.matches(church) {
			continue
		}

		id := c.m.PlaceMarker(Marker{PlaceID: p.PlaceID, Title: p.Name, Position: p.Location})
		pm := PlacedMarker{ID: id, Place: p, Church: church}
		c.markers[id] = pm
		placed = append(placed, pm)
	}

	c.log.Debug().Int("results", len(places)).Int("markers", len(placed)).Msg("map idle handled")
	return placed, nil
}

// resolveAll resolves every place on the worker pool. Results are indexed
// like places so markers keep the search order.
func (c *Controller) resolveAll(ctx context.Context, places []Place) ([]*Church, []error) {
	churches := make([]*Church, len(places))
	errs := make([]error, len(places))

	pool := NewWorkerPool(ctx, c.workers)
	pool.Start()
	for i, p := range places {
		// kept when the workers skip the task after ctx is done
		errs[i] = context.Canceled
		ok := pool.Submit(func(ctx context.Context) {
			churches[i], errs[i] = c.resolver.Resolve(ctx, p)
		})
		if !ok {
			errs[i] = ctx.Err()
		}
	}
	pool.Wait()

	return churches, errs
}

// Select returns the place behind a marker for the info panel.
func (c *Controller) Select(id MarkerID) (PlacedMarker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pm, ok := c.markers[id]
	return pm, ok
}

// Markers returns the current markers ordered by id.
func (c *Controller) Markers() []PlacedMarker {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]PlacedMarker, 0, len(c.markers))
	for _, pm := range c.markers {
		out = append(out, pm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
