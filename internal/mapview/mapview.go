package mapview

import (
	"context"
	"math"
)

const earthRadiusMeters = 6371008.8

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Bounds is the visible rectangle of a map.
type Bounds struct {
	NorthEast LatLng
	SouthWest LatLng
}

func (b Bounds) Center() LatLng {
	return LatLng{
		Lat: (b.NorthEast.Lat + b.SouthWest.Lat) / 2,
		Lng: (b.NorthEast.Lng + b.SouthWest.Lng) / 2,
	}
}

// RadiusMeters is the distance from the center to the north-east corner,
// the smallest circle that covers the rectangle.
func (b Bounds) RadiusMeters() float64 {
	return Distance(b.Center(), b.NorthEast)
}

// Distance is the great-circle distance between two points (haversine).
func Distance(a, b LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Place is a nearby search result.
type Place struct {
	PlaceID  string
	Name     string
	Vicinity string
	Location LatLng
	Rating   *float64
}

// Marker is a pin on the map.
type Marker struct {
	PlaceID  string
	Title    string
	Position LatLng
}

type MarkerID int

// Map is the part of a mapping SDK the application uses.
type Map interface {
	Create(center LatLng, zoom int) error
	PlaceMarker(m Marker) MarkerID
	RemoveMarker(id MarkerID)
	SearchNearby(ctx context.Context, bounds Bounds, placeType string) ([]Place, error)
	Bounds() Bounds
}
