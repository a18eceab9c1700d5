package geo

import (
	"math"

	"googlemaps.github.io/maps"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points using the haversine formula
func DistanceKm(a, b maps.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// PathKm sums the great-circle distance along a path
func PathKm(path []maps.LatLng) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += DistanceKm(path[i-1], path[i])
	}
	return total
}

// Bounds returns the smallest box containing every point of the path.
// An empty path yields a zero box.
func Bounds(path []maps.LatLng) maps.LatLngBounds {
	if len(path) == 0 {
		return maps.LatLngBounds{}
	}

	b := maps.LatLngBounds{NorthEast: path[0], SouthWest: path[0]}
	for _, p := range path[1:] {
		b = Extend(b, p)
	}
	return b
}

// Extend grows a box so it contains p
func Extend(b maps.LatLngBounds, p maps.LatLng) maps.LatLngBounds {
	b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
	b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
	b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
	b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
	return b
}

// Contains reports whether p lies inside the box (edges included)
func Contains(b maps.LatLngBounds, p maps.LatLng) bool {
	return p.Lat >= b.SouthWest.Lat && p.Lat <= b.NorthEast.Lat &&
		p.Lng >= b.SouthWest.Lng && p.Lng <= b.NorthEast.Lng
}

// Equal compares two points within a small tolerance
func Equal(a, b maps.LatLng) bool {
	const eps = 1e-9
	return math.Abs(a.Lat-b.Lat) < eps && math.Abs(a.Lng-b.Lng) < eps
}
