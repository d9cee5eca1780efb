package geo

// Bounds is an axis-aligned bounding box used to fit a map viewport
// around a collection of markers.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// FitBounds computes the bounding box of the given points. Points outside
// the valid coordinate ranges are skipped rather than corrupting the box,
// so a bad row can never crash or distort the viewport fit.
// Returns nil when no valid point remains.
func FitBounds(points []Point) *Bounds {
	var b *Bounds
	for _, p := range points {
		if !p.Valid() {
			continue
		}
		if b == nil {
			b = &Bounds{MinLat: p.Lat, MinLng: p.Lng, MaxLat: p.Lat, MaxLng: p.Lng}
			continue
		}
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lng < b.MinLng {
			b.MinLng = p.Lng
		}
		if p.Lng > b.MaxLng {
			b.MaxLng = p.Lng
		}
	}
	return b
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}
