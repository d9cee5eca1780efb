// Package geo provides coordinate validation and map viewport helpers.
package geo

// Point represents a geographic coordinate with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies within the WGS84 coordinate ranges
// (-90..90 latitude, -180..180 longitude).
func (p Point) Valid() bool {
	return ValidCoordinates(p.Lat, p.Lng)
}

// ValidCoordinates reports whether a raw lat/lng pair is within range.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
