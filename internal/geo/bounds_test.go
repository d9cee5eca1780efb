package geo

import "testing"

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{name: "central park", lat: 40.7829, lng: -73.9654, want: true},
		{name: "equator meridian", lat: 0, lng: 0, want: true},
		{name: "north pole", lat: 90, lng: 0, want: true},
		{name: "date line", lat: 0, lng: -180, want: true},
		{name: "latitude too high", lat: 91, lng: 0, want: false},
		{name: "latitude too low", lat: -90.5, lng: 0, want: false},
		{name: "longitude too high", lat: 0, lng: 180.1, want: false},
		{name: "longitude too low", lat: 0, lng: -181, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCoordinates(tt.lat, tt.lng); got != tt.want {
				t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}

func TestFitBounds(t *testing.T) {
	points := []Point{
		{Lat: 40.7829, Lng: -73.9654},
		{Lat: 41.8781, Lng: -87.6298},
		{Lat: 34.0522, Lng: -118.2437},
	}

	b := FitBounds(points)
	if b == nil {
		t.Fatal("FitBounds() returned nil for valid points")
	}
	if b.MinLat != 34.0522 || b.MaxLat != 41.8781 {
		t.Errorf("latitude bounds = [%v, %v], want [34.0522, 41.8781]", b.MinLat, b.MaxLat)
	}
	if b.MinLng != -118.2437 || b.MaxLng != -73.9654 {
		t.Errorf("longitude bounds = [%v, %v], want [-118.2437, -73.9654]", b.MinLng, b.MaxLng)
	}
}

func TestFitBoundsSkipsInvalidPoints(t *testing.T) {
	points := []Point{
		{Lat: 40.7829, Lng: -73.9654},
		{Lat: 999, Lng: 999}, // corrupt row must not distort the box
		{Lat: -91, Lng: 0},
	}

	b := FitBounds(points)
	if b == nil {
		t.Fatal("FitBounds() returned nil despite one valid point")
	}
	if b.MinLat != 40.7829 || b.MaxLat != 40.7829 || b.MinLng != -73.9654 || b.MaxLng != -73.9654 {
		t.Errorf("bounds = %+v, want the single valid point", b)
	}
}

func TestFitBoundsEmpty(t *testing.T) {
	if b := FitBounds(nil); b != nil {
		t.Errorf("FitBounds(nil) = %+v, want nil", b)
	}
	if b := FitBounds([]Point{{Lat: 100, Lng: 200}}); b != nil {
		t.Errorf("FitBounds(all invalid) = %+v, want nil", b)
	}
}

func TestBoundsCenter(t *testing.T) {
	b := Bounds{MinLat: 10, MaxLat: 20, MinLng: -40, MaxLng: -20}
	c := b.Center()
	if c.Lat != 15 || c.Lng != -30 {
		t.Errorf("Center() = %+v, want {15 -30}", c)
	}
}
