package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/jottings/internal/model"
)

var helsinki = model.Coordinate{Latitude: 60.1699, Longitude: 24.9384}

func TestZoom(t *testing.T) {
	r := NewRegion(helsinki)
	assert.Equal(t, DefaultLatitudeDelta, r.LatitudeDelta)
	assert.Equal(t, DefaultLongitudeDelta, r.LongitudeDelta)

	in := r.ZoomIn()
	assert.InDelta(t, DefaultLatitudeDelta/2, in.LatitudeDelta, 1e-12)
	assert.InDelta(t, DefaultLongitudeDelta/2, in.LongitudeDelta, 1e-12)
	assert.Equal(t, helsinki, in.Center)

	back := in.ZoomOut()
	assert.InDelta(t, DefaultLatitudeDelta, back.LatitudeDelta, 1e-12)
	assert.InDelta(t, DefaultLongitudeDelta, back.LongitudeDelta, 1e-12)

	// The receiver is a value; zooming returns a new region.
	assert.Equal(t, DefaultLatitudeDelta, r.LatitudeDelta)
}

func TestZoomOut_Capped(t *testing.T) {
	r := NewRegion(helsinki)
	for i := 0; i < 30; i++ {
		r = r.ZoomOut()
	}
	assert.Equal(t, 180.0, r.LatitudeDelta)
	assert.Equal(t, 360.0, r.LongitudeDelta)
	assert.Equal(t, 0, r.Zoom())
}

func TestBounds(t *testing.T) {
	r := Region{Center: model.Coordinate{Latitude: 89.99, Longitude: 0}, LatitudeDelta: 1, LongitudeDelta: 2}
	sw, ne := r.Bounds()
	assert.InDelta(t, 89.49, sw.Latitude, 1e-9)
	assert.Equal(t, 90.0, ne.Latitude)
	assert.Equal(t, -1.0, sw.Longitude)
	assert.Equal(t, 1.0, ne.Longitude)
}

func TestOSMURL(t *testing.T) {
	u := NewRegion(helsinki).OSMURL()
	assert.Equal(t, "https://www.openstreetmap.org/?mlat=60.16990&mlon=24.93840#map=13/60.16990/24.93840", u)
}
