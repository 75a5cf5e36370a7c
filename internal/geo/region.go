// Package geo holds the viewport math behind the map screen.
package geo

import (
	"fmt"
	"math"
	"net/url"

	"github.com/idilsaglam/jottings/internal/model"
)

// Default span of a freshly opened map, in degrees.
const (
	DefaultLatitudeDelta  = 0.0922
	DefaultLongitudeDelta = 0.0421
)

// Region is a map viewport: a center and the span shown around it.
type Region struct {
	Center         model.Coordinate
	LatitudeDelta  float64
	LongitudeDelta float64
}

// NewRegion centers the default span on c.
func NewRegion(c model.Coordinate) Region {
	return Region{Center: c, LatitudeDelta: DefaultLatitudeDelta, LongitudeDelta: DefaultLongitudeDelta}
}

// ZoomIn halves the span.
func (r Region) ZoomIn() Region {
	r.LatitudeDelta /= 2
	r.LongitudeDelta /= 2
	return r
}

// ZoomOut doubles the span, capped at the whole globe.
func (r Region) ZoomOut() Region {
	r.LatitudeDelta = math.Min(r.LatitudeDelta*2, 180)
	r.LongitudeDelta = math.Min(r.LongitudeDelta*2, 360)
	return r
}

// Bounds returns the south-west and north-east corners of the viewport,
// clamped to valid latitudes and longitudes.
func (r Region) Bounds() (sw, ne model.Coordinate) {
	halfLat, halfLon := r.LatitudeDelta/2, r.LongitudeDelta/2
	sw = model.Coordinate{
		Latitude:  clamp(r.Center.Latitude-halfLat, -90, 90),
		Longitude: clamp(r.Center.Longitude-halfLon, -180, 180),
	}
	ne = model.Coordinate{
		Latitude:  clamp(r.Center.Latitude+halfLat, -90, 90),
		Longitude: clamp(r.Center.Longitude+halfLon, -180, 180),
	}
	return sw, ne
}

// Zoom converts the span to the closest web-map zoom level (0-19).
func (r Region) Zoom() int {
	if r.LongitudeDelta <= 0 {
		return 19
	}
	z := int(math.Round(math.Log2(360 / r.LongitudeDelta)))
	return max(0, min(19, z))
}

// OSMURL links to openstreetmap.org with a marker on the center.
func (r Region) OSMURL() string {
	lat := fmt.Sprintf("%.5f", r.Center.Latitude)
	lon := fmt.Sprintf("%.5f", r.Center.Longitude)
	q := url.Values{}
	q.Set("mlat", lat)
	q.Set("mlon", lon)
	return fmt.Sprintf("https://www.openstreetmap.org/?%s#map=%d/%s/%s", q.Encode(), r.Zoom(), lat, lon)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
