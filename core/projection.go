// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"math"

	geo "github.com/go-gl/mathgl/mgl64"
)

// EarthRadius is the sphere radius web mercator projects onto, in
// meters.
const EarthRadius = 6378137.0

// ErrLatitudeRange is returned for latitudes at or beyond the poles,
// where the mercator ordinate diverges.
var ErrLatitudeRange = errors.New("latitude out of projectable range")

// Projection maps geographic coordinates onto planar world units and
// back. Geographic pairs are longitude and latitude in degrees.
// Projections run in double precision, meter scale coordinates eat
// most of a float32 mantissa on their own.
type Projection interface {
	// Project maps a longitude, latitude pair onto the plane.
	Project(lonLat geo.Vec2) (geo.Vec2, error)

	// Unproject maps a plane point back to longitude and latitude.
	Unproject(xy geo.Vec2) (geo.Vec2, error)
}

// Identity passes coordinates through untouched, for drawings that
// already live in plane units.
type Identity struct{}

// Project implements interface
func (Identity) Project(lonLat geo.Vec2) (geo.Vec2, error) {
	return lonLat, nil
}

// Unproject implements interface
func (Identity) Unproject(xy geo.Vec2) (geo.Vec2, error) {
	return xy, nil
}

// WebMercator is the spherical mercator projection in meters, the
// scheme web maps tile in.
type WebMercator struct{}

// Project implements interface
func (WebMercator) Project(lonLat geo.Vec2) (geo.Vec2, error) {
	lat := lonLat.Y()
	if math.Abs(lat) >= 90 {
		return geo.Vec2{}, ErrLatitudeRange
	}
	x := lonLat.X() * math.Pi / 180 * EarthRadius
	y := math.Log(math.Tan(math.Pi/4+lat*math.Pi/180/2)) * EarthRadius
	return geo.Vec2{x, y}, nil
}

// Unproject implements interface
func (WebMercator) Unproject(xy geo.Vec2) (geo.Vec2, error) {
	lon := xy.X() / EarthRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(xy.Y()/EarthRadius)) - math.Pi/2) * 180 / math.Pi
	return geo.Vec2{lon, lat}, nil
}
