// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"math"
	"testing"

	geo "github.com/go-gl/mathgl/mgl64"

	"github.com/algonents/wilhelm-renderer/core"
)

var swissCities = []struct {
	name   string
	lonLat geo.Vec2
}{
	{"Geneva", geo.Vec2{6.1432, 46.2044}},
	{"Lausanne", geo.Vec2{6.6323, 46.5197}},
	{"Bern", geo.Vec2{7.4474, 46.9480}},
	{"Sarnen", geo.Vec2{8.2457, 46.8959}},
	{"Zurich", geo.Vec2{8.5417, 47.3769}},
	{"St. Moritz", geo.Vec2{9.8355, 46.4908}},
}

func TestWebMercatorKnownValues(t *testing.T) {
	var proj core.WebMercator

	origin, err := proj.Project(geo.Vec2{0, 0})
	if err != nil {
		t.Fatalf("Project(0, 0): %v", err)
	}
	if math.Abs(origin.X()) > 1e-9 || math.Abs(origin.Y()) > 1e-9 {
		t.Errorf("origin projects to %v", origin)
	}

	edge, err := proj.Project(geo.Vec2{180, 0})
	if err != nil {
		t.Fatalf("Project(180, 0): %v", err)
	}
	want := math.Pi * core.EarthRadius
	if math.Abs(edge.X()-want) > 1e-6 {
		t.Errorf("antimeridian x = %.6f, want %.6f", edge.X(), want)
	}

	// Northern latitudes land above the equator.
	bern, err := proj.Project(geo.Vec2{7.4474, 46.9480})
	if err != nil {
		t.Fatalf("Project(Bern): %v", err)
	}
	if bern.Y() <= 0 {
		t.Errorf("Bern projects below the equator: %v", bern)
	}
}

func TestWebMercatorRoundTrip(t *testing.T) {
	var proj core.WebMercator

	for _, city := range swissCities {
		planar, err := proj.Project(city.lonLat)
		if err != nil {
			t.Fatalf("Project(%s): %v", city.name, err)
		}
		back, err := proj.Unproject(planar)
		if err != nil {
			t.Fatalf("Unproject(%s): %v", city.name, err)
		}
		if math.Abs(back.X()-city.lonLat.X()) > 1e-6 || math.Abs(back.Y()-city.lonLat.Y()) > 1e-6 {
			t.Errorf("%s round trip moved %v to %v", city.name, city.lonLat, back)
		}
	}

	for lat := -84.0; lat <= 84.0; lat += 12 {
		for lon := -180.0; lon <= 180.0; lon += 60 {
			planar, err := proj.Project(geo.Vec2{lon, lat})
			if err != nil {
				t.Fatalf("Project(%g, %g): %v", lon, lat, err)
			}
			back, err := proj.Unproject(planar)
			if err != nil {
				t.Fatalf("Unproject(%g, %g): %v", lon, lat, err)
			}
			if math.Abs(back.X()-lon) > 1e-6 || math.Abs(back.Y()-lat) > 1e-6 {
				t.Errorf("(%g, %g) round trip came back as %v", lon, lat, back)
			}
		}
	}
}

func TestWebMercatorRejectsPoles(t *testing.T) {
	var proj core.WebMercator

	for _, lat := range []float64{90, -90, 95, -120} {
		if _, err := proj.Project(geo.Vec2{0, lat}); err != core.ErrLatitudeRange {
			t.Errorf("Project(lat %g): err = %v, want ErrLatitudeRange", lat, err)
		}
	}

	if _, err := proj.Project(geo.Vec2{0, 89.9}); err != nil {
		t.Errorf("Project(lat 89.9): %v", err)
	}
}

func TestIdentityProjection(t *testing.T) {
	var proj core.Identity

	p := geo.Vec2{123.456, -654.321}
	projected, err := proj.Project(p)
	if err != nil || projected != p {
		t.Errorf("Project(%v) = %v, %v", p, projected, err)
	}
	back, err := proj.Unproject(projected)
	if err != nil || back != p {
		t.Errorf("Unproject(%v) = %v, %v", projected, back, err)
	}
}
