// Package geo computes transit distances between the shore base and the
// offshore facilities, for the facilities listing and voyage planning aids.
package geo

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// ShoreBase is Port Fourchon, the supply base every voyage originates from.
var ShoreBase = geom.Coord{-90.1995, 29.1258}

const (
	earthRadiusNM = 3440.065 // nautical miles
)

// Position returns the facility's coordinate, ok=false when the registry has
// no position for it.
func Position(f model.Facility) (geom.Coord, bool) {
	if f.Longitude == 0 && f.Latitude == 0 {
		return nil, false
	}
	return geom.Coord{f.Longitude, f.Latitude}, true
}

// DistanceNM is the great-circle distance between two coordinates in
// nautical miles (haversine).
func DistanceNM(a, b geom.Coord) float64 {
	lat1 := a.Y() * math.Pi / 180
	lat2 := b.Y() * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.X() - a.X()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusNM * math.Asin(math.Sqrt(h))
}

// TransitNM is the one-way distance from the shore base to the facility.
// ok is false when the facility carries no position.
func TransitNM(f model.Facility) (float64, bool) {
	pos, ok := Position(f)
	if !ok {
		return 0, false
	}
	return DistanceNM(ShoreBase, pos), true
}
