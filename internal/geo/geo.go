package geo

import (
	"math"
	"time"
)

// EarthRadiusKm is the mean spherical Earth radius used for all
// great-circle math in this package.
const EarthRadiusKm = 6371.0

// FloorSpeedKmh is the minimum groundspeed assumed when estimating
// arrival times, so that zero or missing telemetry velocity never
// produces an unbounded ETA.
const FloorSpeedKmh = 800.0

// HaversineKm returns the great-circle distance in kilometers between
// two points given in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// ETA returns now plus the time to cover distKm at speedKmh, with
// speedKmh clamped up to FloorSpeedKmh.
func ETA(now time.Time, distKm, speedKmh float64) time.Time {
	if speedKmh < FloorSpeedKmh {
		speedKmh = FloorSpeedKmh
	}
	hours := distKm / speedKmh
	return now.Add(time.Duration(hours * float64(time.Hour)))
}

// MSToKmh converts meters per second, the unit live telemetry reports
// velocity in, to kilometers per hour.
func MSToKmh(ms float64) float64 {
	return ms * 3.6
}
