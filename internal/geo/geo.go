// Package geo provides the great-circle distance used when ranking places
// around a lookup origin.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Distance returns the haversine great-circle distance between two
// latitude/longitude pairs (degrees), rounded to the nearest whole meter.
func Distance(lat1, lng1, lat2, lng2 float64) int {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	deltaPhi := radians(lat2 - lat1)
	deltaLambda := radians(lng2 - lng1)

	a := math.Pow(math.Sin(deltaPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(deltaLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return int(math.Round(earthRadiusMeters * c))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
