package geo

import "math"

const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two coordinates
// using the Haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// IsWithinGeofence reports whether a coordinate lies inside the circular
// authorized zone around a site. The boundary is inclusive.
func IsWithinGeofence(lat, lon, siteLat, siteLon, radiusMeters float64) bool {
	return DistanceKm(lat, lon, siteLat, siteLon)*1000 <= radiusMeters
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
