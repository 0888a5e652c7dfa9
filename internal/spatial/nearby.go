package spatial

import (
	"sort"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// StationDistance pairs a station with its distance from a search center
type StationDistance struct {
	Station        models.Station
	DistanceMeters float64
}

// Nearby returns stations within radiusMeters of (lat, lon), closest first,
// capped at limit when limit > 0. Equal distances keep slug order.
func Nearby(stations []models.Station, lat, lon, radiusMeters float64, limit int) []StationDistance {
	center := s2.LatLngFromDegrees(lat, lon)
	searchCap := s2.CapFromCenterAngle(s2.PointFromLatLng(center), s1.Angle(radiusMeters/EarthRadiusMeters))

	var matches []StationDistance
	for _, s := range stations {
		ll := s2.LatLngFromDegrees(s.Latitude, s.Longitude)
		if !searchCap.ContainsPoint(s2.PointFromLatLng(ll)) {
			continue
		}
		matches = append(matches, StationDistance{
			Station:        s,
			DistanceMeters: center.Distance(ll).Radians() * EarthRadiusMeters,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceMeters != matches[j].DistanceMeters {
			return matches[i].DistanceMeters < matches[j].DistanceMeters
		}
		return matches[i].Station.StationID < matches[j].Station.StationID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
