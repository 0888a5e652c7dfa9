package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// StationBounds returns the bounding box and centroid of the stations, or
// nil when there are none
func StationBounds(stations []models.Station) *models.Bounds {
	if len(stations) == 0 {
		return nil
	}

	rect := s2.EmptyRect()
	var centroid s2.Point
	for _, s := range stations {
		ll := s2.LatLngFromDegrees(s.Latitude, s.Longitude)
		rect = rect.AddPoint(ll)
		centroid = s2.Point{Vector: centroid.Add(s2.PointFromLatLng(ll).Vector)}
	}
	center := s2.LatLngFromPoint(s2.Point{Vector: centroid.Normalize()})

	return &models.Bounds{
		MinLatitude:  rect.Lo().Lat.Degrees(),
		MinLongitude: rect.Lo().Lng.Degrees(),
		MaxLatitude:  rect.Hi().Lat.Degrees(),
		MaxLongitude: rect.Hi().Lng.Degrees(),
		Center:       [2]float64{center.Lng.Degrees(), center.Lat.Degrees()},
	}
}
