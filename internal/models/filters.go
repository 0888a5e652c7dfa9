package models

// Report sort fields
const (
	SortByCreatedAt = "createdAt"
	SortByLikes     = "likes"
)

// ReportFilter represents filter parameters for listing reports
type ReportFilter struct {
	Station string `form:"station"` // Case-insensitive substring of the station slug
	Level   string `form:"level"`   // low, moderate, high (synonyms accepted)
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	Sort    string `form:"sort"` // createdAt, likes
}

// Normalize applies defaults and bounds
func (f *ReportFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 12
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Sort != SortByLikes {
		f.Sort = SortByCreatedAt
	}
}

// NearbyFilter represents query parameters for the nearby-stations view
type NearbyFilter struct {
	Longitude   string `form:"longitude"`
	Latitude    string `form:"latitude"`
	MaxDistance string `form:"maxDistance"` // Meters
}
