package models

// Station represents a metro stop
type Station struct {
	StationID  string   `json:"stationId" db:"station_id"` // Stable slug, e.g. rajiv-chowk
	Name       string   `json:"name" db:"name"`
	Longitude  float64  `json:"longitude" db:"longitude"`
	Latitude   float64  `json:"latitude" db:"latitude"`
	Lines      []string `json:"lines" db:"-"`
	EntryCount int      `json:"entryCount,omitempty" db:"entry_count"`
}

// IsInterchange reports whether the station serves more than one line
func (s Station) IsInterchange() bool {
	return len(s.Lines) > 1
}

// Coordinates returns the point as [longitude, latitude]
func (s Station) Coordinates() [2]float64 {
	return [2]float64{s.Longitude, s.Latitude}
}

// StationView is the station shape returned by the map endpoints
type StationView struct {
	StationID     string     `json:"stationId"`
	Name          string     `json:"name"`
	Coordinates   [2]float64 `json:"coordinates"` // [lng, lat]
	Lines         []string   `json:"lines"`
	IsInterchange bool       `json:"isInterchange"`
}

// NewStationView builds the public station shape
func NewStationView(s Station) StationView {
	lines := s.Lines
	if lines == nil {
		lines = []string{}
	}
	return StationView{
		StationID:     s.StationID,
		Name:          s.Name,
		Coordinates:   s.Coordinates(),
		Lines:         lines,
		IsInterchange: s.IsInterchange(),
	}
}

// Bounds is the area covered by a set of stations
type Bounds struct {
	MinLatitude  float64    `json:"minLatitude"`
	MinLongitude float64    `json:"minLongitude"`
	MaxLatitude  float64    `json:"maxLatitude"`
	MaxLongitude float64    `json:"maxLongitude"`
	Center       [2]float64 `json:"center"` // [lng, lat]
}
