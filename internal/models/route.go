package models

// RouteRequest is the body of POST /api/routes/shortest
type RouteRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RouteResponse describes the shortest path between two named stations
type RouteResponse struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Path       []string `json:"path"`       // Station display names
	StationIDs []string `json:"stationIds"` // Same path as slugs
	Distance   float64  `json:"distance"`
}
