package models

// Edge is an undirected connection between two stations
type Edge struct {
	ID     int64   `json:"id,omitempty" db:"id"`
	From   string  `json:"from" db:"from_id"`
	To     string  `json:"to" db:"to_id"`
	Weight float64 `json:"weight" db:"weight"` // Distance or travel time, never negative
	Line   string  `json:"line,omitempty" db:"line"`
}
