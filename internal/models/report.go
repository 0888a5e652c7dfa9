package models

import "time"

// Report is a community observation of crowding at a station
type Report struct {
	ID        string     `json:"id" db:"id"`                // UUID
	StationID string     `json:"station" db:"station_id"`   // Station slug, not enforced as a foreign key
	Level     CrowdLevel `json:"level" db:"level"`
	Remarks   string     `json:"remarks" db:"remarks"`
	UserID    string     `json:"userId" db:"user_id"`
	Likes     int        `json:"likes" db:"likes"`
	Verified  bool       `json:"verified" db:"verified"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// ReportQuery is the trailing-window read the aggregator needs
type ReportQuery struct {
	StationIDs []string  // Empty means every station
	Since      time.Time // Inclusive lower bound on created_at
	Limit      int       // 0 means no cap
}

// CreateReportRequest is the body of POST /api/reports/submit
type CreateReportRequest struct {
	Station string `json:"station"`
	Level   string `json:"level"`
	Remarks string `json:"remarks"`
	UserID  string `json:"userId"`
}

// ReportView is a report as listed by the API
type ReportView struct {
	Report
	TimeAgo   string `json:"timeAgo"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// StationSummary is the latest known state of one station from raw reports
type StationSummary struct {
	Station     string     `json:"station"`
	Level       CrowdLevel `json:"level"`
	Remarks     string     `json:"remarks"`
	LastUpdate  time.Time  `json:"-"`
	LastUpdated string     `json:"lastUpdate"`
	ReportCount int        `json:"reportCount"`
}

// StationDetails is the single-station live view
type StationDetails struct {
	Station              StationView   `json:"station"`
	Crowd                CrowdEstimate `json:"crowd"`
	RecentReports        []ReportView  `json:"recentReports"`
	TotalReportsLastHour int           `json:"totalReportsLastHour"`
}
