package crowd

import "time"

// Profile tunes the aggregation window and weighting for one kind of view
type Profile struct {
	Window            time.Duration // Reports older than this are ignored
	RecentWindow      time.Duration // Reports inside this sub-window get RecentBoost
	RecentBoost       float64
	DecayMinutes      float64 // Time constant of exp(-age/decay)
	Limit             int     // Newest N reports considered, 0 for all
	OverrideThreshold float64 // Weighted ordinal mean needed for the newest-high override
}

// MapProfile is used by the live map, nearby and statistics views
func MapProfile() Profile {
	return Profile{
		Window:            2 * time.Hour,
		RecentWindow:      10 * time.Minute,
		RecentBoost:       4,
		DecayMinutes:      60,
		OverrideThreshold: 2.0,
	}
}

// DetailProfile reacts faster and is used for the single-station view
func DetailProfile() Profile {
	return Profile{
		Window:            time.Hour,
		RecentWindow:      10 * time.Minute,
		RecentBoost:       4,
		DecayMinutes:      20,
		Limit:             10,
		OverrideThreshold: 2.0,
	}
}

// Since returns the inclusive lower bound of the window ending at now
func (p Profile) Since(now time.Time) time.Time {
	return now.Add(-p.Window)
}
