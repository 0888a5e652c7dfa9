// Package crowd fuses community reports into a per-station crowd estimate.
package crowd

import (
	"math"
	"sort"
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// confidenceSaturation is the report count at which volume stops limiting confidence
const confidenceSaturation = 5

// TimeWeight is exp(-ageMinutes/decayMinutes). Negative ages count as zero.
func TimeWeight(ageMinutes, decayMinutes float64) float64 {
	if ageMinutes < 0 {
		ageMinutes = 0
	}
	if decayMinutes <= 0 {
		return 1
	}
	return math.Exp(-ageMinutes / decayMinutes)
}

// CredibilityWeight grows logarithmically with likes
func CredibilityWeight(likes int) float64 {
	if likes < 0 {
		likes = 0
	}
	return 1 + math.Log(float64(likes)+1)*0.3
}

// Empty is the estimate reported when no reports fall in the window
func Empty(stationID string) models.CrowdEstimate {
	return models.CrowdEstimate{StationID: stationID, Level: models.CrowdLow}
}

// Aggregate computes the crowd estimate for one station at instant now.
// It is a pure function of its arguments.
func Aggregate(stationID string, reports []models.Report, now time.Time, p Profile) models.CrowdEstimate {
	since := p.Since(now)

	eligible := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if p.Window > 0 && r.CreatedAt.Before(since) {
			continue
		}
		level, ok := models.ParseCrowdLevel(string(r.Level))
		if !ok {
			continue
		}
		r.Level = level
		eligible = append(eligible, r)
	}
	if len(eligible) == 0 {
		return Empty(stationID)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if !eligible[i].CreatedAt.Equal(eligible[j].CreatedAt) {
			return eligible[i].CreatedAt.After(eligible[j].CreatedAt)
		}
		return eligible[i].ID < eligible[j].ID
	})
	if p.Limit > 0 && len(eligible) > p.Limit {
		eligible = eligible[:p.Limit]
	}

	scores := make(map[models.CrowdLevel]float64, len(models.CrowdLevels))
	var total float64
	for _, r := range eligible {
		age := now.Sub(r.CreatedAt)
		w := TimeWeight(age.Minutes(), p.DecayMinutes) * CredibilityWeight(r.Likes)
		if p.RecentBoost > 0 && age <= p.RecentWindow {
			w *= p.RecentBoost
		}
		scores[r.Level] += w
		total += w
	}
	if total > 0 {
		for level := range scores {
			scores[level] /= total
		}
	}

	level := pickLevel(scores)

	var mean float64
	for _, l := range models.CrowdLevels {
		mean += scores[l] * l.Ordinal()
	}
	if eligible[0].Level == models.CrowdHigh && mean >= p.OverrideThreshold {
		level = models.CrowdHigh
	}

	volume := math.Min(1, float64(len(eligible))/confidenceSaturation)
	confidence := int(math.Min(100, math.Round(scores[level]*100*volume)))

	lastUpdated := eligible[0].CreatedAt
	return models.CrowdEstimate{
		StationID:   stationID,
		Level:       level,
		Confidence:  confidence,
		ReportCount: len(eligible),
		LastUpdated: &lastUpdated,
		Distribution: models.Distribution{
			Low:      int(math.Round(scores[models.CrowdLow] * 100)),
			Moderate: int(math.Round(scores[models.CrowdModerate] * 100)),
			High:     int(math.Round(scores[models.CrowdHigh] * 100)),
		},
	}
}

// pickLevel returns the level with the strictly greatest score. Levels are
// visited high first, so exact ties resolve high > moderate > low.
func pickLevel(scores map[models.CrowdLevel]float64) models.CrowdLevel {
	best := models.CrowdLow
	bestScore := math.Inf(-1)
	for _, l := range models.CrowdLevels {
		if scores[l] > bestScore {
			best = l
			bestScore = scores[l]
		}
	}
	return best
}

// GroupByStation splits a mixed report slice by station slug
func GroupByStation(reports []models.Report) map[string][]models.Report {
	grouped := make(map[string][]models.Report)
	for _, r := range reports {
		grouped[r.StationID] = append(grouped[r.StationID], r)
	}
	return grouped
}
