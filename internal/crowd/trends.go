package crowd

import (
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/stats"
)

// TrendWindow is how far back hourly trends look
const TrendWindow = 24 * time.Hour

// HourlyTrends buckets reports by hour of day in loc and names the dominant level per hour
func HourlyTrends(reports []models.Report, now time.Time, loc *time.Location) []models.HourlyTrend {
	if loc == nil {
		loc = time.Local
	}
	since := now.Add(-TrendWindow)

	trends := make([]models.HourlyTrend, 24)
	for i := range trends {
		trends[i].Hour = i
	}

	for _, r := range reports {
		if r.CreatedAt.Before(since) {
			continue
		}
		level, ok := models.ParseCrowdLevel(string(r.Level))
		if !ok {
			continue
		}
		h := r.CreatedAt.In(loc).Hour()
		trends[h].Counts.Add(level)
		trends[h].Total++
	}

	for i := range trends {
		if trends[i].Total == 0 {
			continue
		}
		dominant := dominantLevel(trends[i].Counts)
		trends[i].Level = &dominant
	}
	return trends
}

func dominantLevel(c models.LevelCounts) models.CrowdLevel {
	best := models.CrowdLow
	bestCount := -1
	for _, l := range models.CrowdLevels {
		if n := c.Get(l); n > bestCount {
			best = l
			bestCount = n
		}
	}
	return best
}

// Summarize builds network-wide statistics from per-station estimates
func Summarize(estimates []models.CrowdEstimate, now time.Time) models.CrowdStatistics {
	summary := models.CrowdStatistics{
		TotalStations: len(estimates),
		Timestamp:     now,
	}

	var confidences []float64
	var observed models.LevelCounts
	for _, e := range estimates {
		summary.Levels.Add(e.Level)
		summary.ReportsInWindow += e.ReportCount
		if e.ReportCount > 0 {
			summary.StationsWithData++
			confidences = append(confidences, float64(e.Confidence))
			observed.Add(e.Level)
		}
	}

	summary.AverageConfidence = stats.Mean(confidences)
	summary.MedianConfidence = stats.Percentile(confidences, 50)
	summary.LevelSpread = stats.NormalizedEntropy([]float64{
		float64(observed.Low), float64(observed.Moderate), float64(observed.High),
	})
	return summary
}
