package analytics

import (
	"time"
)

const (
	seasonalityPeriod = 7
	forecastDays      = 7
)

// AnalyzeTimeSeries composes the statistical primitives over the bucketed
// daily activity: trends for created, completed and the derived backlog
// series, plus smoothing, anomaly detection, weekly-pattern detection and a
// 7-day forecast for the two observed series.
func AnalyzeTimeSeries(activity []DailyActivity, now time.Time) TimeSeriesAnalysis {
	created := make([]float64, len(activity))
	completed := make([]float64, len(activity))
	for i, day := range activity {
		created[i] = float64(day.Created)
		completed[i] = float64(day.Completed)
	}

	backlog := make([]float64, len(activity))
	var runCreated, runCompleted float64
	for i := range activity {
		runCreated += created[i]
		runCompleted += completed[i]
		backlog[i] = runCreated - runCompleted
	}

	window := len(activity) / 2
	if window > 7 {
		window = 7
	}

	dates := make([]string, forecastDays)
	for i := range dates {
		dates[i] = DayStart(now).AddDate(0, 0, i+1).Format(dateLayout)
	}

	return TimeSeriesAnalysis{
		Trends: SeriesTrends{
			Created:   fitSeries(created),
			Completed: fitSeries(completed),
			Backlog:   fitSeries(backlog),
		},
		MovingAverages: SeriesMovingAverages{
			Created:   MovingAverage(created, window),
			Completed: MovingAverage(completed, window),
		},
		Anomalies: SeriesAnomalies{
			Created:   DetectAnomalies(created, DefaultAnomalyThreshold),
			Completed: DetectAnomalies(completed, DefaultAnomalyThreshold),
		},
		Seasonality: SeriesSeasonality{
			Created:   DetectSeasonality(created, seasonalityPeriod),
			Completed: DetectSeasonality(completed, seasonalityPeriod),
		},
		Forecast: ForecastResult{
			Created:   Forecast(created, forecastDays),
			Completed: Forecast(completed, forecastDays),
			Dates:     dates,
		},
	}
}

func fitSeries(series []float64) TrendResult {
	points := make([]Point, len(series))
	for i, v := range series {
		points[i] = Point{X: float64(i), Y: v}
	}
	return FitLine(points)
}
