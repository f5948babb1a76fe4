package analytics

import (
	"math"
)

// DefaultAnomalyThreshold is the z-score above which a point is flagged.
const DefaultAnomalyThreshold = 2.0

// Point is one (x, y) observation for the least-squares fit.
type Point struct {
	X float64
	Y float64
}

// FitLine performs an ordinary least-squares regression. A series shorter
// than two points has no defined slope and yields the zero result rather
// than an error. A zero variance in either axis likewise degrades to zero
// instead of dividing by zero.
func FitLine(points []Point) TrendResult {
	n := len(points)
	if n < 2 {
		return TrendResult{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXY, ssXX, ssYY float64
	for _, p := range points {
		dx := p.X - meanX
		dy := p.Y - meanY
		ssXY += dx * dy
		ssXX += dx * dx
		ssYY += dy * dy
	}

	if ssXX == 0 {
		return TrendResult{}
	}

	slope := ssXY / ssXX
	res := TrendResult{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}
	if denom := ssXX * ssYY; denom != 0 {
		res.RSquared = (ssXY * ssXY) / denom
	}
	return res
}

// DetectAnomalies flags points whose population z-score reaches threshold.
// The boundary is inclusive so a point sitting exactly at the threshold
// counts as an outlier. Series shorter than three points carry too little
// signal and return nil. A flat series (zero deviation) has no outliers by
// definition.
func DetectAnomalies(series []float64, threshold float64) []Anomaly {
	if len(series) < 3 {
		return nil
	}

	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / float64(len(series))

	var sqDiff float64
	for _, v := range series {
		sqDiff += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(sqDiff / float64(len(series)))
	if stdDev == 0 {
		return nil
	}

	var anomalies []Anomaly
	for i, v := range series {
		z := math.Abs((v - mean) / stdDev)
		if z >= threshold {
			anomalies = append(anomalies, Anomaly{
				Index:     i,
				Value:     v,
				ZScore:    z,
				IsAnomaly: true,
			})
		}
	}
	return anomalies
}

// MovingAverage computes a simple trailing average over a sliding window,
// producing len(series)-window+1 values rounded to one decimal. A series
// shorter than the window returns nil.
func MovingAverage(series []float64, window int) []float64 {
	if window < 1 || len(series) < window {
		return nil
	}

	result := make([]float64, 0, len(series)-window+1)
	var sum float64
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}
		if i >= window-1 {
			result = append(result, round1(sum/float64(window)))
		}
	}
	return result
}

// DetectSeasonality averages same-position values across all complete
// periods and measures how closely the actual series tracks that pattern.
// Strength is 1 minus the mean relative deviation sampled over up to
// 3*period points, clamped into [0, 1]. Needs at least two full periods.
func DetectSeasonality(series []float64, period int) SeasonalityResult {
	if period < 1 || len(series) < period*2 {
		return SeasonalityResult{Pattern: []float64{}}
	}

	fullPeriods := len(series) / period
	pattern := make([]float64, period)
	for p := 0; p < fullPeriods; p++ {
		for i := 0; i < period; i++ {
			pattern[i] += series[p*period+i] / float64(fullPeriods)
		}
	}

	sampleLen := len(series)
	if max := period * 3; sampleLen > max {
		sampleLen = max
	}

	var deviation float64
	for i := 0; i < sampleLen; i++ {
		avg := pattern[i%period]
		if avg == 0 {
			avg = 1
		}
		deviation += math.Abs(series[i]/avg - 1)
	}

	strength := 1 - deviation/float64(period*3)
	if strength < 0 {
		strength = 0
	} else if strength > 1 {
		strength = 1
	}
	// Decide on the raw value; rounding is presentation only.
	hasSeasonality := strength > 0.7
	strength = math.Round(strength*100) / 100

	rounded := make([]float64, period)
	for i, v := range pattern {
		rounded[i] = round1(v)
	}

	return SeasonalityResult{
		HasSeasonality: hasSeasonality,
		Strength:       strength,
		Pattern:        rounded,
	}
}

// Forecast fits a line over the whole series and evaluates it at the next
// `periods` indices, flooring each value at zero. Fewer than 10 historical
// points is not enough to extrapolate, so every slot stays nil.
func Forecast(series []float64, periods int) []*float64 {
	result := make([]*float64, periods)
	if len(series) < 10 {
		return result
	}

	points := make([]Point, len(series))
	for i, v := range series {
		points[i] = Point{X: float64(i), Y: v}
	}
	trend := FitLine(points)

	for i := 0; i < periods; i++ {
		x := float64(len(series) + i)
		v := round1(trend.Slope*x + trend.Intercept)
		if v < 0 {
			v = 0
		}
		result[i] = &v
	}
	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
