package analytics

import (
	"math"
)

// roundFloat rounds a float64 to a specified number of decimal places.
func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// CalculateStats returns the mean and sample standard deviation of the point
// weights, rounded to four places. Fewer than two points have no spread.
func CalculateStats(points []float64) (float64, float64) {
	n := len(points)
	if n == 0 {
		return 0.0, 0.0
	}

	sum := 0.0
	for _, val := range points {
		sum += val
	}
	average := sum / float64(n)

	if n < 2 {
		return roundFloat(average, 4), 0.0
	}

	varianceSum := 0.0
	for _, val := range points {
		varianceSum += math.Pow(val-average, 2)
	}
	stdDev := math.Sqrt(varianceSum / float64(n-1))

	return roundFloat(average, 4), roundFloat(stdDev, 4)
}
