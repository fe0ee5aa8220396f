package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
)

// DefaultOutlierK is the default outlier threshold in standard deviations.
const DefaultOutlierK = 2.0

// Summary holds the descriptive statistics of a measure column.
// StdDev is the sample standard deviation (n−1 denominator), so a
// single-element input yields NaN; callers must handle that explicitly.
type Summary struct {
	Count  int     `json:"registros"`
	Mean   float64 `json:"media"`
	Median float64 `json:"mediana"`
	StdDev float64 `json:"desviacion"`
	Min    float64 `json:"minimo"`
	Max    float64 `json:"maximo"`
}

// Describe computes the five descriptive statistics over values. An empty
// input is a defined state, not an error: the zero Summary with Count 0.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Median: median(sorted),
		StdDev: stat.StdDev(values, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}

// median of an already sorted slice, averaging the middle pair for even n.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Outliers returns the records whose measure exceeds mean + k·stddev.
// The rule is single-sided: only the upper tail qualifies. With fewer than
// two records the sample deviation is undefined and nothing qualifies.
func Outliers(records []dataset.Record, k float64) []dataset.Record {
	if len(records) < 2 {
		return nil
	}

	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Measure
	}

	threshold := stat.Mean(values, nil) + k*stat.StdDev(values, nil)
	if math.IsNaN(threshold) {
		return nil
	}

	peaks := make([]dataset.Record, 0)
	for _, r := range records {
		if r.Measure > threshold {
			peaks = append(peaks, r)
		}
	}
	return peaks
}
