package stats

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData means a trend was requested over fewer than two points.
var ErrInsufficientData = errors.New("insufficient data: need at least two points")

// TrendResult is a degree-1 ordinary-least-squares fit over a series indexed
// 0..n−1. The API only exposes the slope; the intercept stays internal.
type TrendResult struct {
	Slope     float64
	Intercept float64
}

// Trend fits a line to the series against the implicit index 0..n−1.
func Trend(series []float64) (TrendResult, error) {
	if len(series) < 2 {
		return TrendResult{}, ErrInsufficientData
	}

	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, series, nil, false)
	return TrendResult{Slope: slope, Intercept: intercept}, nil
}
