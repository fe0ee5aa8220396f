package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
)

// ErrInvalidGroupKey means a requested group-by column is not in the sheet
// schema.
var ErrInvalidGroupKey = errors.New("invalid group key")

// Order selects how GroupSum results are sorted. The choice is part of the
// contract: ranked displays want ByValueDesc, categorical/temporal displays
// want ByKeyAsc.
type Order int

const (
	ByValueDesc Order = iota
	ByKeyAsc
)

// Row is one aggregated group: the group key tuple and the summed measure.
type Row struct {
	Key []string `json:"clave"`
	Sum float64  `json:"consumo"`
}

// Point is one entry of a time series: a raw timestamp and its summed measure.
type Point struct {
	Timestamp time.Time `json:"data"`
	Total     float64   `json:"consumo"`
}

// GroupSum groups records by the named columns and sums the measure within
// each group. Empty dimension values form their own group rather than being
// dropped, so the result is always sum-preserving over the input.
func GroupSum(rs *dataset.RecordSet, groupBy []string, order Order) ([]Row, error) {
	if len(groupBy) == 0 {
		return nil, fmt.Errorf("%w: no columns given", ErrInvalidGroupKey)
	}
	for _, col := range groupBy {
		if !rs.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q not in sheet %q", ErrInvalidGroupKey, col, rs.Sheet)
		}
	}

	sums := make(map[string]float64)
	keys := make(map[string][]string)
	for _, r := range rs.Records {
		key := make([]string, len(groupBy))
		for i, col := range groupBy {
			key[i] = rs.Value(r, col)
		}
		packed := strings.Join(key, "\x00")
		if _, ok := sums[packed]; !ok {
			keys[packed] = key
		}
		sums[packed] += r.Measure
	}

	rows := make([]Row, 0, len(sums))
	for packed, sum := range sums {
		rows = append(rows, Row{Key: keys[packed], Sum: sum})
	}

	switch order {
	case ByKeyAsc:
		sort.Slice(rows, func(i, j int) bool {
			return strings.Join(rows[i].Key, "\x00") < strings.Join(rows[j].Key, "\x00")
		})
	default:
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Sum != rows[j].Sum {
				return rows[i].Sum > rows[j].Sum
			}
			return strings.Join(rows[i].Key, "\x00") < strings.Join(rows[j].Key, "\x00")
		})
	}

	return rows, nil
}

// TimeSeries sums the measure per raw timestamp, ascending. There is no
// resampling: each distinct timestamp in the data is one point. Records
// whose timestamp failed to parse at load time are skipped.
func TimeSeries(rs *dataset.RecordSet) []Point {
	totals := make(map[time.Time]float64)
	for _, r := range rs.Records {
		if r.Timestamp == nil {
			continue
		}
		totals[*r.Timestamp] += r.Measure
	}

	points := make([]Point, 0, len(totals))
	for ts, total := range totals {
		points = append(points, Point{Timestamp: ts, Total: total})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })
	return points
}

// RegionTotals is a convenience wrapper: consumption summed by region,
// returned as a map for the geographic broadcast.
func RegionTotals(rs *dataset.RecordSet) (map[string]float64, error) {
	rows, err := GroupSum(rs, []string{dataset.ColRegion}, ByKeyAsc)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.Key[0]] = row.Sum
	}
	return totals, nil
}
