package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrSourceUnavailable means the workbook could not be opened.
	ErrSourceUnavailable = errors.New("data source unavailable")
	// ErrSchemaMismatch means a sheet is missing a required column.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Dataset owns the loaded sheets for the process lifetime. It is immutable
// after Load and safe for concurrent readers; the only mutable state is the
// catalog cache, which has its own lock.
type Dataset struct {
	Industrial           *RecordSet
	SAM                  *RecordSet
	HistoricalBEN        *RecordSet
	HistoricalEletrobras *RecordSet

	mu       sync.Mutex
	catalogs map[string][]string
}

type sheetSpec struct {
	name     string
	required []string
}

// Load opens the workbook and materializes the four sheets. Any failure here
// is fatal for the caller: a partially loaded dataset is never returned.
func Load(path string, log *logrus.Logger) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	ds := &Dataset{catalogs: make(map[string][]string)}

	specs := []struct {
		spec sheetSpec
		dest **RecordSet
	}{
		{sheetSpec{SheetIndustrial, []string{ColTimestamp, ColRegion, ColSector, ColMeasure}}, &ds.Industrial},
		{sheetSpec{SheetSAM, []string{ColTimestamp, ColMeasure}}, &ds.SAM},
		{sheetSpec{SheetBEN, []string{ColMeasure}}, &ds.HistoricalBEN},
		{sheetSpec{SheetEletrobras, []string{ColMeasure}}, &ds.HistoricalEletrobras},
	}

	for _, s := range specs {
		rs, err := loadSheet(f, s.spec)
		if err != nil {
			return nil, err
		}
		*s.dest = rs
		log.WithFields(logrus.Fields{
			"sheet": rs.Sheet,
			"rows":  len(rs.Records),
		}).Info("sheet loaded")
	}

	return ds, nil
}

func loadSheet(f *excelize.File, spec sheetSpec) (*RecordSet, error) {
	rows, err := f.GetRows(spec.name)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrSourceUnavailable, spec.name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header row", ErrSchemaMismatch, spec.name)
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		index[name] = i
		columns = append(columns, name)
	}

	for _, col := range spec.required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: sheet %q is missing column %q", ErrSchemaMismatch, spec.name, col)
		}
	}

	rs := &RecordSet{Sheet: spec.name, Columns: columns, Records: make([]Record, 0, len(rows)-1)}

	for _, row := range rows[1:] {
		rec := Record{Extra: map[string]string{}}
		for _, col := range columns {
			cell := cellAt(row, index[col])
			switch col {
			case ColTimestamp:
				rec.Timestamp = parseTimestamp(cell)
			case ColRegion:
				rec.Region = cell
			case ColSector:
				rec.Sector = cell
			case ColMeasure:
				rec.Measure = parseMeasure(cell)
			default:
				rec.Extra[col] = cell
			}
		}
		rs.Records = append(rs.Records, rec)
	}

	return rs, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
	"01-02-06",
	"02/01/2006",
	"1/2/06 15:04",
}

// parseTimestamp coerces a cell to a calendar timestamp. Excel serial numbers
// and the common textual layouts are accepted; anything else becomes nil so
// that catalogs and time series simply skip the row.
func parseTimestamp(cell string) *time.Time {
	if cell == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			t = t.UTC()
			return &t
		}
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// parseMeasure coerces a cell to float64, filling missing or malformed
// values with 0 so no NaN-like holes reach the aggregation layer.
func parseMeasure(cell string) float64 {
	if cell == "" {
		return 0
	}
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}
