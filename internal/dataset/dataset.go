package dataset

import (
	"fmt"
	"time"
)

// Canonical column names as they appear in the workbook.
const (
	ColTimestamp = "DataExcel"
	ColRegion    = "Regiao"
	ColSector    = "SetorIndustrial"
	ColMeasure   = "Consumo"
)

// Sheet names loaded from the workbook.
const (
	SheetIndustrial = "SETOR INDUSTRIAL POR RG"
	SheetSAM        = "CONSUMO E NUMCONS SAM"
	SheetBEN        = "CONSUMO_BEN_RG_1970-1989"
	SheetEletrobras = "CONSUMO_ELETROBRAS_1990-2003"
)

// Record is one normalized row of a sheet. Normalization happens once at load
// time: Timestamp is nil when the source cell did not parse as a date, Measure
// is 0 when the source cell was empty or non-numeric, and dimension fields are
// empty strings when missing. Columns not modeled here pass through in Extra.
type Record struct {
	Timestamp *time.Time
	Region    string
	Sector    string
	Measure   float64
	Extra     map[string]string
}

// RecordSet is the ordered, immutable contents of one loaded sheet.
type RecordSet struct {
	Sheet   string
	Columns []string
	Records []Record
}

// HasColumn reports whether the sheet carried the named column.
func (rs *RecordSet) HasColumn(name string) bool {
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Value returns the string form of a record's cell for the named column,
// used as a group-by key. Missing dimension values come back as "" and form
// their own group downstream.
func (rs *RecordSet) Value(r Record, column string) string {
	switch column {
	case ColTimestamp:
		if r.Timestamp == nil {
			return ""
		}
		return r.Timestamp.Format("2006-01-02")
	case ColRegion:
		return r.Region
	case ColSector:
		return r.Sector
	case ColMeasure:
		return fmt.Sprintf("%g", r.Measure)
	default:
		return r.Extra[column]
	}
}

// Measures returns a copy of the Consumo column.
func (rs *RecordSet) Measures() []float64 {
	values := make([]float64, len(rs.Records))
	for i, r := range rs.Records {
		values[i] = r.Measure
	}
	return values
}

// RowMap renders a record as a JSON-ready map keyed by the original column
// names, preserving the sheet's pass-through columns.
func (rs *RecordSet) RowMap(r Record) map[string]any {
	row := make(map[string]any, len(rs.Columns))
	for k, v := range r.Extra {
		row[k] = v
	}
	if rs.HasColumn(ColTimestamp) {
		if r.Timestamp != nil {
			row[ColTimestamp] = r.Timestamp.Format(time.RFC3339)
		} else {
			row[ColTimestamp] = nil
		}
	}
	if rs.HasColumn(ColRegion) {
		row[ColRegion] = r.Region
	}
	if rs.HasColumn(ColSector) {
		row[ColSector] = r.Sector
	}
	if rs.HasColumn(ColMeasure) {
		row[ColMeasure] = r.Measure
	}
	return row
}

// RowMaps renders every record of the sheet via RowMap.
func (rs *RecordSet) RowMaps() []map[string]any {
	rows := make([]map[string]any, len(rs.Records))
	for i, r := range rs.Records {
		rows[i] = rs.RowMap(r)
	}
	return rows
}
