package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
)

// XLSXContentType is the MIME type for xlsx downloads.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RecordsXLSX renders a record set as a single-sheet workbook.
func RecordsXLSX(rs *dataset.RecordSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	header := make([]interface{}, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range rs.Records {
		row := make([]interface{}, len(rs.Columns))
		for j, col := range rs.Columns {
			if col == dataset.ColMeasure {
				row[j] = r.Measure
				continue
			}
			row[j] = rs.Value(r, col)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
