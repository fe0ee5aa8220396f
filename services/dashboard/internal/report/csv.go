package report

import (
	"bytes"
	"encoding/csv"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
)

// RecordsCSV renders a record set as CSV: the sheet's columns as header,
// one line per record.
func RecordsCSV(rs *dataset.RecordSet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(rs.Columns); err != nil {
		return nil, err
	}

	line := make([]string, len(rs.Columns))
	for _, r := range rs.Records {
		for i, col := range rs.Columns {
			line[i] = rs.Value(r, col)
		}
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
