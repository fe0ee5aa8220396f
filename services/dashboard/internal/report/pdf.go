package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Filter is one applied filter shown on the report cover.
type Filter struct {
	Label string
	Value string
}

// Chart is a rendered PNG with its report caption.
type Chart struct {
	Name string
	PNG  []byte
}

// BuildPDF assembles the downloadable report: a cover page with the applied
// filters and record count, then one chart per page.
func BuildPDF(title string, filters []Filter, recordCount int, figs []Chart) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	// Core fonts are cp1252; labels carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Filtros aplicados:", "", 1, "L", false, 0, "")
	for _, f := range filters {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("- %s: %s", f.Label, f.Value)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	pdf.CellFormat(0, 6, fmt.Sprintf("Registros incluidos: %d", recordCount), "", 1, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, fig := range figs {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", i+1, fig.Name)), "", 1, "L", false, 0, "")

		name := fmt.Sprintf("chart-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(fig.PNG))
		pdf.ImageOptions(name, 15, 30, 180, 0, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	return buf.Bytes(), nil
}
