package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/aggregate"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/internal/charts"
	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/internal/report"
)

// displayFactor converts base MWh values for presentation. Conversion happens
// only here, after aggregation, never inside the engines.
func (s *Server) displayFactor() float64 {
	if s.cfg.ShowGWh {
		return 1.0 / 1000
	}
	return 1
}

func (s *Server) fmtEnergy(mwh float64) string {
	return fmt.Sprintf("%.2f %s", mwh*s.displayFactor(), s.cfg.Unit())
}

// fetchFiltered pulls the raw industrial records from the API and applies the
// request's filters locally.
func (s *Server) fetchFiltered(c *gin.Context) (*dataset.RecordSet, Filters, error) {
	filters, err := parseFilters(c)
	if err != nil {
		return nil, filters, err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	rs, err := s.api.FetchIndustrial(ctx)
	if err != nil {
		return nil, filters, err
	}
	return apply(rs, filters), filters, nil
}

func scaledRows(rs *dataset.RecordSet, column string, order aggregate.Order, factor float64) ([]aggregate.Row, error) {
	rows, err := aggregate.GroupSum(rs, []string{column}, order)
	if err != nil {
		return nil, err
	}
	out := make([]aggregate.Row, len(rows))
	for i, row := range rows {
		out[i] = aggregate.Row{Key: row.Key, Sum: row.Sum * factor}
	}
	return out, nil
}

func scaledPoints(rs *dataset.RecordSet, factor float64) []aggregate.Point {
	points := aggregate.TimeSeries(rs)
	out := make([]aggregate.Point, len(points))
	for i, p := range points {
		out[i] = aggregate.Point{Timestamp: p.Timestamp, Total: p.Total * factor}
	}
	return out
}

func scaledValues(rs *dataset.RecordSet, factor float64) []float64 {
	values := rs.Measures()
	for i := range values {
		values[i] *= factor
	}
	return values
}

// buildCharts renders every chart that has data for the filtered set.
func (s *Server) buildCharts(rs *dataset.RecordSet) ([]report.Chart, error) {
	if len(rs.Records) == 0 {
		return nil, nil
	}

	unit := s.cfg.Unit()
	factor := s.displayFactor()
	figs := make([]report.Chart, 0, 4)

	sectors, err := scaledRows(rs, dataset.ColSector, aggregate.ByValueDesc, factor)
	if err != nil {
		return nil, err
	}
	png, err := charts.BarChart("Consumo por Sector Industrial", unit, sectors)
	if err != nil {
		return nil, err
	}
	figs = append(figs, report.Chart{Name: "Consumo por Sector (Barras)", PNG: png})

	regions, err := scaledRows(rs, dataset.ColRegion, aggregate.ByValueDesc, factor)
	if err != nil {
		return nil, err
	}
	png, err = charts.BarChart("Distribución de consumo por Región", unit, regions)
	if err != nil {
		return nil, err
	}
	figs = append(figs, report.Chart{Name: "Distribución por Región", PNG: png})

	png, err = charts.Histogram("Histograma del Consumo", unit, scaledValues(rs, factor))
	if err != nil {
		return nil, err
	}
	figs = append(figs, report.Chart{Name: "Histograma de Consumo", PNG: png})

	if points := scaledPoints(rs, factor); len(points) > 0 {
		png, err = charts.LineChart("Consumo vs Fecha", unit, points)
		if err != nil {
			return nil, err
		}
		figs = append(figs, report.Chart{Name: "Consumo vs Fecha (Serie)", PNG: png})
	}

	return figs, nil
}

// handleChart renders a single chart PNG.
// GET /graficas/:nombre with nombre in sectores.png, regiones.png,
// histograma.png, serie.png
func (s *Server) handleChart(c *gin.Context) {
	rs, _, err := s.fetchFiltered(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if len(rs.Records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data for the selected filters"})
		return
	}

	unit := s.cfg.Unit()
	factor := s.displayFactor()

	var png []byte
	switch c.Param("nombre") {
	case "sectores.png":
		rows, rowsErr := scaledRows(rs, dataset.ColSector, aggregate.ByValueDesc, factor)
		if rowsErr != nil {
			err = rowsErr
			break
		}
		png, err = charts.BarChart("Consumo por Sector Industrial", unit, rows)
	case "regiones.png":
		rows, rowsErr := scaledRows(rs, dataset.ColRegion, aggregate.ByValueDesc, factor)
		if rowsErr != nil {
			err = rowsErr
			break
		}
		png, err = charts.BarChart("Distribución de consumo por Región", unit, rows)
	case "histograma.png":
		png, err = charts.Histogram("Histograma del Consumo", unit, scaledValues(rs, factor))
	case "serie.png":
		png, err = charts.LineChart("Consumo vs Fecha", unit, scaledPoints(rs, factor))
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// handleCSV downloads the filtered records as CSV.
// GET /descargas/datos.csv
func (s *Server) handleCSV(c *gin.Context) {
	rs, _, err := s.fetchFiltered(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	data, err := report.RecordsCSV(rs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="datos_filtrados.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// handleXLSX downloads the filtered records as a workbook.
// GET /descargas/datos.xlsx
func (s *Server) handleXLSX(c *gin.Context) {
	rs, _, err := s.fetchFiltered(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	data, err := report.RecordsXLSX(rs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="datos_filtrados.xlsx"`)
	c.Data(http.StatusOK, report.XLSXContentType, data)
}

// handlePDF downloads the multi-page report with the visible charts.
// GET /descargas/informe.pdf
func (s *Server) handlePDF(c *gin.Context) {
	rs, filters, err := s.fetchFiltered(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	figs, err := s.buildCharts(rs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(figs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no charts available for the selected filters"})
		return
	}

	data, err := report.BuildPDF(
		"Informe - Analizador de Consumo Energético",
		filters.reportFilters(s.cfg.Unit()),
		len(rs.Records),
		figs,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="informe_consumo_energetico.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// handleQR returns a QR code pointing at the dashboard's public URL.
// GET /qr.png
func (s *Server) handleQR(c *gin.Context) {
	png, err := report.QRPNG(s.cfg.DashboardURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
