package http

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/aggregate"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/geo"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/stats"
)

// summaryPayload renders a Summary for JSON. A sample deviation over a single
// record is NaN, which JSON cannot carry; it is reported as 0 alongside the
// record count so clients can tell the difference.
func summaryPayload(s stats.Summary) gin.H {
	dev := s.StdDev
	if math.IsNaN(dev) {
		dev = 0
	}
	return gin.H{
		"registros":  s.Count,
		"media":      s.Mean,
		"mediana":    s.Median,
		"desviacion": dev,
		"minimo":     s.Min,
		"maximo":     s.Max,
	}
}

// handleIndustrialStats returns descriptive statistics of industrial Consumo.
// GET /consumo/actual/estadisticas-industrial
func (s *Server) handleIndustrialStats(c *gin.Context) {
	c.JSON(http.StatusOK, summaryPayload(stats.Describe(s.data.Industrial.Measures())))
}

// handleSAMStats returns descriptive statistics of the SAM sheet's Consumo.
// GET /consumo/actual/estadisticas-sam
func (s *Server) handleSAMStats(c *gin.Context) {
	c.JSON(http.StatusOK, summaryPayload(stats.Describe(s.data.SAM.Measures())))
}

// handleIndustrialSeries returns consumption summed per raw timestamp,
// ascending.
// GET /consumo/actual/serie-industrial
func (s *Server) handleIndustrialSeries(c *gin.Context) {
	points := aggregate.TimeSeries(s.data.Industrial)
	c.JSON(http.StatusOK, gin.H{
		"serie": points,
		"meta":  gin.H{"count": len(points)},
	})
}

// handleIndustrialPeaks returns the full records whose consumption exceeds
// mean + k·stddev.
// GET /consumo/actual/picos-industrial
func (s *Server) handleIndustrialPeaks(c *gin.Context) {
	peaks := stats.Outliers(s.data.Industrial.Records, s.cfg.OutlierK)

	rows := make([]map[string]any, len(peaks))
	for i, r := range peaks {
		rows[i] = s.data.Industrial.RowMap(r)
	}

	c.JSON(http.StatusOK, gin.H{
		"picos": rows,
		"meta":  gin.H{"count": len(rows), "k": s.cfg.OutlierK},
	})
}

// handleIndustrialRecords returns every raw industrial record (the dashboard
// feed).
// GET /consumo/datos-industrial
func (s *Server) handleIndustrialRecords(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.Industrial.RowMaps())
}

// handleAggregate groups industrial consumption by the requested columns.
// GET /consumo/agregado?por=Regiao,SetorIndustrial&orden=asc|desc
func (s *Server) handleAggregate(c *gin.Context) {
	por := c.DefaultQuery("por", dataset.ColRegion)
	groupBy := strings.Split(por, ",")
	for i := range groupBy {
		groupBy[i] = strings.TrimSpace(groupBy[i])
	}

	order := aggregate.ByValueDesc
	switch c.DefaultQuery("orden", "desc") {
	case "asc":
		order = aggregate.ByKeyAsc
	case "desc":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orden, expected asc or desc"})
		return
	}

	rows, err := aggregate.GroupSum(s.data.Industrial, groupBy, order)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agregado": rows,
		"meta":     gin.H{"por": groupBy, "count": len(rows)},
	})
}

// handleUFMap broadcasts the region-level industrial totals onto every UF.
// Values repeat across UFs of the same region; consumers must sum by region,
// not by UF.
// GET /consumo/mapa-uf
func (s *Server) handleUFMap(c *gin.Context) {
	totals, err := aggregate.RegionTotals(s.data.Industrial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mapa": geo.ExpandRegionTotals(totals)})
}
