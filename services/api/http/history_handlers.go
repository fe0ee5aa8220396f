package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/stats"
)

// handleTrendBEN returns the linear trend of the 1970–1989 period.
// GET /consumo/historico/tendencia-1970-1989
func (s *Server) handleTrendBEN(c *gin.Context) {
	s.respondTrend(c, s.data.HistoricalBEN)
}

// handleTrendEletrobras returns the linear trend of the 1990–2003 period.
// GET /consumo/historico/tendencia-1990-2003
func (s *Server) handleTrendEletrobras(c *gin.Context) {
	s.respondTrend(c, s.data.HistoricalEletrobras)
}

// respondTrend fits the degree-1 trend over a historical sheet. Only the
// slope goes out; a sheet with fewer than two rows is an unprocessable
// request, not a crash.
func (s *Server) respondTrend(c *gin.Context, rs *dataset.RecordSet) {
	result, err := stats.Trend(rs.Measures())
	if err != nil {
		if errors.Is(err, stats.ErrInsufficientData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pendiente": result.Slope})
}
