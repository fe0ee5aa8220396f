package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
)

// handleRegions returns the distinct regions of the industrial sheet.
// GET /catalogos/regioes
func (s *Server) handleRegions(c *gin.Context) {
	regions, err := s.data.DistinctValues(s.data.Industrial, dataset.ColRegion)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"regioes": regions})
}

// handleSectors returns the distinct industrial sectors.
// GET /catalogos/setores-industriais
func (s *Server) handleSectors(c *gin.Context) {
	sectors, err := s.data.DistinctValues(s.data.Industrial, dataset.ColSector)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"setores": sectors})
}
