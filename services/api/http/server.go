package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
	"github.com/energia-abierta/brasil-consumo-viewer/services/api/config"
)

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg    config.Config
	data   *dataset.Dataset
	engine *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, data *dataset.Dataset) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())
	engine.Use(corsMiddleware())

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server := &Server{cfg: cfg, data: data, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	catalogos := s.engine.Group("/catalogos")
	{
		catalogos.GET("/regioes", s.handleRegions)
		catalogos.GET("/setores-industriais", s.handleSectors)
	}

	consumo := s.engine.Group("/consumo")
	{
		consumo.GET("/datos-industrial", s.handleIndustrialRecords)
		consumo.GET("/agregado", s.handleAggregate)
		consumo.GET("/mapa-uf", s.handleUFMap)

		actual := consumo.Group("/actual")
		{
			actual.GET("/estadisticas-industrial", s.handleIndustrialStats)
			actual.GET("/estadisticas-sam", s.handleSAMStats)
			actual.GET("/serie-industrial", s.handleIndustrialSeries)
			actual.GET("/picos-industrial", s.handleIndustrialPeaks)
		}

		historico := consumo.Group("/historico")
		{
			historico.GET("/tendencia-1970-1989", s.handleTrendBEN)
			historico.GET("/tendencia-1990-2003", s.handleTrendEletrobras)
		}
	}
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
