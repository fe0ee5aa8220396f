package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/config"
	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/internal/client"
)

// Server bundles router and dependencies for the dashboard.
type Server struct {
	cfg    config.Config
	api    *client.Client
	log    *logrus.Logger
	engine *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, api *client.Client, log *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	server := &Server{cfg: cfg, api: api, log: log, engine: engine}
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

	s.engine.GET("/", s.handleHome)
	s.engine.GET("/qr.png", s.handleQR)

	graficas := s.engine.Group("/graficas")
	{
		graficas.GET("/:nombre", s.handleChart)
	}

	descargas := s.engine.Group("/descargas")
	{
		descargas.GET("/datos.csv", s.handleCSV)
		descargas.GET("/datos.xlsx", s.handleXLSX)
		descargas.GET("/informe.pdf", s.handlePDF)
	}
}
