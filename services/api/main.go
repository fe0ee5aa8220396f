package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
	"github.com/energia-abierta/brasil-consumo-viewer/services/api/config"
	httpserver "github.com/energia-abierta/brasil-consumo-viewer/services/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	data, err := dataset.Load(cfg.ExcelPath, logger)
	if err != nil {
		logger.WithField("path", cfg.ExcelPath).Fatalf("workbook load error: %v", err)
	}

	srv := httpserver.New(cfg, data)
	logger.WithField("addr", cfg.ListenAddr()).Info("REST API listening")

	if err := srv.Run(ctx); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
