package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/config"
	httpserver "github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/http"
	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/internal/client"
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

	api := client.New(cfg.APIURL, cfg.RequestTimeout)

	srv := httpserver.New(cfg, api, logger)
	logger.WithFields(logrus.Fields{
		"addr": cfg.ListenAddr(),
		"api":  cfg.APIURL,
	}).Info("dashboard listening")

	if err := srv.Run(ctx); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
