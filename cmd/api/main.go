package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"coopops/internal/api"
	"coopops/internal/config"
	"coopops/internal/coop"
	"coopops/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		log.Fatalf("Unable to build logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	cooperative, err := coop.New(cfg.CoopName, cfg.CoopTaxID)
	if err != nil {
		logger.Fatal("invalid cooperative configuration", zap.Error(err))
	}

	handler := api.NewHandler(cooperative)
	router := api.NewRouter(handler)

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("cooperative", cfg.CoopName))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
