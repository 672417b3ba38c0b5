package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/oizumi98/kaimono-api/internal/analysis"
	"github.com/oizumi98/kaimono-api/internal/cache"
	"github.com/oizumi98/kaimono-api/internal/categorize"
	categorizeStore "github.com/oizumi98/kaimono-api/internal/categorize/store"
	"github.com/oizumi98/kaimono-api/internal/config"
	"github.com/oizumi98/kaimono-api/internal/database"
	"github.com/oizumi98/kaimono-api/internal/export"
	kaimonoHttp "github.com/oizumi98/kaimono-api/internal/http"
	analysisHandler "github.com/oizumi98/kaimono-api/internal/http/analysis"
	categorizeHandler "github.com/oizumi98/kaimono-api/internal/http/categorize"
	exportHandler "github.com/oizumi98/kaimono-api/internal/http/export"
	importHandler "github.com/oizumi98/kaimono-api/internal/http/importcsv"
	purchaseHandler "github.com/oizumi98/kaimono-api/internal/http/purchase"
	"github.com/oizumi98/kaimono-api/internal/importer"
	"github.com/oizumi98/kaimono-api/internal/purchase"
	purchaseStore "github.com/oizumi98/kaimono-api/internal/purchase/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := purchaseStore.New(db)

	analysisService := analysis.NewService(store, analysis.Options{
		Cache: cache.Options{
			TTL:            cfg.Cache.TTL,
			MaxEntries:     cfg.Cache.MaxEntries,
			ComputeTimeout: cfg.Cache.ComputeTimeout,
		},
		FetchTimeout: cfg.Server.FetchTimeout,
	})

	var (
		purchaseService   = purchase.NewService(store, analysisService)
		categorizeService = categorize.NewService(categorizeStore.New(db))
		importService     = importer.NewService()
		exportService     = export.NewService(purchaseService)
	)

	var (
		analysisH   = analysisHandler.NewHandler(analysisService)
		purchaseH   = purchaseHandler.NewHandler(purchaseService)
		importH     = importHandler.NewHandler(importService, purchaseService, categorizeService)
		exportH     = exportHandler.NewHandler(exportService)
		categorizeH = categorizeHandler.NewHandler(categorizeService)
	)

	router := kaimonoHttp.New(cfg.Auth.JWTSecret, analysisH, purchaseH, importH, exportH, categorizeH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
