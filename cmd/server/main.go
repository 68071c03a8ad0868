package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/costlens/backend/config"
	"github.com/costlens/backend/internal/catalog"
	httpDelivery "github.com/costlens/backend/internal/delivery/http"
	"github.com/costlens/backend/internal/infrastructure/cache"
	"github.com/costlens/backend/internal/infrastructure/metrics"
	"github.com/costlens/backend/internal/infrastructure/numbeo"
	"github.com/costlens/backend/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CostLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Load the catalog and build the label index once
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	index := usecase.BuildIndex(cat)
	log.Printf("Catalog: %d distinct labels in %s", index.Size(), strings.Join(cat.CategoryNames(), ", "))

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	client := numbeo.NewClient(numbeo.ClientConfig{
		UserAgent:         cfg.Source.UserAgent,
		Timeout:           cfg.Source.Timeout,
		RequestsPerSecond: cfg.Source.RequestsPerSecond,
		Burst:             cfg.Source.Burst,
		MaxAttempts:       cfg.Source.MaxAttempts,
	})
	client.SetObserver(recorder)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		log.Printf("Page client debug mode enabled")
	}

	urls := numbeo.NewURLBuilder(cfg.Source.BaseURL, cfg.Source.CitySlugs, cfg.Source.CountrySuffixedCities)
	parser := numbeo.NewTableParser(cfg.Source.TableClass)
	log.Printf("Source: %s (table class %q, %.1f req/s)", cfg.Source.BaseURL, cfg.Source.TableClass, cfg.Source.RequestsPerSecond)

	// Initialize usecase layer
	matcher := usecase.NewMatchingService(index, usecase.MatchConfig{
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		Observer:           recorder,
	})

	service := usecase.NewCostOfLivingService(
		memoryCache,
		client,
		parser,
		urls,
		matcher,
		usecase.CostOfLivingServiceConfig{
			CacheTTL:       cfg.Cache.TTL,
			DefaultCity:    cfg.Lookup.DefaultCity,
			DefaultCountry: cfg.Lookup.DefaultCountry,
		},
	)

	log.Printf("Lookup defaults: %s, %s; match debug=%v",
		cfg.Lookup.DefaultCity,
		cfg.Lookup.DefaultCountry,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(service)
	handler.SetObserver(recorder)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
