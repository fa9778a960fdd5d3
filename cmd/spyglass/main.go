package main

import (
	"time"

	"spyglass/internal/buckets"
	"spyglass/internal/dataset"
	"spyglass/internal/enrich"
	"spyglass/internal/handlers"
	"spyglass/internal/metrics"
	"spyglass/internal/report"
	"spyglass/pkg/cache"
	"spyglass/pkg/config"
	"spyglass/pkg/logging"
	"spyglass/pkg/monitoring"
	"spyglass/pkg/server"
	"spyglass/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("spyglass")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Spyglass (Post Export Analytics API)")

	dataDir := config.RequireEnv("DATA_DIR")
	cacheTTL := config.GetEnvInt("CACHE_TTL_SECONDS", 60)
	previewTimeout := config.GetEnvInt("PREVIEW_TIMEOUT_SECONDS", 10)
	topPosts := config.GetEnvInt("TOP_POSTS", report.DefaultTopPosts)

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("spyglass", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("spyglass", version.Version, version.GitCommit)

	// Custom service metrics (used by request handlers and the cache)
	serviceMetrics := &metrics.Metrics{
		ReportQueries:   metricsCollector.NewCounter("report_queries_total", "Report queries executed", []string{"query_type", "status"}),
		QueryDuration:   metricsCollector.NewHistogram("report_query_duration_seconds", "Report query duration", []string{"query_type"}, nil),
		DatasetLoads:    metricsCollector.NewCounter("dataset_loads_total", "Export table loads", []string{"status"}),
		PreviewFetches:  metricsCollector.NewCounter("preview_fetches_total", "Preview image fetch attempts", []string{"status"}),
		CacheOperations: metricsCollector.NewCounter("dataset_cache_operations_total", "Dataset cache operations", []string{"operation"}),
	}

	// Dataset cache keyed by file signature, so edits to an export
	// invalidate the cached table on the next request.
	datasetCache := cache.New(cache.Options{
		TTL:                  time.Duration(cacheTTL) * time.Second,
		StaleWhileRevalidate: time.Duration(cacheTTL) * time.Second,
		NegativeTTL:          5 * time.Second,
		MaxEntries:           1024,
	}, cache.MetricsHooks{
		OnHit:   func(map[string]string) { serviceMetrics.CacheOperations.WithLabelValues("hit").Inc() },
		OnMiss:  func(map[string]string) { serviceMetrics.CacheOperations.WithLabelValues("miss").Inc() },
		OnStale: func(map[string]string) { serviceMetrics.CacheOperations.WithLabelValues("stale").Inc() },
		OnStore: func(map[string]string) { serviceMetrics.CacheOperations.WithLabelValues("store").Inc() },
		OnError: func(map[string]string) { serviceMetrics.CacheOperations.WithLabelValues("error").Inc() },
	})

	store := dataset.NewStore(dataDir, logger, datasetCache)

	fetcher := enrich.NewHTTPFetcher(time.Duration(previewTimeout)*time.Second, logger)
	fetcher.Observe = func(status string) { serviceMetrics.PreviewFetches.WithLabelValues(status).Inc() }
	assembler := report.NewAssembler(fetcher, buckets.Turkish, topPosts, logger)

	// Add health checks
	healthChecker.AddCheck("data_dir", monitoring.DataDirectoryHealthCheck(dataDir, dataset.ExportSuffix))
	healthChecker.AddCheck("tag_table", monitoring.FileHealthCheck("tag_table", store.TagPath()))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATA_DIR": dataDir,
	}))

	// Initialize handlers
	handlers.Init(store, assembler, logger, serviceMetrics)

	// Setup router with unified monitoring
	router := server.SetupServiceRouter(logger, "spyglass", healthChecker, metricsCollector)

	router.GET("/profiles", handlers.GetProfiles)
	router.GET("/reports/:profile", handlers.GetProfileReport)
	router.GET("/posts", handlers.GetAllPosts)
	router.GET("/rankings", handlers.GetRankings)

	// Start HTTP server with graceful shutdown
	serverConfig := server.DefaultConfig("spyglass", "8080")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
