package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kenyadeals/dealworker/config"
	"kenyadeals/dealworker/internal/crawler"
	"kenyadeals/dealworker/logger"
	"kenyadeals/dealworker/services/cache"
	"kenyadeals/dealworker/services/publisher"
	"kenyadeals/dealworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("shops", len(cfg.Shops)).
		Float64("max_price", cfg.MaxPrice).
		Float64("price_floor", cfg.PriceFloor).
		Bool("run_once", cfg.RunOnce).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize optional services
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Fetch blockout cache enabled")
	}

	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLen)
		defer redisPub.Close()
		pub = redisPub
		log.Info().
			Str("addr", cfg.RedisAddr).
			Str("stream", cfg.RedisStream).
			Msg("Publisher enabled")
	}

	// Create crawlers
	fetcher := crawler.NewCachedFetcher(cacheSvc, cfg.FetchBlockTime)
	crawlers := crawler.NewShopCrawlers(cfg, fetcher)
	if len(crawlers) == 0 {
		log.Fatal().Msg("No crawlers were created")
	}

	log.Info().
		Int("crawler_count", len(crawlers)).
		Msg("Created crawlers")

	// Create and start worker
	w := worker.NewWorker(
		ctx,
		crawlers,
		pub,
		cfg.OutputPath,
		cfg.ReportPath,
		cfg.CrawlInterval,
		cfg.RunOnce,
	)

	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting deal worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker completion
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}
