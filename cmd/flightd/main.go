package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyquery/flightlookup/internal/cache"
	"github.com/skyquery/flightlookup/internal/config"
	"github.com/skyquery/flightlookup/internal/engine"
	"github.com/skyquery/flightlookup/internal/nats"
	"github.com/skyquery/flightlookup/internal/provider"
	"github.com/skyquery/flightlookup/internal/quota"
	"github.com/skyquery/flightlookup/internal/registry"
	"github.com/skyquery/flightlookup/internal/store"
	"github.com/skyquery/flightlookup/internal/token"
)

// buildEngine wires the lookup engine from configuration.
func buildEngine(cfg *config.Config) (*engine.Engine, cache.Store, error) {
	reg := registry.New()

	var cacheStore cache.Store
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis cache: %w", err)
		}
		cacheStore = redisCache
	} else {
		cacheStore = cache.NewMemory()
	}

	tracker := quota.New(cfg.QuotaLimit, cfg.AeroDataAPIKey != "")
	if !cfg.QuotaResetAt.IsZero() {
		tracker.SetResetAt(cfg.QuotaResetAt)
	}

	tokens := token.NewManager(cfg.OpenSkyClientID, cfg.OpenSkyClientSecret)
	if !tokens.Authenticated() {
		log.Println("OpenSky credentials absent, using unauthenticated mode")
	}

	var liveOpts []provider.OpenSkyOption
	if cfg.OpenSkyBaseURL != "" {
		liveOpts = append(liveOpts, provider.WithOpenSkyBaseURL(cfg.OpenSkyBaseURL))
	}
	live := provider.NewOpenSky(tokens, liveOpts...)

	var scheduled provider.Scheduled
	if cfg.AeroDataAPIKey != "" {
		var schedOpts []provider.AeroDataOption
		if cfg.AeroDataBaseURL != "" {
			schedOpts = append(schedOpts, provider.WithAeroDataBaseURL(cfg.AeroDataBaseURL))
		}
		scheduled = provider.NewAeroData(cfg.AeroDataAPIKey, tracker, schedOpts...)
	} else {
		log.Println("AeroData API key absent, scheduled provider disabled")
	}

	return engine.New(reg, cacheStore, tracker, live, scheduled), cacheStore, nil
}

// logStats periodically logs lookup statistics.
func logStats(ctx context.Context, eng *engine.Engine) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Printf("Statistics:\n%s", eng.Stats())
		}
	}
}

// waitForShutdown waits for shutdown signals and handles cleanup
func waitForShutdown(cancel context.CancelFunc, natsClient *nats.Client, dbClient *store.Client, cacheStore cache.Store) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	cancel()
	if natsClient != nil {
		natsClient.Close()
	}
	if dbClient != nil {
		if err := dbClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing dbClient: %v\n", err)
		}
	}
	if err := cacheStore.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing cache: %v\n", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	natsURL := cfg.NATSURL
	if natsURL == "" {
		natsURL = "nats://nats:4222" // Default to Docker service name
	}

	eng, cacheStore, err := buildEngine(cfg)
	if err != nil {
		log.Printf("Failed to build engine: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var dbClient *store.Client
	if cfg.DBConnStr != "" {
		dbClient, err = store.New(cfg.DBConnStr)
		if err != nil {
			log.Printf("Failed to create database client: %v", err)
			os.Exit(1)
		}
		if err := dbClient.EnsureSchema(); err != nil {
			log.Printf("Failed to ensure database schema: %v", err)
			os.Exit(1)
		}
		eng.SetAuditSink(dbClient)
		eng.Stats().SetSink(dbClient)
		go eng.Stats().StartPersistence(ctx, 5*time.Minute)
	}

	natsClient, err := nats.New(natsURL)
	if err != nil {
		log.Printf("Failed to create NATS client: %v", err)
		if dbClient != nil {
			if closeErr := dbClient.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "error closing dbClient: %v\n", closeErr)
			}
		}
		os.Exit(1)
	}
	eng.SetPublisher(natsClient)

	if err := natsClient.ServeLookups(ctx, eng); err != nil {
		log.Printf("Failed to serve lookups: %v", err)
		natsClient.Close()
		os.Exit(1)
	}
	log.Printf("Serving flight lookups on %q", nats.SubjectLookup)

	go logStats(ctx, eng)

	waitForShutdown(cancel, natsClient, dbClient, cacheStore)
}
