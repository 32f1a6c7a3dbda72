package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/skyquery/flightlookup/internal/cache"
	"github.com/skyquery/flightlookup/internal/config"
	"github.com/skyquery/flightlookup/internal/engine"
	"github.com/skyquery/flightlookup/internal/provider"
	"github.com/skyquery/flightlookup/internal/quota"
	"github.com/skyquery/flightlookup/internal/registry"
	"github.com/skyquery/flightlookup/internal/token"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <flight-identifier> [...]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	reg := registry.New()
	tracker := quota.New(cfg.QuotaLimit, cfg.AeroDataAPIKey != "")
	if !cfg.QuotaResetAt.IsZero() {
		tracker.SetResetAt(cfg.QuotaResetAt)
	}
	tokens := token.NewManager(cfg.OpenSkyClientID, cfg.OpenSkyClientSecret)

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
	}

	eng := engine.New(reg, cache.NewMemory(), tracker, live, scheduled)

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, ident := range os.Args[1:] {
		rec := eng.Resolve(ctx, ident)
		if err := enc.Encode(rec); err != nil {
			log.Printf("Failed to encode record for %q: %v", ident, err)
		}
	}
}
