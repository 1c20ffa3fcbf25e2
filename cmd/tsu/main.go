package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tidewatch/tsu/internal/cache"
	"github.com/tidewatch/tsu/internal/config"
	"github.com/tidewatch/tsu/internal/noaa"
	"github.com/tidewatch/tsu/internal/tide"
	"github.com/tidewatch/tsu/pkg/http/client"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The sole non-zero exit: missing/invalid configuration.
		fmt.Fprintf(os.Stderr, "tsu: %v\n", err)
		os.Exit(1)
	}

	cfg.InitializeLogging()

	httpClient := client.New(client.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
	})

	cacheService, err := cache.NewService(cache.NewFileStore(cfg.CacheDir))
	if err != nil {
		fmt.Print(tide.Placeholder)
		return
	}

	pipeline := tide.NewPipeline(cfg.Station, cacheService, noaa.NewSource(httpClient, cfg.Station))

	// One line, no trailing newline, so a prompt can embed it verbatim.
	fmt.Print(pipeline.Run(context.Background()))
}
