package main

import (
	"context"

	"github.com/charmbracelet/log"

	"mosaic-reader/internal/config"
	"mosaic-reader/internal/library"
	"mosaic-reader/internal/router"
	"mosaic-reader/internal/server"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	catalog := library.NewCatalog(cfg.CatalogPath)
	chain := router.DefaultChain(server.AppMiddleware(cfg, catalog), cfg.RateLimitPerSecond, cfg.MaxSessions)

	runtime, err := server.New(cfg, chain)
	if err != nil {
		log.Fatal("build ssh server", "err", err)
	}

	if err := runtime.Run(context.Background()); err != nil {
		log.Fatal("run ssh server", "err", err)
	}
}
