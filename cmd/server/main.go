// Package main implements the blogcraft server, which exposes the blog
// generation client to a UI over HTTP and can optionally host a development
// backend that speaks the remote generation contract.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/phrazzld/blogcraft/internal/config"
	"github.com/phrazzld/blogcraft/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
