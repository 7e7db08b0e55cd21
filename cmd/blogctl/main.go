// Package main implements blogctl, a one-shot command that generates a blog
// post for a topic and prints it or writes it to an export file.
//
// Usage:
//
//	blogctl -topic "Edge computing" [-out DIR] [-timeout 30s]
//
// The endpoint and log level come from the same configuration as the server
// (BLOGCRAFT_CLIENT_ENDPOINT and friends).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/blogcraft/internal/config"
	"github.com/phrazzld/blogcraft/internal/export"
	"github.com/phrazzld/blogcraft/internal/generation"
	"github.com/phrazzld/blogcraft/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, newClient))
}

// generatorFactory builds the generator used for a run.
type generatorFactory func(cfg *config.Config, logger *slog.Logger) (generation.Generator, error)

func newClient(cfg *config.Config, logger *slog.Logger) (generation.Generator, error) {
	return generation.NewClient(cfg.Client, logger)
}

// run parses args, generates once and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, factory generatorFactory) int {
	fs := flag.NewFlagSet("blogctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	topic := fs.String("topic", "", "blog topic to generate content for")
	outDir := fs.String("out", "", "directory to write the export file to instead of printing")
	timeout := fs.Duration("timeout", 0, "overall deadline for the generation call (0 uses the configured client timeout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// diagnostics go to stderr so stdout carries only the post
	l := logger.New(stderr, levelOf(cfg.Server.LogLevel))

	gen, err := factory(cfg, l)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	res, err := gen.Generate(ctx, *topic)
	if err != nil {
		fmt.Fprintf(stderr, "error [%s]: %v\n", generation.KindOf(err), err)
		return 1
	}

	if *outDir != "" {
		path, err := export.WriteFile(*outDir, res, time.Now())
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s\nwrote %s\n", res.Message, path)
		return 0
	}

	fmt.Fprintf(stdout, "%s\n\n%s\n", res.Message, res.Content)
	return 0
}

func levelOf(name string) slog.Level {
	if lvl, ok := logger.ParseLevel(name); ok {
		return lvl
	}
	return slog.LevelInfo
}
