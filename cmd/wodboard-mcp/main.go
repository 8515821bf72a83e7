package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/wodboard/internal/config"
	wodmcp "github.com/claude/wodboard/internal/mcp"
	"github.com/claude/wodboard/internal/search"
	"github.com/claude/wodboard/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remote := flag.String("remote", "", "base URL of a WODBoard server to query instead of the database (e.g. http://wodboard)")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	opts := search.DefaultOptions()
	var ds wodmcp.DataSource

	if *remote != "" {
		ds = wodmcp.NewHTTPClient(*remote)
		log.Info("remote mode", "url", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		opts = search.Options{
			Threshold:           cfg.Search.Threshold,
			MultiTokenThreshold: cfg.Search.MultiTokenThreshold,
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("local mode", "database", cfg.Database.Name)
	}

	s := wodmcp.New(ds, opts, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
