// Command queryspan is a multi-source search CLI and MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/config/file"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/sources/filesystem"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/sources/github"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/sources/googledrive"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/sources/slack"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/storage/memory"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driven/storage/sqlite"
	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driving/cli"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/core/services"
	"github.com/queryspan-labs/queryspan-cli/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return err
	}

	dataDir := filepath.Join(filepath.Dir(cfg.Path()), "data")

	store, backend, err := buildUserStore(cfg, dataDir)
	if err != nil {
		return err
	}
	if err := store.Connect(ctx); err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	sources := buildSources(ctx, cfg)

	orchestrator := services.NewQueryOrchestrator(connectSources(ctx, sources))
	userService := services.NewUserService(store)

	cli.SetServices(&cli.Services{
		Query:         orchestrator,
		User:          userService,
		UserBackend:   backend,
		SearchTimeout: time.Duration(cfg.GetInt("search.timeout_seconds")) * time.Second,
	})

	return cli.Execute(ctx)
}

// buildUserStore creates the user store named by users.backend.
// Defaults to the JSON file store.
func buildUserStore(cfg *file.ConfigStore, dataDir string) (driven.UserStore, string, error) {
	backend := cfg.GetString("users.backend")
	if backend == "" {
		backend = "json"
	}

	switch backend {
	case "sqlite":
		store, err := sqlite.NewUserStore(dataDir)
		if err != nil {
			return nil, "", err
		}
		return store, backend, nil
	case "memory":
		return memory.NewUserStore(), backend, nil
	default:
		return jsonfile.NewUserStore(filepath.Join(dataDir, "users.json")), "json", nil
	}
}

// buildSources creates a data source for every configured integration.
func buildSources(ctx context.Context, cfg *file.ConfigStore) []driven.DataSource {
	var sources []driven.DataSource

	if token := cfg.GetStringOrEnv("sources.slack.token", "SLACK_TOKEN"); token != "" {
		sources = append(sources, slack.NewSource(token))
	}

	if token := cfg.GetStringOrEnv("sources.github.token", "GITHUB_TOKEN"); token != "" {
		sources = append(sources, github.NewSource(ctx, token))
	}

	if token := cfg.GetStringOrEnv("sources.googledrive.token", "GOOGLE_DRIVE_TOKEN"); token != "" {
		src, err := googledrive.NewSource(ctx, token)
		if err != nil {
			logger.Error("google drive disabled: %v", err)
		} else {
			sources = append(sources, src)
		}
	}

	if root := cfg.GetString("sources.filesystem.root"); root != "" {
		sources = append(sources, filesystem.NewSource(root))
	}

	return sources
}

// connectSources connects each source, excluding the ones that fail so
// a bad token does not take the whole CLI down.
func connectSources(ctx context.Context, sources []driven.DataSource) []driven.DataSource {
	connected := make([]driven.DataSource, 0, len(sources))
	for _, src := range sources {
		if err := src.Connect(ctx); err != nil {
			logger.Error("%s disabled: %v", src.Name(), err)
			continue
		}
		logger.Debug("%s connected", src.Name())
		connected = append(connected, src)
	}
	return connected
}
