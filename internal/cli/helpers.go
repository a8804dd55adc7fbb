// Package cli implements the srcstash commands.
package cli

import (
	"fmt"

	"github.com/srcstash/srcstash/internal/logger"
	"github.com/srcstash/srcstash/pkg/acquire"
	"github.com/srcstash/srcstash/pkg/archive"
	"github.com/srcstash/srcstash/pkg/config"
	"github.com/srcstash/srcstash/pkg/fetch"
	"github.com/srcstash/srcstash/pkg/git"
	"github.com/srcstash/srcstash/pkg/model"
	"github.com/srcstash/srcstash/pkg/registry"
	"github.com/srcstash/srcstash/pkg/store"
	"github.com/srcstash/srcstash/pkg/tags"
)

// These variables are set by the main package from the persistent flags.
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration honoring the global flags.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, logger.OutputFormat(cfg.Settings.OutputFormat))
	return cfg, nil
}

// loadStore creates the store manager from the configured root.
func loadStore(cfg *config.Config) (*store.Manager, error) {
	st, err := store.NewManager(cfg.Settings.StoreDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

// loadAcquirer wires the full acquisition pipeline. projectDir is used for
// the .npmrc registry override chain.
func loadAcquirer(cfg *config.Config, st *store.Manager, projectDir string) *acquire.Manager {
	fetcher := fetch.New(cfg.Settings.HTTPTimeout)
	baseURL := registry.ResolveBaseURL(cfg.Settings.Registry, projectDir)
	reg := registry.NewClient(fetcher, baseURL, registry.AuthFromNpmrc(baseURL, projectDir))
	gitClient := git.NewClient(git.NewExecRunner(cfg.Settings.GitBinary))

	mgr := acquire.NewManager(reg, tags.NewResolver(gitClient), fetcher, archive.NewManager(), gitClient, st)
	mgr.Concurrency = cfg.Settings.MaxConcurrent
	mgr.Hooks = acquire.Hooks{OnEvent: printEvent}
	return mgr
}

// printEvent renders one progress notification through the logging facade,
// so the configured output format applies to progress as well.
func printEvent(e model.Event) {
	fields := logger.Fields{"package": e.Name, "version": e.Version}
	if e.Detail != "" {
		fields["detail"] = e.Detail
	}
	switch e.Status {
	case model.StatusError:
		logger.Error(string(e.Status), fields)
	case model.StatusSkipped:
		logger.Warn(string(e.Status), fields)
	default:
		logger.Info(string(e.Status), fields)
	}
}

// summarize reports a batch of outcomes and returns an error when any
// acquisition failed.
func summarize(results map[string]acquire.Outcome) error {
	var cached, acquired, skipped, failed int
	var firstErr error
	for ref, outcome := range results {
		switch outcome.Kind {
		case acquire.KindCached:
			cached++
		case acquire.KindAcquired:
			acquired++
		case acquire.KindSkipped:
			skipped++
			logger.Warnf("skipped %s: %s", ref, outcome.Reason)
		case acquire.KindFailed:
			failed++
			if firstErr == nil {
				firstErr = outcome.Err
			}
		}
	}

	logger.Info("Acquisition finished", logger.Fields{
		"acquired": acquired,
		"cached":   cached,
		"skipped":  skipped,
		"failed":   failed,
	})
	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed, first error: %w", failed, len(results), firstErr)
	}
	return nil
}
