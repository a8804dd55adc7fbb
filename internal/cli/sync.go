package cli

import (
	"github.com/spf13/cobra"

	"github.com/srcstash/srcstash/internal/logger"
	"github.com/srcstash/srcstash/pkg/acquire"
	"github.com/srcstash/srcstash/pkg/model"
	"github.com/srcstash/srcstash/pkg/project"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch sources for every project dependency",
		Long: `Read the project manifest and download the sources of every declared
dependency at its installed version (or, when not installed, at the concrete
version its declared range names). Packages are fetched in parallel; a
failure on one never aborts the others.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, projectDir)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "Project directory containing package.json")

	return cmd
}

func runSync(cmd *cobra.Command, projectDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := loadStore(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	manifest := project.NewManifest(projectDir)
	deps, err := manifest.Dependencies(ctx)
	if err != nil {
		return err
	}
	if len(deps) == 0 {
		logger.Info("No dependencies declared, nothing to sync")
		return nil
	}

	seen := make(map[string]bool, len(deps))
	reqs := make([]acquire.Request, 0, len(deps))
	for _, dep := range deps {
		if seen[dep.Name] {
			continue
		}
		seen[dep.Name] = true

		version, err := manifest.InstalledVersion(ctx, dep.Name)
		if err != nil {
			normalized, ok := model.NormalizeVersionSpec(dep.Specifier)
			if !ok {
				logger.Warnf("skipping %s: no installed version and %q names no concrete version", dep.Name, dep.Specifier)
				continue
			}
			version = normalized
		}
		reqs = append(reqs, acquire.Request{Name: dep.Name, Version: version})
	}

	logger.Infof("Syncing sources for %d dependencies", len(reqs))
	return summarize(loadAcquirer(cfg, st, projectDir).AcquireAll(ctx, reqs))
}
