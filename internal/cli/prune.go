package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srcstash/srcstash/internal/logger"
	"github.com/srcstash/srcstash/pkg/project"
	"github.com/srcstash/srcstash/pkg/prune"
)

// NewPruneCmd creates the prune command.
func NewPruneCmd() *cobra.Command {
	opts := prune.DefaultOptions()
	var (
		noProjectDeps bool
		projectDir    string
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached sources no keep-rule protects",
		Long: `Evaluate the keep-rules over every cached entry and remove the rest.
By default the newest version of each package and the target version of every
project dependency are kept. Use --dry-run to see the removal set first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.KeepProjectDeps = !noProjectDeps
			return runPrune(cmd, opts, projectDir)
		},
	}

	cmd.Flags().IntVar(&opts.KeepLatest, "keep-latest", opts.KeepLatest, "Keep the newest N versions of every package (0 disables)")
	cmd.Flags().BoolVar(&noProjectDeps, "no-project-deps", false, "Do not keep project dependency versions")
	cmd.Flags().StringArrayVar(&opts.Keep, "keep", nil, "Keep a literal name@version reference (repeatable)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would be removed without deleting anything")
	cmd.Flags().StringVar(&projectDir, "project", ".", "Project directory containing package.json")

	return cmd
}

func runPrune(cmd *cobra.Command, opts prune.Options, projectDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := loadStore(cfg)
	if err != nil {
		return err
	}

	var proj project.Info
	if opts.KeepProjectDeps {
		proj = project.NewManifest(projectDir)
	}

	result, err := prune.NewEngine(st, proj).Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		logger.Warnf("%s", warning)
	}

	verb := "removed"
	if result.DryRun {
		verb = "would remove"
	}
	for _, entry := range result.Removed {
		fmt.Printf("%s %s\n", verb, entry.Ref)
	}

	logger.Info("Prune finished", logger.Fields{
		"removed": len(result.Removed),
		"kept":    len(result.Kept),
		"dry_run": result.DryRun,
	})
	return nil
}
