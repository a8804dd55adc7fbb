package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srcstash/srcstash/internal/logger"
	"github.com/srcstash/srcstash/pkg/acquire"
	"github.com/srcstash/srcstash/pkg/model"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	var (
		force      bool
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "fetch NAME@VERSION...",
		Short: "Download package sources into the store",
		Long: `Download the upstream sources of one or more package versions into the
shared store. Repository metadata comes from the registry; already cached
versions are not downloaded again unless --force is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, force, projectDir)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-download even if the version is already cached")
	cmd.Flags().StringVar(&projectDir, "project", ".", "Project directory (for .npmrc registry overrides)")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string, force bool, projectDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := loadStore(cfg)
	if err != nil {
		return err
	}

	reqs := make([]acquire.Request, 0, len(args))
	for _, arg := range args {
		ref, err := model.ParseRef(arg)
		if err != nil {
			return fmt.Errorf("invalid package reference %q: %w", arg, err)
		}
		if force {
			if err := st.Remove(ref); err != nil {
				return err
			}
			logger.Debugf("dropped cached entry for %s", ref)
		}
		reqs = append(reqs, acquire.Request{Name: ref.Name, Version: ref.Version})
	}

	mgr := loadAcquirer(cfg, st, projectDir)
	return summarize(mgr.AcquireAll(cmd.Context(), reqs))
}
