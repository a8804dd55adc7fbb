package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srcstash/srcstash/internal/logger"
	"github.com/srcstash/srcstash/pkg/model"
)

// NewLinkCmd creates the link command.
func NewLinkCmd() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "link NAME@VERSION",
		Short: "Link a cached version into the project",
		Long: `Create a project-local reference (under .srcstash/) pointing at a cached
source tree, so the project can reach the sources without duplicating them.
The version must already be in the store; fetch it first if it is not.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLink(args[0], projectDir)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "Project directory to place the link in")

	return cmd
}

func runLink(arg, projectDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := loadStore(cfg)
	if err != nil {
		return err
	}

	ref, err := model.ParseRef(arg)
	if err != nil {
		return fmt.Errorf("invalid package reference %q: %w", arg, err)
	}

	linkPath, err := st.Link(projectDir, ref)
	if err != nil {
		return err
	}

	logger.Success("Linked", logger.Fields{"ref": ref.String(), "path": linkPath})
	return nil
}
