package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/srcstash/srcstash/pkg/store"
)

// TabWidth is the width of tabs in formatted output.
const TabWidth = 2

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the source store",
		Long:  "Show information about, and the contents of, the shared source store",
	}

	cmd.AddCommand(
		newCacheInfoCmd(),
		newCacheDirCmd(),
		newCacheListCmd(),
	)

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show store statistics",
		RunE:  runCacheInfo,
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show the store root path",
		RunE:  runCacheDir,
	}
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every cached package version",
		RunE:  runCacheList,
	}
}

func runCacheInfo(*cobra.Command, []string) error {
	st, err := loadStoreFromConfig()
	if err != nil {
		return err
	}

	info, err := st.GetInfo()
	if err != nil {
		return err
	}

	fmt.Printf("Store root:  %s\n", info.Root)
	fmt.Printf("Entries:     %d\n", info.Entries)
	fmt.Printf("Total size:  %s\n", humanize.Bytes(uint64(info.TotalSize)))
	return nil
}

func runCacheDir(*cobra.Command, []string) error {
	st, err := loadStoreFromConfig()
	if err != nil {
		return err
	}
	fmt.Println(st.Root())
	return nil
}

func runCacheList(*cobra.Command, []string) error {
	st, err := loadStoreFromConfig()
	if err != nil {
		return err
	}

	entries, err := st.List()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Ref.String() < entries[j].Ref.String()
	})

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "PACKAGE\tVERSION\tPATH")
	for _, entry := range entries {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", entry.Ref.Name, entry.Ref.Version, entry.Path)
	}
	return tabWriter.Flush()
}

func loadStoreFromConfig() (*store.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return loadStore(cfg)
}
