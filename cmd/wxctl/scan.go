package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "List candidate database files under a directory tree",
		Long: `The scan command walks a directory tree and lists every database file a
batch run would attempt, in the deterministic order batch processes them.

Example:
  wxctl scan db_storage
  wxctl scan db_storage --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args)
		},
	}
	return cmd
}

func runScan(args []string) error {
	root := args[0]

	entries, err := wechat.ScanDatabases(root)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if jsonOut {
		return printJSON(entries)
	}

	var total int64
	for _, e := range entries {
		printInfo("%10d  %s\n", e.SizeBytes, e.RelPath)
		total += e.SizeBytes
	}
	printInfo("\n%d file(s), %d bytes\n", len(entries), total)
	return nil
}
