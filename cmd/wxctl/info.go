package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <input.db>",
		Short: "Inspect a database file without a key",
		Long: `The info command reports size, page count, and the key-derivation salt of
a database file, and whether the file is encrypted at all. No key is needed.

Example:
  wxctl info MicroMsg.db
  wxctl info MicroMsg.db --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Inspecting: %s\n", path)

	info, err := wechat.GetDatabaseInfo(path)
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nDatabase Information:\n")
	printInfo("  File: %s\n", info.Path)
	printInfo("  Size: %d bytes\n", info.SizeBytes)
	printInfo("  Pages: %d (%d bytes each)\n", info.PageCount, info.PageSize)
	if info.Encrypted {
		printInfo("  Encrypted: yes\n")
		printInfo("  Salt: %s\n", info.SaltHex)
	} else {
		printInfo("  Encrypted: no (plaintext SQLite)\n")
	}
	return nil
}
