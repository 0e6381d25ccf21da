package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

var (
	decryptKey     string
	decryptSkipVal bool
	decryptVerify  bool
)

func init() {
	cmd := newDecryptCmd()
	cmd.Flags().StringVarP(&decryptKey, "key", "k", "", "Master key as 64 hex characters (required)")
	cmd.Flags().BoolVar(&decryptSkipVal, "skip-validation", false, "Skip the up-front key check against page 1")
	cmd.Flags().BoolVar(&decryptVerify, "verify", false, "Open the decrypted output with SQLite and run an integrity check")
	_ = cmd.MarkFlagRequired("key")
	rootCmd.AddCommand(cmd)
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <input.db> <output.db>",
		Short: "Decrypt one encrypted database file",
		Long: `The decrypt command decrypts a single encrypted database into a standard
SQLite file. Every page is authenticated before any plaintext is written.

Example:
  wxctl decrypt MicroMsg.db out/MicroMsg.db --key 64hexchars...
  wxctl decrypt MicroMsg.db out/MicroMsg.db -k 64hexchars... --verify`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecrypt(args)
		},
	}
	return cmd
}

func runDecrypt(args []string) error {
	inPath, outPath := args[0], args[1]

	printVerbose("Decrypting database: %s\n", inPath)

	opts := &wechat.DecryptOptions{
		SkipValidation: decryptSkipVal,
		VerifyOutput:   decryptVerify,
		Progress:       cliProgress{},
	}
	stats, err := wechat.DecryptDatabase(inPath, outPath, decryptKey, opts)
	if err != nil {
		return fmt.Errorf("decrypt failed: %w", err)
	}

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("Decrypted %s -> %s\n", inPath, outPath)
	printInfo("  Pages: %d\n", stats.Pages)
	printInfo("  Bytes: %d\n", stats.Bytes)
	printInfo("  Duration: %s\n", stats.Duration)
	return nil
}
