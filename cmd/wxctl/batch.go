package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

var (
	batchKey      string
	batchWorkers  int
	batchSkipVal  bool
	batchVerify   bool
	batchScanOnly bool
)

func init() {
	cmd := newBatchCmd()
	cmd.Flags().StringVarP(&batchKey, "key", "k", "", "Master key as 64 hex characters (required)")
	cmd.Flags().IntVar(&batchWorkers, "workers", 0, "Parallel workers (0 = sequential with page progress)")
	cmd.Flags().BoolVar(&batchSkipVal, "skip-validation", false, "Skip the up-front key check against page 1")
	cmd.Flags().BoolVar(&batchVerify, "verify", false, "Open each decrypted output with SQLite and run an integrity check")
	cmd.Flags().BoolVar(&batchScanOnly, "scan-only", false, "Stop after enumeration; decrypt nothing")
	_ = cmd.MarkFlagRequired("key")
	rootCmd.AddCommand(cmd)
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <root> <output-root>",
		Short: "Decrypt every database under a directory tree",
		Long: `The batch command scans a directory tree for database files, mirrors the
tree under the output root, and decrypts every file it found. A failing
file is recorded in the report and never aborts its siblings.

Example:
  wxctl batch db_storage out --key 64hexchars...
  wxctl batch db_storage out -k 64hexchars... --workers 4 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args)
		},
	}
	return cmd
}

func runBatch(args []string) error {
	root, outRoot := args[0], args[1]

	printVerbose("Scanning: %s\n", root)

	opts := &wechat.BatchOptions{
		Workers:        batchWorkers,
		SkipValidation: batchSkipVal,
		VerifyOutput:   batchVerify,
		ScanOnly:       batchScanOnly,
		Progress:       cliProgress{},
	}
	report, err := wechat.DecryptBatch(root, outRoot, batchKey, opts)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nBatch %s finished in %s\n", report.JobID, report.Elapsed)
	printInfo("  Found: %d\n", len(report.Entries))
	printInfo("  Decrypted: %d\n", len(report.Successes))
	printInfo("  Failed: %d\n", len(report.Failures))
	for _, f := range report.Failures {
		printInfo("    %s: %s\n", f.RelPath, f.ErrMsg)
	}
	return nil
}
