package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "wxctl",
	Short: "Decrypt WeChat Windows V4 databases and images",
	Long: `wxctl decrypts WeChat Windows V4 data files: SQLCipher-style encrypted
SQLite databases (single files or whole directory trees) and "dat" image
containers. Every database page is authenticated before its plaintext is
written; image containers carry no authentication tag.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

// Exit codes: 1 for generic failures, 2 when the master key was rejected.
const (
	exitFailure  = 1
	exitWrongKey = 2
)

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		if wechat.IsWrongKey(err) {
			os.Exit(exitWrongKey)
		}
		os.Exit(exitFailure)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
