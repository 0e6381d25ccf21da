package main

import (
	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

var validateKey string

func init() {
	cmd := newValidateCmd()
	cmd.Flags().StringVarP(&validateKey, "key", "k", "", "Master key as 64 hex characters (required)")
	_ = cmd.MarkFlagRequired("key")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input.db>",
		Short: "Check a master key against a database without decrypting it",
		Long: `The validate command authenticates the first page of an encrypted
database with the supplied key. Nothing is written. The exit code is 0 when
the key is correct and 2 when it is rejected.

Example:
  wxctl validate MicroMsg.db --key 64hexchars...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	path := args[0]

	printVerbose("Validating key against: %s\n", path)

	if err := wechat.ValidateKey(path, validateKey); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"path": path, "keyValid": true})
	}
	printInfo("Key accepted for %s\n", path)
	return nil
}
