package main

import (
	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

func init() {
	rootCmd.AddCommand(newDetectCmd())
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <input.dat>",
		Short: "Classify an encrypted image and probe its XOR key",
		Long: `The detect command reports the container version of an encrypted image
file. For V3 files it also probes the single-byte XOR key by testing every
candidate against the known image magics.

Example:
  wxctl detect pic.dat
  wxctl detect pic.dat --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(args)
		},
	}
	return cmd
}

func runDetect(args []string) error {
	path := args[0]

	version, err := peekImageVersion(path)
	if err != nil {
		return err
	}

	var (
		xorKey   byte
		xorFound bool
	)
	if version == wechat.ImageV3 {
		if xorKey, xorFound, err = wechat.DetectImageXorKey(path); err != nil {
			return err
		}
	}

	if jsonOut {
		out := map[string]interface{}{
			"path":    path,
			"version": version.String(),
		}
		if xorFound {
			out["xorKey"] = xorKey
		}
		return printJSON(out)
	}

	printInfo("File: %s\n", path)
	printInfo("  Version: %s\n", version)
	if version == wechat.ImageV3 {
		if xorFound {
			printInfo("  XOR key: %02x\n", xorKey)
		} else {
			printInfo("  XOR key: not found\n")
		}
	}
	return nil
}
