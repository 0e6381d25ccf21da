package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wxforge/wxkit/pkg/wechat"
)

var (
	imageXorKey string
	imageAESKey string
)

func init() {
	cmd := newImageCmd()
	cmd.Flags().StringVar(&imageXorKey, "xor-key", "", "XOR key as 2 hex characters (default: probe the file)")
	cmd.Flags().StringVar(&imageAESKey, "aes-key", "", "Image AES key, 16 characters or 32 hex characters (V4 only)")
	rootCmd.AddCommand(cmd)
}

func newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <input.dat> [output]",
		Short: "Decrypt one encrypted image file",
		Long: `The image command decodes an encrypted image container. V3 files need
only the XOR key, which can usually be probed from the file itself; V4 files
additionally need the 16-byte image AES key. When the output path is
omitted, the decoded format picks the extension.

Example:
  wxctl image pic.dat
  wxctl image pic.dat pic.jpg --xor-key a5
  wxctl image pic.dat --xor-key a5 --aes-key 0123456789abcdef`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(args)
		},
	}
	return cmd
}

func runImage(args []string) error {
	inPath := args[0]
	var outPath string
	if len(args) > 1 {
		outPath = args[1]
	}

	version, err := peekImageVersion(inPath)
	if err != nil {
		return err
	}
	printVerbose("Detected container: %s\n", version)

	xorKey, err := resolveXorKey(inPath, version)
	if err != nil {
		return err
	}

	var aesKey []byte
	if version != wechat.ImageV3 {
		if aesKey, err = parseImageAESKey(imageAESKey); err != nil {
			return err
		}
	}

	autoName := outPath == ""
	if autoName {
		outPath = strings.TrimSuffix(inPath, ".dat") + ".decoded"
	}

	if _, err := wechat.DecryptImage(inPath, outPath, xorKey, aesKey); err != nil {
		return fmt.Errorf("image decrypt failed: %w", err)
	}

	if autoName {
		if renamed, err := renameByFormat(outPath); err == nil {
			outPath = renamed
		}
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"input":   inPath,
			"output":  outPath,
			"version": version.String(),
		})
	}
	printInfo("Decrypted %s (%s) -> %s\n", inPath, version, outPath)
	return nil
}

// peekImageVersion reads just enough of the file head to classify the
// container without loading the whole blob.
func peekImageVersion(path string) (wechat.ImageVersion, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	head := make([]byte, 16)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("read image: %w", err)
	}
	return wechat.DetectImageVersion(head[:n]), nil
}

// resolveXorKey takes the --xor-key flag when set, otherwise probes the file.
// Probing only works on V3 files, whose head is plain XOR-encrypted image
// magic; a V4 head is AES ciphertext.
func resolveXorKey(path string, version wechat.ImageVersion) (byte, error) {
	if imageXorKey != "" {
		b, err := hex.DecodeString(strings.TrimPrefix(imageXorKey, "0x"))
		if err != nil || len(b) != 1 {
			return 0, fmt.Errorf("xor key must be 2 hex characters, got %q", imageXorKey)
		}
		return b[0], nil
	}
	if version != wechat.ImageV3 {
		return 0, fmt.Errorf("--xor-key is required for %s files", version)
	}
	key, ok, err := wechat.DetectImageXorKey(path)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("could not probe XOR key; pass --xor-key")
	}
	printVerbose("Probed XOR key: %02x\n", key)
	return key, nil
}

// parseImageAESKey accepts the key either verbatim (16 characters) or
// hex-encoded (32 characters, optionally 0x-prefixed).
func parseImageAESKey(s string) ([]byte, error) {
	if len(s) == 34 {
		s = strings.TrimPrefix(s, "0x")
	}
	switch len(s) {
	case 0:
		return nil, fmt.Errorf("--aes-key is required for V4 files")
	case 16:
		return []byte(s), nil
	case 32:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("aes key is not valid hex: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("aes key must be 16 characters or 32 hex characters, got %d", len(s))
	}
}

// renameByFormat sniffs the decoded file and swaps its extension for the
// detected image format. The placeholder name survives unknown magics.
func renameByFormat(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return path, err
	}
	head := make([]byte, 16)
	n, _ := io.ReadFull(f, head)
	f.Close()

	ext := wechat.DetectImageFormat(head[:n])
	if ext == "" {
		return path, nil
	}
	renamed := strings.TrimSuffix(path, ".decoded") + "." + ext
	if err := os.Rename(path, renamed); err != nil {
		return path, err
	}
	return renamed, nil
}
