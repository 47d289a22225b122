package main

import (
	"fmt"
	"os"

	"github.com/example/go-brahmi-lipi/internal/text"
	"github.com/spf13/cobra"
)

func newEncodeFileCmd() *cobra.Command {
	var (
		out   string
		width int
	)

	cmd := &cobra.Command{
		Use:   "encode-file PATH",
		Short: "Encode a text file, prefixed with the script boundary marker",
		Long: "Encode PATH and print the ids. With --out the ids are written as " +
			"little-endian integers of --width bits instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := openTokenizer(cfg, cfg.Paths.Vocabulary)
			if err != nil {
				return err
			}

			ids, err := tok.EncodeFile(args[0])
			if err != nil {
				return err
			}

			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text.FormatTokens(ids))
				return err
			}

			return writeTokenFile(out, ids, width)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write binary token ids to this file")
	cmd.Flags().IntVar(&width, "width", 16, "Bits per token id in --out (16|32)")

	return cmd
}

func writeTokenFile(path string, ids []uint32, width int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := text.WriteTokens(f, ids, width); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	return nil
}
