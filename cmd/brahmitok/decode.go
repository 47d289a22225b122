package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/go-brahmi-lipi/internal/text"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var (
		in    string
		width int
	)

	cmd := &cobra.Command{
		Use:   "decode [IDS...]",
		Short: "Decode token ids to text",
		Long: "Decode ids given as arguments, read as text from stdin, or read as " +
			"binary from --in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			ids, err := readTokenInput(args, in, width, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tok, err := openTokenizer(cfg, cfg.Paths.Vocabulary)
			if err != nil {
				return err
			}

			s, err := tok.Decode(ids)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Read binary token ids from this file")
	cmd.Flags().IntVar(&width, "width", 16, "Bits per token id in --in (16|32)")

	return cmd
}

func readTokenInput(args []string, in string, width int, stdin io.Reader) ([]uint32, error) {
	switch {
	case in != "":
		f, err := os.Open(in)
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", in, err)
		}
		defer func() { _ = f.Close() }()

		return text.ReadTokens(f, width)
	case len(args) > 0:
		return text.ParseTokens(strings.Join(args, " "))
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return text.ParseTokens(string(data))
	}
}
