package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/example/go-brahmi-lipi/internal/text"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode text to token ids",
		Long:  "Encode --text, or standard input when --text is empty, and print the ids separated by spaces.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			s, err := readInputText(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tok, err := openTokenizer(cfg, cfg.Paths.Vocabulary)
			if err != nil {
				return err
			}

			ids, _, err := tok.EncodeText(s, cfg.Codec.PrependMarker)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text.FormatTokens(ids))
			return err
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to encode (reads stdin when empty)")

	return cmd
}

// readInputText returns flagText, or all of stdin with surrounding
// whitespace removed. Stdin is decoded like a corpus file.
func readInputText(flagText string, stdin io.Reader) (string, error) {
	if flagText != "" {
		return flagText, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	rs, err := text.Decode(data)
	if err != nil {
		return "", err
	}

	s := strings.TrimSpace(string(rs))
	if s == "" {
		return "", errors.New("no input text: pass --text or pipe text on stdin")
	}

	return s, nil
}
