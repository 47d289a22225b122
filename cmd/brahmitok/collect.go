package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

// errCollectIncomplete reports that collection hit segmentation failures.
// The vocabulary is still written.
var errCollectIncomplete = errors.New("vocabulary collected with segmentation failures")

func newCollectCmd() *cobra.Command {
	var (
		out   string
		fresh bool
	)

	cmd := &cobra.Command{
		Use:   "collect CORPUS...",
		Short: "Grow the vocabulary from corpus files",
		Long: "Segment every CORPUS and add unseen syllables with sequential ids. " +
			"The vocabulary at --vocabulary is extended when it exists. Exits " +
			"non-zero when any segmentation step failed.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			src := cfg.Paths.Vocabulary
			if fresh {
				src = ""
			} else if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
				src = ""
			}

			tok, err := openTokenizer(cfg, src)
			if err != nil {
				return err
			}

			before := tok.Vocabulary().Len()

			rep, err := tok.CollectVocabularyFiles(args...)
			if err != nil {
				return err
			}

			dst := out
			if dst == "" {
				dst = cfg.Paths.Vocabulary
			}

			if err := tok.WriteVocabularyFile(dst); err != nil {
				return err
			}

			after := tok.Vocabulary().Len()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ids (%d new)\n", dst, after, after-before)

			if err := rep.Err(); err != nil {
				return fmt.Errorf("%w: %w", errCollectIncomplete, err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the vocabulary here (default --vocabulary)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore an existing vocabulary and start from the reserved ids")

	return cmd
}
