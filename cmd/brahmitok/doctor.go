package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-brahmi-lipi/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var (
		corpora []string
		fresh   bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the script profile, vocabulary and corpora",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			dcfg := doctor.Config{
				ScriptName:     cfg.Script.Name,
				VocabularyPath: cfg.Paths.Vocabulary,
				CorpusFiles:    corpora,
			}
			if fresh {
				dcfg.VocabularyPath = ""
			}

			out := cmd.OutOrStdout()
			result := doctor.Run(dcfg, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&corpora, "corpus", nil, "Corpus file to segment against the vocabulary (repeatable)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Check a fresh vocabulary instead of --vocabulary")

	return cmd
}
