package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/vocab"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Vocabulary file utilities",
	}

	cmd.AddCommand(newVocabInitCmd())
	cmd.AddCommand(newVocabInspectCmd())

	return cmd
}

func newVocabInitCmd() *cobra.Command {
	var (
		out   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a vocabulary holding only the reserved ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if out == "" {
				out = cfg.Paths.Vocabulary
			}

			if !force {
				if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", out)
				}
			}

			p, err := script.Lookup(cfg.Script.Name)
			if err != nil {
				return err
			}

			v := vocab.New(p)
			if err := v.WriteFile(out); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ids\n", out, v.Len())
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default --vocabulary)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

// inspectReport is the machine-readable form of vocab inspect.
type inspectReport struct {
	Script  string      `json:"script" yaml:"script"`
	Path    string      `json:"path" yaml:"path"`
	Stats   vocab.Stats `json:"stats" yaml:"stats"`
	Entries []entryView `json:"entries,omitempty" yaml:"entries,omitempty"`
}

type entryView struct {
	Token    uint32 `json:"token" yaml:"token"`
	Syllable string `json:"syllable" yaml:"syllable"`
	Text     string `json:"text" yaml:"text"`
}

func newVocabInspectCmd() *cobra.Command {
	var (
		format  string
		entries bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a vocabulary file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			p, err := script.Lookup(cfg.Script.Name)
			if err != nil {
				return err
			}

			v, err := vocab.ReadFile(cfg.Paths.Vocabulary, p)
			if err != nil {
				return err
			}

			rep := inspectReport{
				Script: p.Name(),
				Path:   cfg.Paths.Vocabulary,
				Stats:  v.Stats(),
			}

			if entries {
				for _, e := range v.Snapshot().Syllables {
					if e.Token < vocab.IdentitySize {
						continue
					}

					rep.Entries = append(rep.Entries, entryView{
						Token:    e.Token,
						Syllable: e.Syllable.String(),
						Text:     e.Syllable.Text(),
					})
				}
			}

			return writeInspectReport(cmd.OutOrStdout(), rep, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text|json|yaml)")
	cmd.Flags().BoolVar(&entries, "entries", false, "List every id above the identity range")

	return cmd
}

func writeInspectReport(w io.Writer, rep inspectReport, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		st := rep.Stats
		fmt.Fprintf(w, "script:       %s\n", rep.Script)
		fmt.Fprintf(w, "path:         %s\n", rep.Path)
		fmt.Fprintf(w, "size:         %d (maximum id %d)\n", st.Size, st.Maximum)
		fmt.Fprintf(w, "unknown id:   %d\n", st.Unknown)
		fmt.Fprintf(w, "mono:         %d\n", st.Mono)
		fmt.Fprintf(w, "cluster:      %d\n", st.Cluster)
		fmt.Fprintf(w, "meta:         %d\n", st.Meta)
		fmt.Fprintf(w, "placeholders: %d\n", st.Placeholders)
		for _, e := range rep.Entries {
			fmt.Fprintf(w, "%d\t%s\t%s\n", e.Token, e.Syllable, e.Text)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text|json|yaml)", format)
	}
}
