package main

import (
	"fmt"

	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/spf13/cobra"
)

func newScriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List registered script profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			for _, name := range script.Names() {
				p, err := script.Lookup(name)
				if err != nil {
					return err
				}

				active := " "
				if name == cfg.Script.Name {
					active = "*"
				}

				marker, _ := p.BoundaryMarker()
				_, err = fmt.Fprintf(w, "%s %-10s virama %s  boundary %s  unknown %s\n",
					active, name,
					script.FormatRune(p.Virama()),
					script.FormatRune(marker),
					script.FormatRune(p.UnknownSentinel()),
				)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
