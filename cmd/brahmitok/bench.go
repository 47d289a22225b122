package main

import (
	"fmt"
	"time"

	"github.com/example/go-brahmi-lipi/internal/bench"
	"github.com/example/go-brahmi-lipi/internal/text"
	"github.com/example/go-brahmi-lipi/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		runs   int
		format string
		floor  float64
	)

	cmd := &cobra.Command{
		Use:   "bench CORPUS",
		Short: "Benchmark encode throughput over a corpus file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			contents, err := text.ReadFile(args[0])
			if err != nil {
				return err
			}

			tok, err := openTokenizer(cfg, cfg.Paths.Vocabulary)
			if err != nil {
				return err
			}

			results, err := runBench(tok, string(contents), runs)
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				bench.FormatJSON(results, stats, out)
			default:
				bench.FormatTable(results, stats, out)
			}

			return bench.CheckThroughputFloor(bench.MeanThroughput(results), floor)
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 5, "Number of encode runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&floor, "min-throughput", 0, "Exit non-zero if mean codepoints/sec falls below this value (0 = disabled)")

	return cmd
}

func runBench(tok *tokenizer.Tokenizer, s string, runs int) ([]bench.RunResult, error) {
	results := make([]bench.RunResult, 0, runs)
	codepoints := len([]rune(s))

	for i := range runs {
		start := time.Now()
		ids, _, err := tok.EncodeText(s, false)
		d := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}

		results = append(results, bench.RunResult{
			Index:      i,
			Cold:       i == 0,
			Duration:   d,
			Codepoints: codepoints,
			Tokens:     len(ids),
			Throughput: bench.CalcThroughput(codepoints, d),
		})
	}

	return results, nil
}
