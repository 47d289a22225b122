package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-brahmi-lipi/internal/config"
	"github.com/example/go-brahmi-lipi/internal/server"
	"github.com/example/go-brahmi-lipi/internal/tokenizer"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "brahmitok",
		Short:         "Syllable tokenizer for Brahmic scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newEncodeFileCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newCollectCmd())
	cmd.AddCommand(newVocabCmd())
	cmd.AddCommand(newScriptsCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newBenchCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Script.Name == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// openTokenizer builds a tokenizer for cfg over the vocabulary at path. An
// empty path starts from a fresh vocabulary.
func openTokenizer(cfg config.Config, path string) (*tokenizer.Tokenizer, error) {
	return tokenizer.New(cfg.Script.Name, path,
		tokenizer.WithStrict(cfg.Codec.Strict),
		tokenizer.WithLogger(slog.Default()),
	)
}
