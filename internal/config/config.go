package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Script   ScriptConfig `mapstructure:"script"`
	Paths    PathsConfig  `mapstructure:"paths"`
	Codec    CodecConfig  `mapstructure:"codec"`
	Server   ServerConfig `mapstructure:"server"`
	LogLevel string       `mapstructure:"log_level"`
}

type ScriptConfig struct {
	Name string `mapstructure:"name"`
}

type PathsConfig struct {
	Vocabulary string `mapstructure:"vocabulary"`
}

type CodecConfig struct {
	Strict        bool `mapstructure:"strict"`
	PrependMarker bool `mapstructure:"prepend_marker"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps flag names to their config keys.
var flagKeys = map[string]string{
	"script":                  "script.name",
	"vocabulary":              "paths.vocabulary",
	"strict":                  "codec.strict",
	"prepend-marker":          "codec.prepend_marker",
	"server-listen-addr":      "server.listen_addr",
	"workers":                 "server.workers",
	"max-text-bytes":          "server.max_text_bytes",
	"request-timeout":         "server.request_timeout",
	"server-shutdown-timeout": "server.shutdown_timeout",
	"log-level":               "log_level",
}

func DefaultConfig() Config {
	return Config{
		Script: ScriptConfig{
			Name: "telugu",
		},
		Paths: PathsConfig{
			Vocabulary: "vocab.json",
		},
		Codec: CodecConfig{
			Strict:        false,
			PrependMarker: false,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			MaxTextBytes:    1 << 20,
			RequestTimeout:  30,
			ShutdownTimeout: 30,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("script", defaults.Script.Name, "Script profile (telugu|devnagari)")
	fs.String("vocabulary", defaults.Paths.Vocabulary, "Path to vocabulary JSON file")
	fs.Bool("strict", defaults.Codec.Strict, "Treat a vowel sign with no open cluster as a violation and fail encoding on diagnostics")
	fs.Bool("prepend-marker", defaults.Codec.PrependMarker, "Prefix encoded output with the script's boundary marker")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent tokenizer requests")
	fs.Int("max-text-bytes", defaults.Server.MaxTextBytes, "Max request text size in bytes")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds (0 disables)")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)

	if opts.Cmd != nil {
		err := bindFlags(v, opts.Cmd.Flags())
		if err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("BRAHMITOK")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("paths.vocabulary", "BRAHMITOK_VOCABULARY", "BRAHMITOK_PATHS_VOCABULARY"); err != nil {
		return Config{}, fmt.Errorf("bind vocabulary env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("brahmitok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	name, err := NormalizeScript(cfg.Script.Name)
	if err != nil {
		return Config{}, err
	}
	cfg.Script.Name = name

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("script.name", c.Script.Name)
	v.SetDefault("paths.vocabulary", c.Paths.Vocabulary)
	v.SetDefault("codec.strict", c.Codec.Strict)
	v.SetDefault("codec.prepend_marker", c.Codec.PrependMarker)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds each registered flag to its nested key, so a config file
// and the environment address the same setting by the same name. Flags the
// set does not carry are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}
