package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/primecount"
	"github.com/hupe1980/primecount/sieve"
)

const envPrefix = "PRIMECOUNT"

var errInvalidLogFormat = errors.New("log format must be text or json")

// settings is the resolved configuration: flags over environment over the
// config file over defaults.
type settings struct {
	Workers      int     `mapstructure:"workers"`
	Strategy     string  `mapstructure:"strategy"`
	Policy       string  `mapstructure:"policy"`
	Generator    string  `mapstructure:"generator"`
	SegmentWidth uint64  `mapstructure:"segment-width"`
	MemoryLimit  int64   `mapstructure:"memory-limit"`
	ProgressRate float64 `mapstructure:"progress-rate"`
	LogLevel     string  `mapstructure:"log-level"`
	LogFormat    string  `mapstructure:"log-format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("strategy", primecount.SegmentedParallel.String())
	v.SetDefault("policy", primecount.LockFree.String())
	v.SetDefault("generator", sieve.Eratosthenes{}.Name())
	v.SetDefault("segment-width", 0)
	v.SetDefault("memory-limit", 0)
	v.SetDefault("progress-rate", 0)
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")
}

func addPersistentFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("config", "", "yaml configuration file")
	f.Int("workers", runtime.GOMAXPROCS(0), "number of worker goroutines")
	f.String("strategy", primecount.SegmentedParallel.String(), "counting strategy: "+strategyNames())
	f.String("policy", primecount.LockFree.String(), "shared state policy: lock-free, exclusive, reader-writer")
	f.String("generator", sieve.Eratosthenes{}.Name(), "base prime generator: "+strings.Join(sieve.Names(), ", "))
	f.Uint64("segment-width", 0, "segment width of the segmented sieve (0 = sqrt(n))")
	f.Int64("memory-limit", 0, "sieve buffer memory limit in bytes (0 = unlimited)")
	f.Float64("progress-rate", 0, "debug progress events per second (0 = off)")
	f.String("log-level", "warn", "log level: debug, info, warn, error")
	f.String("log-format", "text", "log format: text, json")
}

// loadSettings layers the sources into v and decodes them.
func loadSettings(cmd *cobra.Command, v *viper.Viper) (settings, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return settings{}, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

func (s settings) logger(w io.Writer) (*primecount.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch s.LogFormat {
	case "text":
		return primecount.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return primecount.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidLogFormat, s.LogFormat)
	}
}

// engineOptions translates the settings into engine options. Extra options
// are appended last.
func (s settings) engineOptions(logOut io.Writer, extra ...primecount.Option) ([]primecount.Option, error) {
	logger, err := s.logger(logOut)
	if err != nil {
		return nil, err
	}
	policy, err := primecount.ParsePolicy(s.Policy)
	if err != nil {
		return nil, err
	}
	gen, err := sieve.Lookup(s.Generator)
	if err != nil {
		return nil, err
	}

	opts := []primecount.Option{
		primecount.WithLogger(logger),
		primecount.WithPolicy(policy),
		primecount.WithGenerator(gen),
		primecount.WithSegmentWidth(s.SegmentWidth),
		primecount.WithMemoryLimit(s.MemoryLimit),
		primecount.WithProgressRate(s.ProgressRate),
	}
	return append(opts, extra...), nil
}

func strategyNames() string {
	names := make([]string, 0, len(primecount.Strategies()))
	for _, s := range primecount.Strategies() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
