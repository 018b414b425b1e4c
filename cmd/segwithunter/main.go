package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/SegwitHunter/internal/config"
	"github.com/Amr-9/SegwitHunter/internal/logging"
	"github.com/Amr-9/SegwitHunter/internal/metrics"
	"github.com/Amr-9/SegwitHunter/internal/ui"
	"github.com/Amr-9/SegwitHunter/pkg/generator"
	"github.com/Amr-9/SegwitHunter/pkg/generator/bitcoin"
	"github.com/Amr-9/SegwitHunter/pkg/generator/cpu"
)

const version = "1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		ui.PrintError(err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	flags := config.Default()

	root := &cobra.Command{
		Use:   "segwithunter",
		Short: "Bitcoin bc1q vanity address generator",
		Long: `segwithunter searches for a native segwit (P2WPKH) address whose data part
starts with a chosen prefix and optionally ends with a chosen suffix.
Patterns use the Bech32 alphabet (no 1, b, i or o) and are case-insensitive.

Examples:
  segwithunter -p c0f
  segwithunter -p c0f -x ee -t 8
  segwithunter -c search.yaml`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			overlay(cmd, &cfg, &flags)

			return run(cmd.Context(), &cfg)
		},
	}

	f := root.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	f.StringVarP(&flags.Prefix, "pattern", "p", "", "pattern required right after bc1q")
	f.StringVarP(&flags.Suffix, "suffix", "x", "", "pattern the address must end with")
	f.IntVarP(&flags.Threads, "threads", "t", runtime.NumCPU(), "number of worker threads")
	f.VarP(&flags.StatsInterval, "stats-interval", "s", "progress interval (seconds or a duration such as 500ms)")
	f.StringVarP(&flags.Output, "output", "o", config.DefaultOutput, "file the found key is written to (empty disables)")
	f.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "log format: console or json")
	f.StringVar(&flags.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9108")
	return root
}

// overlay copies explicitly set flags over file values.
func overlay(cmd *cobra.Command, cfg, flags *config.Config) {
	changed := cmd.Flags().Changed
	if changed("pattern") {
		cfg.Prefix = flags.Prefix
	}
	if changed("suffix") {
		cfg.Suffix = flags.Suffix
	}
	if changed("threads") {
		cfg.Threads = flags.Threads
	}
	if changed("stats-interval") {
		cfg.StatsInterval = flags.StatsInterval
	}
	if changed("output") {
		cfg.Output = flags.Output
	}
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if changed("log-format") {
		cfg.LogFormat = flags.LogFormat
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = flags.MetricsAddr
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("%w: %w", generator.ErrConfig, err)
	}
	defer logger.Sync() //nolint:errcheck

	ui.ClearScreen()
	ui.PrintWelcomeBanner(version)

	if cfg.Prefix == "" && cfg.Suffix == "" && ui.IsInteractive() {
		cfg.Prefix, cfg.Suffix, err = ui.PromptPatterns(os.Stdin, ui.Out)
		if err != nil {
			return err
		}
	}

	search, err := cfg.Validate()
	if err != nil {
		return err
	}

	if err := raisePriority(); err != nil {
		logger.Debug("process priority unchanged", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	difficulty := bitcoin.Difficulty(search.Prefix, search.Suffix)
	ui.PrintSearchInfo(search, difficulty)

	// The reporter calls the sink from a single goroutine.
	frame := 0
	sink := func(s generator.Sample) {
		ui.PrintProgress(s, difficulty, frame)
		frame++
		logger.Debug("progress",
			zap.Uint64("attempts", s.Attempts),
			zap.Duration("elapsed", s.Elapsed),
			zap.Float64("rate", s.Rate))
	}
	gen := cpu.NewCPUGenerator(search.Workers, cpu.WithLogger(logger), cpu.WithSink(sink))

	if cfg.MetricsAddr != "" {
		server, err := metrics.Listen(cfg.MetricsAddr, metrics.NewRegistry(gen), logger)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		server.Start()
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warn("metrics shutdown", zap.Error(err))
			}
		}()
	}

	result, err := gen.Search(ctx, search)
	ui.ClearLine()
	if errors.Is(err, context.Canceled) {
		ui.PrintCancelled(gen.Stats())
		return nil
	}
	if err != nil {
		return err
	}

	output := cfg.Output
	if output != "" {
		if err := ui.SaveResult(output, result); err != nil {
			logger.Error("result not saved", zap.String("path", output), zap.Error(err))
			output = ""
		}
	}
	ui.PrintSuccess(result, output)
	return nil
}
