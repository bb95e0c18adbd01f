package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/anybox/bench"
	"github.com/wippyai/anybox/box"
	"github.com/wippyai/anybox/optable"
	"github.com/wippyai/anybox/typeid"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ANYBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "anybench",
		Short: "Compare box.Any with Go interfaces and raw values",
		Long: `anybench measures construction, destruction and payload access of the
box.Any container against the built-in any interface and against raw values.

Results are logged as they are produced, printed as a report at the end and,
with --db, saved to a SQLite history.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", path, err)
				}
			}
			log, err := newLogger(v.GetString("log-level"), v.GetString("log-format"))
			if err != nil {
				return err
			}
			installLogger(log)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML configuration file")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")
	pf.String("db", "", "SQLite history database (empty disables history)")
	_ = v.BindPFlags(pf)

	root.AddCommand(
		newRunCmd(v),
		newAnalyseCmd(v),
		newHistoryCmd(v),
		newConfigCmd(v),
	)
	return root
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("log format %q: expected console or json", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func installLogger(log *zap.Logger) {
	typeid.SetLogger(log.Named("typeid"))
	optable.SetLogger(log.Named("optable"))
	box.SetLogger(log.Named("box"))
	bench.SetLogger(log.Named("bench"))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
