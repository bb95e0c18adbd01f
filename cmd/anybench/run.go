package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"golang.org/x/term"

	"github.com/wippyai/anybox/bench"
	"github.com/wippyai/anybox/bench/store"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the comparison suite",
		Long: `Run the comparison suite --loops times (0 runs until interrupted),
pausing --interval between loops. Each measurement fills --num containers and
clears them again, --times times.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuite(cmd, v)
		},
	}

	def := bench.DefaultConfig()
	f := cmd.Flags()
	f.Int("times", def.Times, "Fill/clear rounds per measurement")
	f.Int("num", def.Num, "Containers per round")
	f.Int("loops", def.Loops, "Suite iterations (0 = until interrupted)")
	f.Duration("interval", def.Interval, "Pause between iterations")
	f.Bool("pin", false, "Bind the measuring thread to one CPU")
	f.String("format", string(bench.FormatText), "Report format (text, json, yaml)")
	f.BoolP("interactive", "i", false, "Show live progress and a results table")
	_ = v.BindPFlags(f)

	return cmd
}

func configFrom(v *viper.Viper) (bench.Config, error) {
	cfg := bench.Config{
		Times:    v.GetInt("times"),
		Num:      v.GetInt("num"),
		Loops:    v.GetInt("loops"),
		Interval: v.GetDuration("interval"),
		Pin:      v.GetBool("pin"),
	}
	if err := cfg.Validate(); err != nil {
		return bench.Config{}, err
	}
	return cfg, nil
}

func runSuite(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := configFrom(v)
	if err != nil {
		return err
	}
	format, err := bench.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var opts []bench.ReporterOption
	opts = append(opts, bench.WithMeter(otel.Meter("github.com/wippyai/anybox/cmd/anybench")))
	if cfg.Loops == 0 {
		opts = append(opts, bench.WithHistory(100))
	}

	if path := v.GetString("db"); path != "" {
		st, err := store.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()
		opts = append(opts, bench.WithRecorder(st))
	}

	suite := bench.DefaultSuite()

	if v.GetBool("interactive") {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(ctx, cfg, suite, opts)
	}

	rep, err := bench.NewReporter(opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	err = suite.Run(ctx, cfg, rep)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run suite: %w", err)
	}
	bench.Logger().Debug("suite finished")

	if err := bench.WriteReport(cmd.OutOrStdout(), format, rep.Runs()); err != nil {
		return err
	}
	if format == bench.FormatText && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(cmd.OutOrStdout(), helpStyle.Render(fmt.Sprintf("%d runs in %s", len(rep.Runs()), time.Since(start).Round(time.Millisecond))))
	}
	return nil
}
