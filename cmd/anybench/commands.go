package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/wippyai/anybox/bench"
	"github.com/wippyai/anybox/bench/store"
	"github.com/wippyai/anybox/errors"
)

func newAnalyseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyse",
		Aliases: []string{"analyze"},
		Short:   "Show storage properties of the compared container types",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := bench.ParseFormat(v.GetString("analyse.format"))
			if err != nil {
				return err
			}

			suite := bench.DefaultSuite()
			run := bench.Run{CPU: -1}
			for _, fn := range suite.Analyses {
				run.Analyses = append(run.Analyses, fn())
			}
			if format == bench.FormatText {
				return writeAnalyses(cmd, run.Analyses)
			}
			return bench.WriteReport(cmd.OutOrStdout(), format, []bench.Run{run})
		},
	}

	cmd.Flags().String("format", string(bench.FormatText), "Report format (text, json, yaml)")
	_ = v.BindPFlag("analyse.format", cmd.Flags().Lookup("format"))
	return cmd
}

func writeAnalyses(cmd *cobra.Command, analyses []bench.Analysis) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Storage analysis"))
	for _, a := range analyses {
		fmt.Fprintf(out, "%-20s size %-3d ctor %-5t dtor %-5t %s\n",
			a.Type, a.Size, a.TriviallyConstructible, a.TriviallyDestructible, classStyle(a.Class).Render(a.Class))
	}
	return nil
}

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List stored runs, or show one run in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("db")
			if path == "" {
				return fmt.Errorf("%w (set --db or ANYBENCH_DB)",
					errors.NotInitialized(errors.PhaseStore, "history database"))
			}
			if _, err := os.Stat(path); err != nil {
				return errors.NotFound(errors.PhaseStore, "history database", path)
			}
			format, err := bench.ParseFormat(v.GetString("history.format"))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := store.Open(ctx, path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer st.Close()

			var runs []bench.Run
			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("run id %q: %w", args[0], err)
				}
				run, err := st.Run(ctx, id)
				if err != nil {
					return err
				}
				runs = []bench.Run{run}
			} else {
				runs, err = st.Runs(ctx, v.GetInt("history.limit"))
				if err != nil {
					return err
				}
			}
			return bench.WriteReport(cmd.OutOrStdout(), format, runs)
		},
	}

	f := cmd.Flags()
	f.Int("limit", 20, "Maximum runs to list (0 = all)")
	f.String("format", string(bench.FormatText), "Report format (text, json, yaml)")
	_ = v.BindPFlag("history.limit", f.Lookup("limit"))
	_ = v.BindPFlag("history.format", f.Lookup("format"))
	return cmd
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective run configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFrom(v)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(fileConfig{
				Times:    cfg.Times,
				Num:      cfg.Num,
				Loops:    cfg.Loops,
				Interval: cfg.Interval.String(),
				Pin:      cfg.Pin,
				DB:       v.GetString("db"),
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// fileConfig is the layout accepted by --config.
type fileConfig struct {
	Times    int    `yaml:"times"`
	Num      int    `yaml:"num"`
	Loops    int    `yaml:"loops"`
	Interval string `yaml:"interval"`
	Pin      bool   `yaml:"pin"`
	DB       string `yaml:"db,omitempty"`
}
