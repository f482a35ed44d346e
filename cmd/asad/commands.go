package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/internal/logging"
	"github.com/cwbudde/algo-asad/match"
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-asad/spectrum/table"
	"github.com/cwbudde/algo-asad/stats/fit"
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

// prepare resolves the configuration, builds the session and loads every
// input file.
func (a *app) prepare(cmd *cobra.Command, args []string) (*session, []*spectrum.Model, []*spectrum.Observation, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	if len(cfg.Models) == 0 {
		return nil, nil, nil, errors.Wrap(spectrum.ErrConfiguration, "no model given (use --model)")
	}
	if path, _ := cmd.Flags().GetString(configFileFlag); path != "" {
		a.log.Debug("configuration file read", zap.String(logging.FieldConfig, path))
	}

	s, err := newSession(cfg, a.log)
	if err != nil {
		return nil, nil, nil, err
	}

	models, observations, err := s.load(cmd.Context(), cfg.Models, args)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.WritePrepared != "" {
		if err := s.writePrepared(cfg.WritePrepared, models, observations); err != nil {
			return nil, nil, nil, err
		}
	}
	return s, models, observations, nil
}

func newMatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match --model MODEL [flags] OBSERVATION...",
		Short: "Print the best age and reddening for each observation and model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, models, observations, err := a.prepare(cmd, args)
			if err != nil {
				return err
			}

			out := a.stdout
			if s.cfg.Output != "" {
				f, err := os.Create(s.cfg.Output)
				if err != nil {
					return errors.Wrapf(err, "create %s", s.cfg.Output)
				}
				defer f.Close()
				out = f
			}

			err = s.compare(models, observations, func(e *match.Engine, res *match.Result) error {
				return table.WriteChosen(out, res.Name, res.MinAge, res.MinReddening)
			})
			if err != nil {
				return err
			}

			if s.cfg.Output != "" {
				a.log.Info("wrote chosen matches", zap.String(logging.FieldFile, s.cfg.Output))
			}
			return nil
		},
	}
	addComparisonFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "write chosen matches to this file instead of stdout")
	return cmd
}

func newRegionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region --model MODEL [flags] OBSERVATION...",
		Short: "List every (reddening, age) cell within delta of the best match",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, models, observations, err := a.prepare(cmd, args)
			if err != nil {
				return err
			}

			return s.compare(models, observations, func(e *match.Engine, res *match.Result) error {
				region, err := e.ErrorRegion(s.cfg.Delta)
				if err != nil {
					return err
				}
				residual, err := e.Residual()
				if err != nil {
					return err
				}
				return printRegion(a.stdout, res, region, residual)
			})
		},
	}
	addComparisonFlags(cmd)
	cmd.Flags().Float64P("delta", "d", defaultDelta, "statistic distance from the minimum")
	return cmd
}

func printRegion(w io.Writer, res *match.Result, region []match.Candidate, residual *match.Residual) error {
	if _, err := fmt.Fprintf(w, "%s: best age %f, reddening %f, stat %g (residual mean %g, rms %g, max %g)\n",
		res.Name, res.MinAge, res.MinReddening, res.MinStat, residual.Summary.Mean, residual.Summary.RMS, residual.Summary.MaxAbs); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Reddening\tAge\tStat\n")
	fmt.Fprintf(tw, "---------\t---\t----\n")
	for _, c := range region {
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.6g\n", c.Reddening, c.Age, c.Stat)
	}
	return tw.Flush()
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "List the available statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range fit.Names() {
				if _, err := fmt.Fprintln(a.stdout, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newBackendsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the numeric kernel backends and the one auto selects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auto := kernel.Default()

			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Backend\tSIMD\tPriority\tSupported\tAuto\n")
			fmt.Fprintf(tw, "-------\t----\t--------\t---------\t----\n")

			features := cpu.DetectFeatures()
			for _, b := range kernel.Global.ListEntries() {
				fmt.Fprintf(tw, "%s\t%v\t%d\t%t\t%t\n",
					b.Name, b.SIMDLevel, b.Priority, cpu.Supports(features, b.SIMDLevel), b.Name == auto.Name)
			}
			return tw.Flush()
		},
	}
}
