package main

import (
	"io"

	"github.com/cwbudde/algo-asad/internal/logging"
	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/stats/fit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the writers and logger shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "asad",
		Short: "Age and reddening of star clusters from integrated spectra",
		Long: `asad matches observed cluster spectra against grids of model spectra.

Each observation is resampled to a common step, expanded over a range of
reddening values and compared against every age of every model with a
goodness-of-fit statistic. The best (age, reddening) pair is reported per
observation and model.

Available commands:
  match    - print the best age and reddening per comparison
  region   - list every (reddening, age) cell within delta of the best
  stats    - list the available statistics
  backends - list the numeric kernel backends`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			jsonLog, _ := cmd.Flags().GetBool("json-log")
			a.log = logging.New(a.stderr, verbosity, jsonLog)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.CountP("verbose", "v", "increase log verbosity (-v, -vv)")
	pf.Bool("json-log", false, "log as JSON")
	pf.String(configFileFlag, "", "TOML configuration file")

	root.AddCommand(newMatchCmd(a), newRegionCmd(a), newStatsCmd(a), newBackendsCmd(a))
	return root
}

// addComparisonFlags registers the flags shared by match and region.
func addComparisonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceP("model", "m", nil, "model grid file (repeatable)")
	f.String("model-format", formatTable, "model file format: "+joinNames(modelFormats))
	f.Int("column-stride", defaultColumnStride, "keep every n-th model flux column")

	f.Float64P("interp", "i", defaultInterp, "interpolation step in Å (0 keeps the native step)")
	f.Float64("align", 0, "align the resampling grid so it hits this wavelength (0 disables)")
	f.Bool("truncate", false, "accept fractional step ratios by truncating window positions")

	f.Float64("reddening-start", 0, "first reddening value")
	f.Float64("reddening-end", defaultReddeningEnd, "last reddening value")
	f.Float64("reddening-step", 0.01, "reddening step")
	f.Float64("age-start", 6.6, "first age when the model has no age header")
	f.Float64("age-step", 0.05, "age step when the model has no age header")

	f.Float64("wavelength-start", 0, "common wavelength range start (0 disables)")
	f.Float64("wavelength-end", 0, "common wavelength range end (0 disables)")
	f.Float64P("normalize", "n", 0, "normalize every spectrum at this wavelength (0 disables)")

	f.StringP("stat", "s", fit.NameChiSquared, "statistic: "+joinNames(fit.Names()))
	f.String("backend", kernel.Auto, "kernel backend: auto or "+joinNames(kernel.Global.Names()))
	f.IntP("workers", "w", defaultWorkers(), "concurrent workers")
	f.String("write-prepared", "", "write every prepared model and observation to this directory")
}
