package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/drakos74/curvefit/internal/job"
	cfmath "github.com/drakos74/curvefit/internal/math"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	jobFile   string
	output    string
	precision int
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fits the curve described by a yaml job",
	Long: `Reads a yaml job and fits its curve.

Example job:

  fitter: harmonic          # polynomial | harmonic | gaussian
  optimizer: gauss-newton   # optional, levenberg-marquardt by default
  degree: 2                 # polynomial only
  start: [1, 1.5, 0]        # optional, guessed for harmonic and gaussian
  max_iterations: 100       # optional
  points:
    - {x: 0, y: 1}
    - {x: 1, y: 0, weight: 2}`,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVarP(&jobFile, "job", "j", "-", "job file, - for stdin")
	fitCmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table | yaml")
	fitCmd.Flags().IntVarP(&precision, "precision", "p", 6, "significant digits in the table")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	j, err := loadJob(cmd.InOrStdin(), jobFile)
	if err != nil {
		return err
	}
	result, err := job.Run(j)
	if err != nil {
		return err
	}
	switch output {
	case "yaml":
		return job.Write(cmd.OutOrStdout(), result)
	case "table":
		renderResult(cmd.OutOrStdout(), result, precision)
		return nil
	}
	return fmt.Errorf("unknown output format '%s'", output)
}

func loadJob(stdin io.Reader, path string) (job.Job, error) {
	if path == "-" || path == "" {
		return job.Load(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return job.Job{}, fmt.Errorf("could not open job file: %w", err)
	}
	defer f.Close()
	return job.Load(f)
}

func renderResult(w io.Writer, result job.Result, digits int) {
	format := func(f float64) string {
		return cfmath.Format(f, cfmath.Precision(f, digits))
	}

	table := tablewriter.NewWriter(w)
	header := []string{"parameter", "value"}
	if len(result.ClosedForm) > 0 {
		header = append(header, "closed form")
	}
	table.SetHeader(header)
	for i, p := range result.Parameters {
		row := []string{parameterName(result.Fitter, i), format(p)}
		if len(result.ClosedForm) > i {
			row = append(row, format(result.ClosedForm[i]))
		}
		table.Append(row)
	}
	table.Render()

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"job", "fitter", "points", "rms", "chi square", "reduced", "max residual", "mean", "stdev"})
	row := []string{result.ID, result.Fitter, strconv.Itoa(result.Points)}
	for _, v := range []float64{
		result.RMS,
		result.ChiSquare,
		result.ReducedChiSquare,
		result.MaxResidual,
		result.ResidualMean,
		result.ResidualStDev,
	} {
		row = append(row, format(v))
	}
	summary.Append(row)
	summary.Render()
}

func parameterName(fitter string, i int) string {
	switch fitter {
	case job.Harmonic:
		return []string{"amplitude", "omega", "phase"}[i%3]
	case job.Gaussian:
		return []string{"norm", "mean", "sigma"}[i%3]
	}
	return fmt.Sprintf("c%d", i)
}
