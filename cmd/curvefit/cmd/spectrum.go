package cmd

import (
	"fmt"
	"io"
	"strconv"

	cfmath "github.com/drakos74/curvefit/internal/math"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var top int

var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Shows the dominant frequencies of a job",
	Long: `Computes the amplitude spectrum of the job values, assuming equally spaced abscissas.
The angular frequency of the strongest component is a starting point for harmonic fits.`,
	RunE: runSpectrum,
}

func init() {
	spectrumCmd.Flags().StringVarP(&jobFile, "job", "j", "-", "job file, - for stdin")
	spectrumCmd.Flags().IntVar(&top, "top", 5, "number of components to show")
	rootCmd.AddCommand(spectrumCmd)
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	j, err := loadJob(cmd.InOrStdin(), jobFile)
	if err != nil {
		return err
	}
	if len(j.Points) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(j.Points))
	}
	ys := make([]float64, len(j.Points))
	for i, p := range j.Points {
		ys[i] = p.Y
	}
	step := (j.Points[len(j.Points)-1].X - j.Points[0].X) / float64(len(j.Points)-1)

	renderSpectrum(cmd.OutOrStdout(), cfmath.FFT(ys), step, top)
	return nil
}

func renderSpectrum(w io.Writer, spectrum *cfmath.Spectrum, step float64, top int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"bin", "omega", "amplitude", "phase"})
	for i, v := range spectrum.Values {
		if i >= top {
			break
		}
		row := []string{strconv.Itoa(v.Frequency)}
		row = append(row, cfmath.FormatAll([]float64{spectrum.Omega(v, step), v.Amplitude, v.Phase}, 4)...)
		table.Append(row)
	}
	table.Render()
}
