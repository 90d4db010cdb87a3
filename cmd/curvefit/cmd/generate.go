package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/drakos74/curvefit/internal/job"
	cfmath "github.com/drakos74/curvefit/internal/math"
	"github.com/spf13/cobra"
)

var (
	genFitter     string
	genParameters string
	genFrom       float64
	genTo         float64
	genPoints     int
	genNoise      float64
	genSeed       int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Samples a curve into a yaml job",
	Long: `Samples the curve of a fitter with the given parameters at equally spaced points
and prints the corresponding job, ready for the fit command.

  curvefit generate --fitter harmonic --params 2,1.3,0.4 --to 10 --points 100 | curvefit fit`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genFitter, "fitter", "f", job.Polynomial, "polynomial | harmonic | gaussian")
	generateCmd.Flags().StringVar(&genParameters, "params", "", "comma separated curve parameters")
	generateCmd.Flags().Float64Var(&genFrom, "from", 0, "first abscissa")
	generateCmd.Flags().Float64Var(&genTo, "to", 1, "last abscissa")
	generateCmd.Flags().IntVarP(&genPoints, "points", "n", 10, "number of points")
	generateCmd.Flags().Float64Var(&genNoise, "noise", 0, "standard deviation of the gaussian noise")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 1, "noise seed")
	_ = generateCmd.MarkFlagRequired("params")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genPoints <= 0 {
		return fmt.Errorf("number of points must be positive, got %d", genPoints)
	}
	parameters, err := parseFloats(genParameters)
	if err != nil {
		return err
	}
	j, err := job.Generate(genFitter, parameters, cfmath.Linspace(genFrom, genTo, genPoints), genNoise, genSeed)
	if err != nil {
		return err
	}
	return job.Write(cmd.OutOrStdout(), j)
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	ff := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter '%s': %w", field, err)
		}
		ff = append(ff, f)
	}
	return ff, nil
}
