package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drakos74/curvefit/internal/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateAndFit(t *testing.T) {
	generated, err := execute(t, "", "generate", "--fitter", "harmonic", "--params", "2,1.3,0.4", "--to", "9.9", "--points", "100")
	require.NoError(t, err)

	j, err := job.Load(strings.NewReader(generated))
	require.NoError(t, err)
	assert.Equal(t, job.Harmonic, j.Fitter)
	require.Len(t, j.Points, 100)

	out, err := execute(t, generated, "fit", "--job", "-", "--output", "yaml")
	require.NoError(t, err)
	var result job.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	require.Len(t, result.Parameters, 3)
	assert.InDelta(t, 2, result.Parameters[0], 1e-6)
	assert.InDelta(t, 1.3, result.Parameters[1], 1e-6)

	out, err = execute(t, generated, "fit", "--job", "-", "--output", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "amplitude")
	assert.Contains(t, out, "omega")
	assert.Contains(t, out, j.ID)
}

func TestFit_JobFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fitter: polynomial
degree: 1
points: [{x: 0, y: 1}, {x: 1, y: 3}, {x: 2, y: 5}]
`), 0o600))

	out, err := execute(t, "", "fit", "--job", path, "--output", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "CLOSED FORM")
	assert.Contains(t, out, "STDEV")
	assert.Contains(t, out, "c1")

	_, err = execute(t, "", "fit", "--job", path, "--output", "xml")
	assert.Error(t, err)

	_, err = execute(t, "", "fit", "--job", filepath.Join(t.TempDir(), "missing.yaml"), "--output", "table")
	assert.Error(t, err)
}

func TestSpectrum(t *testing.T) {
	generated, err := execute(t, "", "generate", "--fitter", "harmonic", "--params", "1,1.5707963267948966,0", "--from", "0", "--to", "99", "--points", "100")
	require.NoError(t, err)

	out, err := execute(t, generated, "spectrum", "--job", "-", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "BIN")
	// a period of 4 samples over 100 points falls in bin 25
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "1.5708")
}
