package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Push(t *testing.T) {

	type test struct {
		residuals []float64
		weights   []float64
		avg       float64
		min       float64
		max       float64
		stDev     float64
		rms       float64
		chiSquare float64
	}

	tests := map[string]test{
		"zero": {
			residuals: []float64{0, 0, 0},
			weights:   []float64{1, 1, 1},
		},
		"symmetric": {
			residuals: []float64{-1, 1, -1, 1},
			weights:   []float64{1, 1, 1, 1},
			min:       -1,
			max:       1,
			stDev:     1,
			rms:       1,
			chiSquare: 4,
		},
		"weighted": {
			residuals: []float64{3, 4},
			weights:   []float64{2, 0.5},
			avg:       3.5,
			min:       3,
			max:       4,
			stDev:     0.5,
			rms:       math.Sqrt(12.5),
			chiSquare: 26,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewStats()
			for i, r := range tt.residuals {
				s.Push(r, tt.weights[i])
			}
			assert.Equal(t, len(tt.residuals), s.Count())
			assert.InDelta(t, tt.avg, s.Avg(), 1e-12)
			assert.Equal(t, tt.min, s.Min())
			assert.Equal(t, tt.max, s.Max())
			assert.InDelta(t, tt.stDev, s.StDev(), 1e-12)
			assert.InDelta(t, tt.rms, s.RMS(), 1e-12)
			assert.InDelta(t, tt.chiSquare, s.ChiSquare(), 1e-12)
		})
	}
}

func TestStats_ReducedChiSquare(t *testing.T) {
	s := NewStats()
	for _, r := range []float64{1, 1, 1, 1} {
		s.Push(r, 1)
	}
	assert.Equal(t, 2.0, s.ReducedChiSquare(2))
	assert.True(t, math.IsInf(s.ReducedChiSquare(4), 1))
	assert.Equal(t, 0.0, NewStats().RMS())
}

func TestResiduals(t *testing.T) {
	line := func(x float64) (float64, error) {
		return 2 * x, nil
	}
	s, err := Residuals([]float64{0, 1, 2}, []float64{1, 2, 3}, []float64{1, 1, 1}, line)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, -1.0, s.Min())
	assert.Equal(t, 1.0, s.Max())
	assert.Equal(t, 2.0, s.ChiSquare())

	_, err = Residuals([]float64{0}, []float64{1, 2}, []float64{1}, line)
	assert.Error(t, err)

	failing := errors.New("failing")
	_, err = Residuals([]float64{0}, []float64{1}, []float64{1}, func(float64) (float64, error) {
		return 0, failing
	})
	assert.ErrorIs(t, err, failing)
}
