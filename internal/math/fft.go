package math

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the amplitude spectrum of the real series, up to the nyquist frequency.
// Values are sorted by decreasing amplitude.
func FFT(xx []float64) *Spectrum {
	cc := fft.FFTReal(xx)

	ss := newSpectrum(len(xx))
	for i, n := range cc {
		if i > len(cc)/2 {
			continue
		}
		ss.add(RNum{
			Amplitude: cmplx.Abs(n),
			Frequency: i,
			Phase:     cmplx.Phase(n),
		})
	}

	sort.Stable(sort.Reverse(spectrums(ss.Values)))

	return ss
}

// Spectrum is a collection of spectra
type Spectrum struct {
	Values    []RNum
	Amplitude float64
	size      int
}

func newSpectrum(size int) *Spectrum {
	return &Spectrum{
		Values: make([]RNum, 0),
		size:   size,
	}
}

func (s *Spectrum) add(r RNum) {
	s.Values = append(s.Values, r)
	s.Amplitude += r.Amplitude
}

func (s *Spectrum) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Amplitude / float64(len(s.Values))
}

// Dominant returns the strongest non constant component.
func (s *Spectrum) Dominant() (RNum, bool) {
	for _, v := range s.Values {
		if v.Frequency > 0 {
			return v, true
		}
	}
	return RNum{}, false
}

// Omega converts the frequency bin into an angular frequency,
// for samples taken every step.
func (s *Spectrum) Omega(r RNum, step float64) float64 {
	if s.size == 0 || step == 0 {
		return 0
	}
	return 2 * math.Pi * float64(r.Frequency) / (float64(s.size) * step)
}

// RNum defines a complex number attributes
type RNum struct {
	Amplitude float64
	Frequency int
	Phase     float64
}

type spectrums []RNum

func (s spectrums) Len() int           { return len(s) }
func (s spectrums) Less(i, j int) bool { return s[i].Amplitude < s[j].Amplitude }
func (s spectrums) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
