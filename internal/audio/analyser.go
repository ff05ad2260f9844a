package audio

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Параметры анализатора по умолчанию
const (
	MinFFTSize       = 32
	MaxFFTSize       = 32768
	DefaultSmoothing = 0.8
	DefaultMinDB     = -100.0
	DefaultMaxDB     = -30.0
)

// Analyser строит спектр последних fftSize сэмплов и отдает его
// в виде байтовых магнитуд 0..255, по одной на частотную полосу.
type Analyser struct {
	fftSize   int
	smoothing float64
	minDB     float64
	maxDB     float64

	window   []float64
	buf      []float64
	smoothed []float64
}

// NewAnalyser создает анализатор. fftSize должен быть степенью двойки в диапазоне [32, 32768].
func NewAnalyser(fftSize int) (*Analyser, error) {
	if fftSize < MinFFTSize || fftSize > MaxFFTSize || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("недопустимый размер FFT %d: нужна степень двойки от %d до %d", fftSize, MinFFTSize, MaxFFTSize)
	}
	return &Analyser{
		fftSize:   fftSize,
		smoothing: DefaultSmoothing,
		minDB:     DefaultMinDB,
		maxDB:     DefaultMaxDB,
		window:    window.Blackman(fftSize),
		buf:       make([]float64, fftSize),
		smoothed:  make([]float64, fftSize/2),
	}, nil
}

// FFTSize возвращает размер окна FFT
func (a *Analyser) FFTSize() int { return a.fftSize }

// BinCount возвращает количество частотных полос (половина размера FFT)
func (a *Analyser) BinCount() int { return a.fftSize / 2 }

// ByteFrequencyData заполняет dst магнитудами по последним сэмплам.
// Недостающие сэмплы считаются тишиной, поэтому без звука спектр плавно затухает.
func (a *Analyser) ByteFrequencyData(samples []float64, dst []byte) {
	clear(a.buf)
	if len(samples) > a.fftSize {
		samples = samples[len(samples)-a.fftSize:]
	}
	copy(a.buf[a.fftSize-len(samples):], samples)

	for i := range a.buf {
		a.buf[i] *= a.window[i]
	}

	spectrum := fft.FFTReal(a.buf)

	n := min(len(dst), a.BinCount())
	scale := 255 / (a.maxDB - a.minDB)
	for k := 0; k < a.BinCount(); k++ {
		mag := cmplx.Abs(spectrum[k]) / float64(a.fftSize)
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		if k >= n {
			continue
		}

		db := math.Inf(-1)
		if a.smoothed[k] > 0 {
			db = 20 * math.Log10(a.smoothed[k])
		}
		v := math.Floor(scale * (db - a.minDB))
		dst[k] = byte(max(0, min(255, v)))
	}
}
