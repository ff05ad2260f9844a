package player

import (
	"sync"

	"github.com/gopxl/beep"
)

// Downmix сводит стерео кадр в один сэмпл для анализатора
type Downmix func(frame [2]float64) float64

// Варианты сведения каналов
var (
	MixMono  Downmix = func(f [2]float64) float64 { return (f[0] + f[1]) / 2 }
	MixLeft  Downmix = func(f [2]float64) float64 { return f[0] }
	MixRight Downmix = func(f [2]float64) float64 { return f[1] }
)

// Tap пропускает звук трека на выход и хранит последние сведенные сэмплы.
// Через него Player реализует audio.Capture.
type Tap struct {
	streamer beep.Streamer
	mix      Downmix

	mu     sync.Mutex
	ring   []float64
	next   int
	filled int
}

// NewTap оборачивает стример. size ограничивает окно, которое можно запросить в Samples.
func NewTap(streamer beep.Streamer, size int, mix Downmix) *Tap {
	if mix == nil {
		mix = MixMono
	}
	return &Tap{
		streamer: streamer,
		mix:      mix,
		ring:     make([]float64, max(size, 1)),
	}
}

// Stream реализует beep.Streamer
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.streamer.Stream(samples)

	t.mu.Lock()
	for _, frame := range samples[:n] {
		t.ring[t.next] = t.mix(frame)
		t.next = (t.next + 1) % len(t.ring)
	}
	t.filled = min(t.filled+n, len(t.ring))
	t.mu.Unlock()

	return n, ok
}

// Err реализует beep.Streamer
func (t *Tap) Err() error {
	return t.streamer.Err()
}

// Samples возвращает до n последних сэмплов, от старых к новым.
// Пока трек проиграл меньше n кадров, результат короче n.
func (t *Tap) Samples(n int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	n = min(n, t.filled)
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	start := t.next - n
	if start < 0 {
		start += len(t.ring)
	}
	for i := range out {
		out[i] = t.ring[(start+i)%len(t.ring)]
	}
	return out
}
