package player

import (
	"reflect"
	"testing"

	"github.com/gopxl/beep"
)

// frames отдает кадры с левым каналом i и правым -i
func frames(count int) beep.Streamer {
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := 0
		for n < len(samples) && i < count {
			i++
			samples[n] = [2]float64{float64(i), -float64(i) * 3}
			n++
		}
		return n, n > 0
	})
}

func stream(t *testing.T, s beep.Streamer, n int) {
	t.Helper()
	buf := make([][2]float64, n)
	if got, _ := s.Stream(buf); got != n {
		t.Fatalf("Ожидалось %d кадров, получено %d", n, got)
	}
}

func TestTapDownmix(t *testing.T) {
	tests := []struct {
		name     string
		mix      Downmix
		expected []float64
	}{
		{"моно по умолчанию", nil, []float64{-1, -2, -3}},
		{"левый канал", MixLeft, []float64{1, 2, 3}},
		{"правый канал", MixRight, []float64{-3, -6, -9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tap := NewTap(frames(3), 8, tt.mix)
			stream(t, tap, 3)

			if got := tap.Samples(3); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Ожидалось %v, получено %v", tt.expected, got)
			}
		})
	}
}

func TestTapSamplesBeforeFilled(t *testing.T) {
	tap := NewTap(frames(10), 8, MixLeft)

	if got := tap.Samples(4); got != nil {
		t.Errorf("До начала воспроизведения сэмплов нет, получено %v", got)
	}

	stream(t, tap, 2)
	if got := tap.Samples(4); !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Errorf("Ожидались только проигранные сэмплы, получено %v", got)
	}
}

func TestTapWrapsAround(t *testing.T) {
	tap := NewTap(frames(10), 4, MixLeft)
	stream(t, tap, 6)

	if got := tap.Samples(10); !reflect.DeepEqual(got, []float64{3, 4, 5, 6}) {
		t.Errorf("Окно ограничено размером буфера, получено %v", got)
	}
	if got := tap.Samples(2); !reflect.DeepEqual(got, []float64{5, 6}) {
		t.Errorf("Ожидались последние сэмплы, получено %v", got)
	}
	if got := tap.Samples(0); got != nil {
		t.Errorf("Пустой запрос должен давать nil, получено %v", got)
	}
}
