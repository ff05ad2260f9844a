package visualizer

import (
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func filledBins(n int, v byte) []byte {
	bins := make([]byte, n)
	for i := range bins {
		bins[i] = v
	}
	return bins
}

func TestLayoutZeroMagnitudes(t *testing.T) {
	bars := Layout(filledBins(128, 0), 300, 100)

	if len(bars) != 128 {
		t.Fatalf("Ожидалось 128 столбиков, получено %d", len(bars))
	}
	for i, bar := range bars {
		if bar.Height != 0 {
			t.Fatalf("Столбик %d: ожидалась высота 0, получено %v", i, bar.Height)
		}
		if bar.Hue != HueQuiet {
			t.Fatalf("Столбик %d: ожидался оттенок %v, получено %v", i, HueQuiet, bar.Hue)
		}
	}
}

func TestLayoutMaxMagnitudes(t *testing.T) {
	bars := Layout(filledBins(128, 255), 300, 100)

	for i, bar := range bars {
		if bar.Height != 100 || bar.Y != 0 {
			t.Fatalf("Столбик %d: ожидалась полная высота, получено %+v", i, bar)
		}
		if bar.Hue != HueQuiet-HueRange {
			t.Fatalf("Столбик %d: ожидался оттенок %v, получено %v", i, HueQuiet-HueRange, bar.Hue)
		}
	}
}

func TestLayoutGeometry(t *testing.T) {
	bins := []byte{0, 51, 255, 102}
	bars := Layout(bins, 100, 50)

	step := 100.0 / 4 * BarSpacing
	for i, bar := range bars {
		if math.Abs(bar.X-float64(i)*step) > 1e-9 {
			t.Errorf("Столбик %d: ожидался X %v, получено %v", i, float64(i)*step, bar.X)
		}
		if math.Abs(bar.Width-step*BarFill) > 1e-9 {
			t.Errorf("Столбик %d: ожидалась ширина %v, получено %v", i, step*BarFill, bar.Width)
		}
		if math.Abs(bar.Y+bar.Height-50) > 1e-9 {
			t.Errorf("Столбик %d должен стоять на нижнем крае: %+v", i, bar)
		}
	}
	if math.Abs(bars[1].Height-10) > 1e-9 {
		t.Errorf("Ожидалась высота 10, получено %v", bars[1].Height)
	}
	if math.Abs(bars[1].Hue-120) > 1e-9 {
		t.Errorf("Ожидался оттенок 120, получено %v", bars[1].Hue)
	}
}

func TestLayoutEmpty(t *testing.T) {
	tests := []struct {
		name          string
		bins          []byte
		width, height float64
	}{
		{"нет полос", nil, 100, 100},
		{"нулевая ширина", filledBins(4, 255), 0, 100},
		{"нулевая высота", filledBins(4, 255), 100, 0},
	}
	for _, test := range tests {
		if bars := Layout(test.bins, test.width, test.height); bars != nil {
			t.Errorf("%s: ожидался пустой результат, получено %d", test.name, len(bars))
		}
	}
}

// fakeSpectrum источник спектра с фиксированными значениями
type fakeSpectrum struct {
	bins  []byte
	ready bool
	calls int
}

func (f *fakeSpectrum) BinCount() int {
	if !f.ready {
		return 0
	}
	return len(f.bins)
}

func (f *fakeSpectrum) FrequencyData(dst []byte) bool {
	f.calls++
	if !f.ready {
		return false
	}
	copy(dst, f.bins)
	return true
}

// recordingSurface запоминает вызовы отрисовки
type recordingSurface struct {
	width, height float64
	clears        int
	rects         []Bar
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }
func (s *recordingSurface) Clear()                   { s.clears++ }
func (s *recordingSurface) FillRect(x, y, w, h float64, c colorful.Color) {
	s.rects = append(s.rects, Bar{X: x, Y: y, Width: w, Height: h})
}

func TestRendererSkipsWithoutAnalyser(t *testing.T) {
	spectrum := &fakeSpectrum{bins: filledBins(8, 255)}
	surface := &recordingSurface{width: 80, height: 40}
	r := NewRenderer(spectrum, surface)

	if r.Frame() {
		t.Error("Кадр без анализатора должен пропускаться")
	}
	if surface.clears != 0 || len(surface.rects) != 0 {
		t.Error("Пропущенный кадр не должен менять поверхность")
	}
}

func TestRendererDrawsBars(t *testing.T) {
	spectrum := &fakeSpectrum{bins: []byte{255, 0, 128, 255}, ready: true}
	surface := &recordingSurface{width: 80, height: 40}
	r := NewRenderer(spectrum, surface)

	if !r.Frame() {
		t.Fatal("Ожидался нарисованный кадр")
	}
	if surface.clears != 1 {
		t.Errorf("Поверхность должна очищаться каждый кадр, получено %d", surface.clears)
	}
	if len(surface.rects) != 3 {
		t.Fatalf("Ожидалось 3 ненулевых столбика, получено %d", len(surface.rects))
	}
	if surface.rects[0].Height != 40 {
		t.Errorf("Ожидалась полная высота, получено %v", surface.rects[0].Height)
	}

	// Размер полос меняется вместе с анализатором
	spectrum.bins = filledBins(16, 255)
	surface.rects = nil
	r.Frame()
	if len(surface.rects) != 16 {
		t.Errorf("Ожидалось 16 столбиков, получено %d", len(surface.rects))
	}
}

func TestCellSurface(t *testing.T) {
	s := NewCellSurface(4, 2)
	if w, h := s.Size(); w != 4 || h != 2*SubRows {
		t.Fatalf("Неожиданный размер: %vx%v", w, h)
	}

	red := colorful.Hsl(0, 0.8, 0.5)
	s.FillRect(0, 0, 1, 16, red)
	s.FillRect(1.2, 12, 0.5, 4, red)

	if s.Filled(0) != 16 {
		t.Errorf("Колонка 0 должна быть заполнена, получено %d", s.Filled(0))
	}
	if s.Filled(1) != 4 {
		t.Errorf("Колонка 1: ожидалось 4 пикселя, получено %d", s.Filled(1))
	}
	if s.Filled(2) != 0 || s.Filled(3) != 0 {
		t.Error("Колонки 2 и 3 должны быть пустыми")
	}

	lines := strings.Split(s.Render(), "\n")
	if len(lines) != 2 {
		t.Fatalf("Ожидалось 2 строки, получено %d", len(lines))
	}
	if !strings.Contains(lines[0], "█") || strings.Contains(lines[0], "▄") {
		t.Errorf("Неожиданная верхняя строка: %q", lines[0])
	}
	if !strings.Contains(lines[1], "▄") {
		t.Errorf("Нижняя строка должна содержать половинный блок: %q", lines[1])
	}

	s.Clear()
	if s.Filled(0) != 0 {
		t.Error("После очистки поверхность должна быть пустой")
	}
}

func TestCellSurfaceClipsAndResizes(t *testing.T) {
	s := NewCellSurface(2, 1)
	s.FillRect(-1, -4, 10, 20, colorful.Hsl(40, 0.8, 0.5))
	if s.Filled(0) != SubRows || s.Filled(1) != SubRows {
		t.Error("Прямоугольник должен обрезаться по краям поверхности")
	}

	s.Resize(3, 1)
	if cols, rows := s.Cells(); cols != 3 || rows != 1 {
		t.Errorf("Неожиданный размер после Resize: %dx%d", cols, rows)
	}
	if s.Filled(0) != 0 {
		t.Error("Resize с новым размером должен очищать поверхность")
	}
}

func TestRendererOnCellSurface(t *testing.T) {
	s := NewCellSurface(10, 2)
	r := NewRenderer(&fakeSpectrum{bins: filledBins(8, 255), ready: true}, s)
	r.Frame()

	// Шаг 10/8*1.2 = 1.5 колонки: последние полосы выходят за край
	for col := 0; col < 10; col++ {
		if s.Filled(col) != 2*SubRows {
			t.Errorf("Колонка %d должна быть заполнена целиком, получено %d", col, s.Filled(col))
		}
	}

	r2 := NewRenderer(&fakeSpectrum{bins: filledBins(8, 0), ready: true}, s)
	r2.Frame()
	for col := 0; col < 10; col++ {
		if s.Filled(col) != 0 {
			t.Errorf("Колонка %d должна быть пустой, получено %d", col, s.Filled(col))
		}
	}
}
