// Package visualizer рисует спектр в виде столбиков на двумерной поверхности
package visualizer

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Параметры раскладки столбиков
const (
	// BarSpacing шаг столбика относительно ширины поверхности, деленной на число полос
	BarSpacing = 1.2
	// BarFill доля шага, занятая столбиком
	BarFill = 0.9
	// HueQuiet оттенок тихой полосы, громкие сдвигаются к HueQuiet-HueRange
	HueQuiet = 140.0
	HueRange = 100.0

	barSaturation = 0.8
	barLightness  = 0.5
)

// Bar прямоугольник одного столбика. Y отсчитывается от верхнего края.
type Bar struct {
	X, Y          float64
	Width, Height float64
	Hue           float64
}

// Color возвращает цвет столбика
func (b Bar) Color() colorful.Color {
	return colorful.Hsl(b.Hue, barSaturation, barLightness)
}

// Layout раскладывает полосы спектра по поверхности width x height.
// Высота столбика пропорциональна магнитуде, максимальная занимает всю высоту.
func Layout(bins []byte, width, height float64) []Bar {
	if len(bins) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	step := width / float64(len(bins)) * BarSpacing
	bars := make([]Bar, len(bins))
	x := 0.0
	for i, b := range bins {
		v := float64(b) / 255
		h := v * height
		bars[i] = Bar{
			X:      x,
			Y:      height - h,
			Width:  step * BarFill,
			Height: h,
			Hue:    HueQuiet - v*HueRange,
		}
		x += step
	}
	return bars
}

// Surface поверхность с размерами в пикселях и заливкой прямоугольника
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillRect(x, y, w, h float64, c colorful.Color)
}

// Spectrum источник снимков спектра
type Spectrum interface {
	BinCount() int
	FrequencyData(dst []byte) bool
}

// Renderer рисует один кадр по запросу цикла отрисовки
type Renderer struct {
	spectrum Spectrum
	surface  Surface
	bins     []byte
}

// NewRenderer создает рендерер
func NewRenderer(spectrum Spectrum, surface Surface) *Renderer {
	return &Renderer{spectrum: spectrum, surface: surface}
}

// Frame рисует кадр. Если граф анализа не построен, кадр пропускается
// и поверхность не меняется. Возвращает true, если кадр нарисован.
func (r *Renderer) Frame() bool {
	n := r.spectrum.BinCount()
	if n == 0 {
		return false
	}
	if len(r.bins) != n {
		r.bins = make([]byte, n)
	}
	if !r.spectrum.FrequencyData(r.bins) {
		return false
	}

	r.surface.Clear()
	width, height := r.surface.Size()
	for _, bar := range Layout(r.bins, width, height) {
		if bar.Height <= 0 {
			continue
		}
		r.surface.FillRect(bar.X, bar.Y, bar.Width, bar.Height, bar.Color())
	}
	return true
}
