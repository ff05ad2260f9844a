package visualizer

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// SubRows количество пикселей по вертикали в одной ячейке терминала
const SubRows = 8

// Блоки по высоте заполнения ячейки снизу
var blocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

type pixel struct {
	filled bool
	color  colorful.Color
}

// CellSurface поверхность из ячеек терминала: по горизонтали пиксель на
// колонку, по вертикали SubRows пикселей на строку
type CellSurface struct {
	cols, rows int
	pixels     []pixel
	styles     map[string]lipgloss.Style
}

// NewCellSurface создает поверхность заданного размера в ячейках
func NewCellSurface(cols, rows int) *CellSurface {
	s := &CellSurface{styles: make(map[string]lipgloss.Style)}
	s.Resize(cols, rows)
	return s
}

// Resize подгоняет поверхность под размер области на экране
func (s *CellSurface) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.pixels = make([]pixel, cols*rows*SubRows)
}

// Cells возвращает размер в ячейках
func (s *CellSurface) Cells() (cols, rows int) {
	return s.cols, s.rows
}

// Size возвращает размер в пикселях
func (s *CellSurface) Size() (width, height float64) {
	return float64(s.cols), float64(s.rows * SubRows)
}

// Clear очищает поверхность
func (s *CellSurface) Clear() {
	clear(s.pixels)
}

// FillRect заливает прямоугольник. Каждая колонка, которую задевает
// прямоугольник, закрашивается, части за пределами поверхности отбрасываются.
func (s *CellSurface) FillRect(x, y, w, h float64, c colorful.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	height := s.rows * SubRows

	x0 := max(int(math.Floor(x)), 0)
	x1 := min(int(math.Ceil(x+w)), s.cols)
	y0 := max(int(math.Round(y)), 0)
	y1 := min(int(math.Round(y+h)), height)

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.pixels[py*s.cols+px] = pixel{filled: true, color: c}
		}
	}
}

// Filled возвращает количество закрашенных пикселей в колонке
func (s *CellSurface) Filled(col int) int {
	if col < 0 || col >= s.cols {
		return 0
	}
	n := 0
	for py := 0; py < s.rows*SubRows; py++ {
		if s.pixels[py*s.cols+col].filled {
			n++
		}
	}
	return n
}

// Render выводит поверхность строками терминала
func (s *CellSurface) Render() string {
	if s.cols == 0 || s.rows == 0 {
		return ""
	}

	var sb strings.Builder
	for row := 0; row < s.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < s.cols; col++ {
			level, color := s.cell(row, col)
			if level == 0 {
				sb.WriteString(blocks[0])
				continue
			}
			sb.WriteString(s.style(color).Render(blocks[level]))
		}
	}
	return sb.String()
}

// cell считает заполнение ячейки снизу и цвет верхнего закрашенного пикселя
func (s *CellSurface) cell(row, col int) (int, colorful.Color) {
	level := 0
	var color colorful.Color
	for sub := SubRows - 1; sub >= 0; sub-- {
		p := s.pixels[(row*SubRows+sub)*s.cols+col]
		if !p.filled {
			break
		}
		level++
		color = p.color
	}
	return level, color
}

func (s *CellSurface) style(c colorful.Color) lipgloss.Style {
	hex := c.Hex()
	style, ok := s.styles[hex]
	if !ok {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		s.styles[hex] = style
	}
	return style
}
