// Package player содержит панель воспроизведения для TUI: трек, прогресс,
// громкость, режимы и визуализатор спектра
package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/utils"
	"github.com/hazadus/go-jukebox/internal/visualizer"
)

// Размеры панели
const (
	VisualizerRows = 6
	maxBarWidth    = 60
	volumeCells    = 10
)

// Theme палитра панели
type Theme struct {
	Name   string
	Title  lipgloss.Style
	Info   lipgloss.Style
	Status lipgloss.Style
	Muted  lipgloss.Style
}

var (
	darkTheme = Theme{
		Name:   "dark",
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1db954")),
		Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa")),
		Status: lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}

	lightTheme = Theme{
		Name:   "light",
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0000ff")),
		Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")),
		Status: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#222222")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
)

// ThemeByName возвращает тему по имени, по умолчанию темную
func ThemeByName(name string) Theme {
	if name == lightTheme.Name {
		return lightTheme
	}
	return darkTheme
}

// Model панель воспроизведения. Состояние обновляется только вызовами Set*.
type Model struct {
	track    data.Track
	index    int
	loaded   bool
	playing  bool
	position time.Duration
	duration time.Duration
	volume   float64
	muted    bool
	shuffle  bool
	repeat   bool
	theme    Theme

	progressBar progress.Model
	surface     *visualizer.CellSurface
	width       int
	progressRow int
}

// NewModel создает панель
func NewModel(theme string) *Model {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 40

	return &Model{
		volume:      1,
		theme:       ThemeByName(theme),
		progressBar: prog,
		surface:     visualizer.NewCellSurface(prog.Width, VisualizerRows),
		width:       prog.Width,
	}
}

// Surface возвращает поверхность визуализатора
func (m *Model) Surface() *visualizer.CellSurface {
	return m.surface
}

// SetWidth подгоняет прогресс-бар и визуализатор под ширину окна
func (m *Model) SetWidth(width int) {
	m.width = width
	m.progressBar.Width = max(min(maxBarWidth, width-16), 10)
	m.surface.Resize(max(width-2, 1), VisualizerRows)
}

// SetTrack отображает загруженный трек
func (m *Model) SetTrack(index int, track data.Track) {
	m.track = track
	m.index = index
	m.loaded = true
	m.position = 0
	m.duration = 0
}

// SetPlaying отображает состояние воспроизведения
func (m *Model) SetPlaying(playing bool) { m.playing = playing }

// SetProgress отображает позицию и длительность
func (m *Model) SetProgress(position, duration time.Duration) {
	m.position = position
	if duration > 0 {
		m.duration = duration
	}
}

// SetDuration отображает длительность
func (m *Model) SetDuration(duration time.Duration) { m.duration = duration }

// SetVolume отображает громкость
func (m *Model) SetVolume(level float64, muted bool) {
	m.volume = level
	m.muted = muted
}

// SetModes отображает режимы shuffle и repeat
func (m *Model) SetModes(shuffle, repeat bool) {
	m.shuffle = shuffle
	m.repeat = repeat
}

// ToggleTheme переключает светлую и темную тему
func (m *Model) ToggleTheme() string {
	if m.theme.Name == darkTheme.Name {
		m.theme = lightTheme
	} else {
		m.theme = darkTheme
	}
	return m.theme.Name
}

// Percent возвращает долю проигранного трека
func (m *Model) Percent() float64 {
	if m.duration <= 0 {
		return 0
	}
	return utils.Clamp(float64(m.position)/float64(m.duration), 0, 1)
}

// ProgressHit переводит клик по прогресс-бару в долю длительности
func (m *Model) ProgressHit(x, y int) (float64, bool) {
	if y != m.progressRow || x < 0 || x >= m.progressBar.Width {
		return 0, false
	}
	return (float64(x) + 0.5) / float64(m.progressBar.Width), true
}

// View отображает панель. Прогресс-бар начинается с первой колонки,
// чтобы клики мышью переводились в долю без смещения.
func (m *Model) View() string {
	var lines []string

	lines = append(lines, m.theme.Title.Render("♫ go-jukebox"))

	if m.loaded {
		lines = append(lines, m.theme.Info.Render(fmt.Sprintf("🎵 %s · 🎤 %s",
			utils.TruncateString(m.track.DisplayTitle(), 40),
			utils.TruncateString(m.track.Artist, 30))))
	} else {
		lines = append(lines, m.theme.Info.Render("Трек не загружен"))
	}

	lines = append(lines, m.theme.Status.Render(m.statusLine()))

	m.progressRow = len(lines)
	lines = append(lines, fmt.Sprintf("%s  %s / %s",
		m.progressBar.ViewAs(m.Percent()),
		utils.FormatTime(m.position),
		utils.FormatTime(m.duration)))

	lines = append(lines, m.surface.Render())
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	icon := "⏸"
	state := formatStatus(m.playing)
	if m.playing {
		icon = "▶"
	}

	modes := []string{
		modeLabel("shuffle", m.shuffle),
		modeLabel("repeat", m.repeat),
	}

	return fmt.Sprintf("%s %s   %s   %s", icon, state, m.volumeLabel(), strings.Join(modes, " "))
}

func (m *Model) volumeLabel() string {
	icon := "🔊"
	if m.muted || m.volume == 0 {
		icon = "🔇"
	}
	filled := int(m.volume*volumeCells + 0.5)
	return fmt.Sprintf("%s %s%s %3d%%", icon,
		strings.Repeat("█", filled),
		strings.Repeat("░", volumeCells-filled),
		int(m.volume*100+0.5))
}

// Вспомогательные функции

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}

func modeLabel(name string, on bool) string {
	if on {
		return "[" + name + "]"
	}
	return " " + name + " "
}
