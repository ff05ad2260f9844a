// Package app содержит основную логику TUI приложения
package app

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/hazadus/go-jukebox/internal/audio"
	"github.com/hazadus/go-jukebox/internal/config"
	"github.com/hazadus/go-jukebox/internal/controller"
	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/ingest"
	"github.com/hazadus/go-jukebox/internal/media"
	"github.com/hazadus/go-jukebox/internal/playlist"
	"github.com/hazadus/go-jukebox/internal/source"
	tuiPlayer "github.com/hazadus/go-jukebox/internal/tui/player"
	"github.com/hazadus/go-jukebox/internal/tui/tracklist"
	"github.com/hazadus/go-jukebox/internal/visualizer"
)

// Строки, которые занимают панель плеера и нижняя часть экрана
const (
	panelRows  = 4 + tuiPlayer.VisualizerRows
	footerRows = 3
)

var (
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).PaddingLeft(2)
	promptStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// frameMsg отправляется на каждый кадр визуализатора
type frameMsg time.Time

// playResultMsg результат запроса воспроизведения
type playResultMsg struct {
	generation uint64
	err        error
}

// elementEventMsg событие аудио-элемента
type elementEventMsg struct {
	event media.Event
}

// Deps зависимости главной модели
type Deps struct {
	Config  *config.Config
	Tracks  []data.Track
	Element media.Element
	Session *audio.Session
	Blobs   *source.Blobs
	Logger  *zap.Logger
	Rand    *rand.Rand
	// Files добавляются в плейлист при запуске
	Files []string
}

// MainModel представляет главную модель TUI
type MainModel struct {
	cfg *config.Config
	log *zap.Logger

	el             media.Element
	ctrl           *controller.Controller
	renderer       *visualizer.Renderer
	playerModel    *tuiPlayer.Model
	tracklistModel *tracklist.Model

	prompt    textinput.Model
	prompting bool
	keys      keyMap
	help      help.Model
	notice    string
	width     int
	height    int
	quitting  bool
}

// NewMainModel создает главную модель и загружает первый трек без воспроизведения
func NewMainModel(deps Deps) *MainModel {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	session := deps.Session
	if session == nil {
		session = audio.NewSession(nil, cfg.FFTSize, log)
	}

	prompt := textinput.New()
	prompt.Prompt = "Открыть: "
	prompt.Placeholder = "пути к файлам через пробел"

	m := &MainModel{
		cfg:            cfg,
		log:            log,
		el:             deps.Element,
		playerModel:    tuiPlayer.NewModel(cfg.Theme),
		tracklistModel: tracklist.NewModel(),
		prompt:         prompt,
		keys:           defaultKeyMap(),
		help:           help.New(),
	}

	m.ctrl = controller.New(playlist.New(deps.Tracks), deps.Element, session, m, controller.Options{
		RestartThreshold: config.Seconds(cfg.RestartThreshold),
		VolumeFloor:      cfg.DefaultVolume,
		Rand:             deps.Rand,
		Logger:           log.Named("controller"),
		Blobs:            deps.Blobs,
	})
	m.renderer = visualizer.NewRenderer(session, m.playerModel.Surface())

	m.ctrl.SetVolume(cfg.InitialVolume)
	m.PlaylistChanged(m.ctrl.Visible(), m.ctrl.Playlist().Current())

	if len(deps.Files) > 0 {
		m.ingestFiles(ingest.FromPaths(deps.Files, log.Named("ingest")))
	}
	if m.ctrl.State() == controller.Stopped {
		m.ctrl.LoadTrack(0)
	}
	return m
}

// Controller возвращает контроллер воспроизведения
func (m *MainModel) Controller() *controller.Controller {
	return m.ctrl
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(m.listenEvents(), m.tick())
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.playerModel.SetWidth(msg.Width)
		m.tracklistModel.SetSize(msg.Width, msg.Height-panelRows-footerRows)
		return m, nil

	case frameMsg:
		m.renderer.Frame()
		return m, m.tick()

	case playResultMsg:
		applied := m.ctrl.Settle(msg.generation, msg.err)
		if applied && msg.err != nil && !errors.Is(msg.err, media.ErrInterrupted) {
			m.notice = fmt.Sprintf("Не удалось воспроизвести: %v", msg.err)
		}
		return m, nil

	case elementEventMsg:
		req := m.ctrl.HandleEvent(msg.event)
		return m, tea.Batch(m.await(req), m.listenEvents())

	case tracklist.TrackSelectedMsg:
		m.notice = ""
		return m, m.await(m.ctrl.PlayIndex(msg.Index))

	case tracklist.QueryChangedMsg:
		m.ctrl.Search(msg.Query)
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if fraction, ok := m.playerModel.ProgressHit(msg.X, msg.Y); ok {
				m.ctrl.SeekToFraction(fraction)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		if m.tracklistModel.Searching() {
			return m.updateTracklist(msg)
		}
		// Перетаскивание файлов в терминал приходит как вставка путей
		if msg.Paste {
			m.ingestText(string(msg.Runes))
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m.updateTracklist(msg)
}

// handleKey обрабатывает горячие клавиши главного экрана
func (m *MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.PlayPause):
		return m, m.await(m.ctrl.TogglePlay())
	case key.Matches(msg, m.keys.Next):
		return m, m.await(m.ctrl.Next())
	case key.Matches(msg, m.keys.Prev):
		return m, m.await(m.ctrl.Prev())
	case key.Matches(msg, m.keys.SeekBack):
		m.ctrl.SeekRelative(-config.Seconds(m.cfg.KeySeekStep))
	case key.Matches(msg, m.keys.SeekFwd):
		m.ctrl.SeekRelative(config.Seconds(m.cfg.KeySeekStep))
	case key.Matches(msg, m.keys.JumpBack):
		m.ctrl.SeekRelative(-config.Seconds(m.cfg.SeekStep))
	case key.Matches(msg, m.keys.JumpFwd):
		m.ctrl.SeekRelative(config.Seconds(m.cfg.SeekStep))
	case key.Matches(msg, m.keys.VolumeUp):
		m.ctrl.AdjustVolume(m.cfg.VolumeStep)
	case key.Matches(msg, m.keys.VolumeDown):
		m.ctrl.AdjustVolume(-m.cfg.VolumeStep)
	case key.Matches(msg, m.keys.Mute):
		m.ctrl.ToggleMute()
	case key.Matches(msg, m.keys.Shuffle):
		m.ctrl.ToggleShuffle()
	case key.Matches(msg, m.keys.Repeat):
		m.ctrl.ToggleRepeat()
	case key.Matches(msg, m.keys.Search):
		return m, m.tracklistModel.StartSearch()
	case key.Matches(msg, m.keys.Open):
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Theme):
		m.playerModel.ToggleTheme()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return m.updateTracklist(msg)
	}
	return m, nil
}

// updatePrompt обрабатывает ввод путей к файлам
func (m *MainModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.prompting = false
		m.prompt.Blur()
		m.ingestText(m.prompt.Value())
		return m, nil
	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *MainModel) updateTracklist(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tracklistModel, cmd = m.tracklistModel.Update(msg)
	return m, cmd
}

// ingestText добавляет файлы по вставленным или введенным путям
func (m *MainModel) ingestText(text string) {
	paths, err := ingest.ParseDropped(text)
	if err != nil {
		m.log.Warn("ошибка разбора путей", zap.String("text", text), zap.Error(err))
		m.notice = err.Error()
		return
	}
	if len(paths) == 0 {
		return
	}
	m.ingestFiles(ingest.FromPaths(paths, m.log.Named("ingest")))
}

func (m *MainModel) ingestFiles(files []ingest.File) {
	added := m.ctrl.IngestFiles(files)
	if added == 0 {
		m.notice = "Аудио файлы не найдены"
		return
	}
	m.notice = fmt.Sprintf("Добавлено треков: %d", added)
}

func (m *MainModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Pause()
	return m, tea.Quit
}

// await ждет результата запроса воспроизведения
func (m *MainModel) await(req *controller.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return playResultMsg{generation: req.Generation, err: <-req.Done}
	}
}

// listenEvents слушает события аудио-элемента
func (m *MainModel) listenEvents() tea.Cmd {
	events := m.el.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return elementEventMsg{event: ev}
	}
}

func (m *MainModel) tick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// View отображает интерфейс
func (m *MainModel) View() string {
	if m.quitting {
		return ""
	}

	var footer string
	switch {
	case m.prompting:
		footer = promptStyle.Render(m.prompt.View())
	case m.notice != "":
		footer = noticeStyle.Render(m.notice)
	}

	return strings.Join([]string{
		m.playerModel.View(),
		"",
		m.tracklistModel.View(),
		footer,
		m.help.View(m.keys),
	}, "\n")
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() error {
	if closer, ok := m.el.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Реализация controller.Display

func (m *MainModel) TrackLoaded(index int, track data.Track) {
	m.playerModel.SetTrack(index, track)
}

func (m *MainModel) PlayStateChanged(playing bool) {
	m.playerModel.SetPlaying(playing)
}

func (m *MainModel) ProgressChanged(position, duration time.Duration) {
	m.playerModel.SetProgress(position, duration)
}

func (m *MainModel) DurationChanged(duration time.Duration) {
	m.playerModel.SetDuration(duration)
}

func (m *MainModel) VolumeChanged(level float64, muted bool) {
	m.playerModel.SetVolume(level, muted)
}

func (m *MainModel) PlaylistChanged(visible []int, current int) {
	m.tracklistModel.SetTracks(m.ctrl.Playlist().Tracks(), visible, current)
}

func (m *MainModel) ModesChanged(shuffle, repeat bool) {
	m.playerModel.SetModes(shuffle, repeat)
}
