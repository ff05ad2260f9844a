// Package tracklist содержит панель плейлиста с поиском для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	currentItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1db954")).Bold(true)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	searchStyle       = lipgloss.NewStyle().PaddingLeft(2)
)

// TrackSelectedMsg отправляется при выборе строки плейлиста
type TrackSelectedMsg struct {
	Index int
}

// QueryChangedMsg отправляется при изменении поискового запроса
type QueryChangedMsg struct {
	Query string
}

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	index int
	track data.Track
}

func (i trackItem) FilterValue() string {
	return i.track.Title + " " + i.track.Artist
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct {
	current *int
}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	// Строка таблицы: № | Название | Исполнитель
	str := fmt.Sprintf("%-4d %-30s %s",
		i.index+1,
		utils.TruncateString(i.track.DisplayTitle(), 30),
		utils.TruncateString(i.track.Artist, 24))

	if i.index == *d.current {
		str = currentItemStyle.Render("♪ " + str)
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет панель плейлиста
type Model struct {
	list      list.Model
	search    textinput.Model
	searching bool
	current   *int
}

// NewModel создает панель плейлиста
func NewModel() *Model {
	current := new(int)

	l := list.New(nil, trackItemDelegate{current: current}, 0, 0)
	l.Title = "Плейлист"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "поиск по названию и исполнителю"
	search.CharLimit = 128

	return &Model{
		list:    l,
		search:  search,
		current: current,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetTracks обновляет видимые строки и отмеченный текущий трек
func (m *Model) SetTracks(tracks []data.Track, visible []int, current int) {
	*m.current = current

	items := make([]list.Item, 0, len(visible))
	for _, i := range visible {
		if i < 0 || i >= len(tracks) {
			continue
		}
		items = append(items, trackItem{index: i, track: tracks[i]})
	}
	m.list.SetItems(items)
}

// Len возвращает количество видимых строк
func (m *Model) Len() int {
	return len(m.list.Items())
}

// Current возвращает индекс отмеченного трека
func (m *Model) Current() int {
	return *m.current
}

// Selected возвращает индекс трека в выбранной строке
func (m *Model) Selected() (int, bool) {
	item, ok := m.list.SelectedItem().(trackItem)
	if !ok {
		return 0, false
	}
	return item.index, true
}

// Searching сообщает, вводится ли поисковый запрос
func (m *Model) Searching() bool {
	return m.searching
}

// Query возвращает поисковый запрос
func (m *Model) Query() string {
	return m.search.Value()
}

// StartSearch переводит фокус в строку поиска
func (m *Model) StartSearch() tea.Cmd {
	m.searching = true
	return m.search.Focus()
}

// SetSize задает размер панели
func (m *Model) SetSize(width, height int) {
	m.list.SetWidth(width)
	m.list.SetHeight(max(height-1, 1)) // строка поиска
	m.search.Width = max(width-4, 10)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			// Отправляем сообщение о выборе трека
			if index, ok := m.Selected(); ok {
				return m, func() tea.Msg {
					return TrackSelectedMsg{Index: index}
				}
			}
			return m, nil
		case "/":
			return m, m.StartSearch()
		}
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateSearch обрабатывает ввод запроса. Запрос применяется при каждом изменении.
func (m *Model) updateSearch(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return m, nil
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			return m, queryChanged("")
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		return m, tea.Batch(cmd, queryChanged(after))
	}
	return m, cmd
}

func queryChanged(query string) tea.Cmd {
	return func() tea.Msg {
		return QueryChangedMsg{Query: query}
	}
}

// View отображает модель
func (m *Model) View() string {
	var searchLine string
	if m.searching || m.search.Value() != "" {
		searchLine = searchStyle.Render(m.search.View())
	}
	return m.list.View() + "\n" + searchLine
}
