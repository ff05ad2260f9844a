package app

import "github.com/charmbracelet/bubbles/key"

// keyMap горячие клавиши главного экрана
type keyMap struct {
	PlayPause  key.Binding
	Next       key.Binding
	Prev       key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	JumpBack   key.Binding
	JumpFwd    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding
	Shuffle    key.Binding
	Repeat     key.Binding
	Search     key.Binding
	Open       key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("пробел", "пауза")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "следующий")),
		Prev:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "предыдущий")),
		SeekBack:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "-5с")),
		SeekFwd:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "+5с")),
		JumpBack:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "-10с")),
		JumpFwd:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "+10с")),
		VolumeUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "громче")),
		VolumeDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "тише")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "без звука")),
		Shuffle:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		Repeat:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "поиск")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "открыть файл")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "тема")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "справка")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "выход")),
	}
}

// ShortHelp реализует help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.Prev, k.Search, k.Open, k.Help, k.Quit}
}

// FullHelp реализует help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Next, k.Prev},
		{k.SeekBack, k.SeekFwd, k.JumpBack, k.JumpFwd},
		{k.VolumeUp, k.VolumeDown, k.Mute},
		{k.Shuffle, k.Repeat, k.Search, k.Open},
		{k.Theme, k.Help, k.Quit},
	}
}
