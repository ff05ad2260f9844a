package tui

import (
	"testing"
	"time"

	"github.com/hazadus/go-jukebox/internal/config"
	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/media"
	"github.com/hazadus/go-jukebox/internal/tui/app"
)

// stubElement элемент без звука
type stubElement struct {
	source string
	loads  uint64
	volume float64
	muted  bool
	events chan media.Event
}

func (e *stubElement) SetSource(locator string) { e.source = locator; e.loads++ }
func (e *stubElement) Source() string           { return e.source }
func (e *stubElement) Load() uint64             { return e.loads }
func (e *stubElement) Play() <-chan error {
	ch := make(chan error, 1)
	ch <- nil
	return ch
}
func (e *stubElement) Pause()                     {}
func (e *stubElement) Position() time.Duration    { return 0 }
func (e *stubElement) SetPosition(time.Duration)  {}
func (e *stubElement) Duration() time.Duration    { return 0 }
func (e *stubElement) Volume() float64            { return e.volume }
func (e *stubElement) SetVolume(level float64)    { e.volume = level }
func (e *stubElement) Muted() bool                { return e.muted }
func (e *stubElement) SetMuted(muted bool)        { e.muted = muted }
func (e *stubElement) Events() <-chan media.Event { return e.events }

func TestNewApp(t *testing.T) {
	el := &stubElement{volume: 1, events: make(chan media.Event)}

	tuiApp := NewApp(app.Deps{
		Config:  config.Default(),
		Tracks:  data.SeedTracks(),
		Element: el,
	})

	model := tuiApp.Model()
	if model == nil {
		t.Fatal("Model вернул nil")
	}
	if model.Controller().Playlist().Len() != 3 {
		t.Errorf("Ожидалось 3 трека, получено %d", model.Controller().Playlist().Len())
	}
	if el.source != "tracks/song1.mp3" {
		t.Errorf("Ожидалась загрузка первого трека, источник %q", el.source)
	}
	if model.View() == "" {
		t.Error("Ожидался непустой интерфейс")
	}
	if err := model.Close(); err != nil {
		t.Errorf("Close без io.Closer не должен возвращать ошибку: %v", err)
	}
}
