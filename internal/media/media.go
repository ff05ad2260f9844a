// Package media описывает контракт аудио-элемента, которым управляет контроллер воспроизведения
package media

import (
	"errors"
	"time"
)

// ErrInterrupted возвращается из Play, если запрос был вытеснен
// вызовом Pause или сменой источника до начала воспроизведения.
var ErrInterrupted = errors.New("запрос воспроизведения прерван")

// EventKind тип события жизненного цикла элемента
type EventKind int

const (
	// PositionAdvanced позиция воспроизведения сдвинулась
	PositionAdvanced EventKind = iota
	// MetadataReady длительность трека стала известна
	MetadataReady
	// Ended трек доигран до конца
	Ended
)

func (k EventKind) String() string {
	switch k {
	case PositionAdvanced:
		return "position-advanced"
	case MetadataReady:
		return "metadata-ready"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Event событие элемента. Source - локатор, для которого событие произошло,
// Load - номер загрузки этого локатора.
type Event struct {
	Kind     EventKind
	Source   string
	Load     uint64
	Position time.Duration
	Duration time.Duration
}

// Element воспроизводит один источник за раз.
// Play асинхронен: канал получает ровно одно значение (nil или ошибку).
type Element interface {
	SetSource(locator string)
	Source() string
	// Load возвращает номер текущей загрузки, он растет при каждом SetSource
	Load() uint64
	Play() <-chan error
	Pause()
	Position() time.Duration
	SetPosition(pos time.Duration)
	// Duration возвращает 0, пока длительность неизвестна
	Duration() time.Duration
	Volume() float64
	SetVolume(level float64)
	Muted() bool
	SetMuted(muted bool)
	Events() <-chan Event
}
