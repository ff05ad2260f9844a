package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output звуковой выход, в который плеер отправляет готовый поток
type Output interface {
	Init(sr beep.SampleRate) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// speakerOutput выход на системные динамики
type speakerOutput struct {
	once sync.Once
	err  error
}

// NewSpeakerOutput возвращает выход на динамики. Динамики инициализируются один раз на процесс.
func NewSpeakerOutput() Output {
	return &speakerOutput{}
}

func (o *speakerOutput) Init(sr beep.SampleRate) error {
	o.once.Do(func() {
		if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
			o.err = fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
	})
	return o.err
}

func (o *speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (o *speakerOutput) Clear()               { speaker.Clear() }
func (o *speakerOutput) Lock()                { speaker.Lock() }
func (o *speakerOutput) Unlock()              { speaker.Unlock() }
