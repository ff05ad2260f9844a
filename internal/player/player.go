// Package player содержит аудио-элемент на основе beep: загрузка источника,
// воспроизведение, пауза, перемотка, громкость и события жизненного цикла
package player

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"go.uber.org/zap"

	"github.com/hazadus/go-jukebox/internal/media"
)

// Значения по умолчанию
const (
	DefaultSampleRate   = 44100
	DefaultTickInterval = 250 * time.Millisecond
	// TapSize вмещает окно анализатора максимального размера
	TapSize     = 32768
	eventBuffer = 64
)

// ErrNoSource возвращается из Play, если источник не задан
var ErrNoSource = errors.New("источник не задан")

// Opener открывает источник по локатору
type Opener interface {
	Open(ctx context.Context, locator string) (io.ReadSeekCloser, error)
}

// Options параметры плеера
type Options struct {
	SampleRate   int
	Output       Output
	Logger       *zap.Logger
	TickInterval time.Duration
	// Downmix сведение каналов для анализатора, по умолчанию MixMono
	Downmix Downmix
}

// track загруженный источник и построенный для него конвейер
type track struct {
	source   string
	load     uint64
	rsc      io.ReadSeekCloser
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	tap      *Tap
	ended    bool
	stop     chan struct{}
}

func (t *track) duration() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

func (t *track) close() {
	_ = t.streamer.Close()
	_ = t.rsc.Close()
}

// loading загрузка источника. err заполняется до закрытия done.
type loading struct {
	source string
	id     uint64
	done   chan struct{}
	err    error
}

// Player реализует media.Element поверх beep.
//
// Конвейер: [Decode] -> [Resample] -> [Volume] -> [Ctrl] -> [Tap] -> [Output]
type Player struct {
	ctx    context.Context
	cancel context.CancelFunc

	opener     Opener
	out        Output
	sampleRate beep.SampleRate
	tick       time.Duration
	mix        Downmix
	log        *zap.Logger
	events     chan media.Event

	mu      sync.Mutex
	source  string
	loads   uint64
	load    *loading
	track   *track
	request uint64
	playing bool
	level   float64
	muted   bool
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer(opener Opener, opts Options) *Player {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Output == nil {
		opts.Output = NewSpeakerOutput()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		ctx:        ctx,
		cancel:     cancel,
		opener:     opener,
		out:        opts.Output,
		sampleRate: beep.SampleRate(opts.SampleRate),
		tick:       opts.TickInterval,
		mix:        opts.Downmix,
		log:        opts.Logger,
		events:     make(chan media.Event, eventBuffer),
		level:      1,
	}
}

// Events возвращает канал событий элемента
func (p *Player) Events() <-chan media.Event {
	return p.events
}

// Source возвращает текущий локатор
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// SetSource сменяет источник. Предыдущий трек выгружается, новый
// загружается в фоне и остается на паузе до вызова Play.
func (p *Player) SetSource(locator string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.request++
	p.loads++
	p.releaseLocked()
	p.source = locator
	p.playing = false
	p.load = nil

	if locator == "" {
		return
	}

	l := &loading{source: locator, id: p.loads, done: make(chan struct{})}
	p.load = l
	go p.prepare(l)
}

// Load возвращает номер текущей загрузки
func (p *Player) Load() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loads
}

// Play запускает воспроизведение, как только источник загружен.
// Канал получает ровно одно значение.
func (p *Player) Play() <-chan error {
	result := make(chan error, 1)

	p.mu.Lock()
	p.request++
	id := p.request
	l := p.load
	p.mu.Unlock()

	if l == nil {
		result <- ErrNoSource
		return result
	}

	go func() {
		select {
		case <-l.done:
			result <- p.start(id, l)
		case <-p.ctx.Done():
			result <- media.ErrInterrupted
		}
	}()
	return result
}

// Pause приостанавливает воспроизведение и вытесняет незавершенный Play
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.request++
	p.playing = false
	if t := p.track; t != nil {
		p.out.Lock()
		t.ctrl.Paused = true
		p.out.Unlock()
	}
}

// Playing возвращает true, если трек воспроизводится
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Position возвращает текущую позицию
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.track
	if t == nil {
		return 0
	}
	p.out.Lock()
	pos := t.streamer.Position()
	p.out.Unlock()
	return t.format.SampleRate.D(pos)
}

// SetPosition перематывает трек и сообщает новую позицию.
// Позиция ограничивается длиной трека.
func (p *Player) SetPosition(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.track
	if t == nil {
		return
	}

	n := t.format.SampleRate.N(pos)
	n = max(0, min(n, t.streamer.Len()))

	p.out.Lock()
	err := t.streamer.Seek(n)
	pos := t.format.SampleRate.D(t.streamer.Position())
	p.out.Unlock()
	if err != nil {
		p.log.Warn("ошибка перемотки", zap.String("source", t.source), zap.Error(err))
		return
	}
	p.emit(media.Event{Kind: media.PositionAdvanced, Source: t.source, Load: t.load, Position: pos, Duration: t.duration()})
}

// Duration возвращает длительность трека или 0, пока она неизвестна
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.track == nil {
		return 0
	}
	return p.track.duration()
}

// Volume возвращает громкость 0..1
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// SetVolume устанавливает громкость, ограничивая ее диапазоном 0..1
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = max(0, min(level, 1))
	p.applyVolumeLocked()
}

// Muted сообщает, выключен ли звук
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetMuted выключает или включает звук, не меняя громкость
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.applyVolumeLocked()
}

// Samples возвращает последние n проигранных сэмплов для анализатора
func (p *Player) Samples(n int) []float64 {
	p.mu.Lock()
	var tap *Tap
	if p.track != nil && !p.track.ended {
		tap = p.track.tap
	}
	p.mu.Unlock()

	if tap == nil {
		return nil
	}
	return tap.Samples(n)
}

// Close останавливает воспроизведение и освобождает ресурсы
func (p *Player) Close() error {
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.request++
	p.releaseLocked()
	p.load = nil
	p.source = ""
	p.playing = false
	return nil
}

// prepare открывает и декодирует источник в фоне
func (p *Player) prepare(l *loading) {
	var t *track
	rsc, err := p.opener.Open(p.ctx, l.source)
	if err == nil {
		streamer, format, decodeErr := decode(rsc)
		if decodeErr != nil {
			_ = rsc.Close()
			err = decodeErr
		} else {
			t = &track{
				source:   l.source,
				load:     l.id,
				rsc:      rsc,
				streamer: streamer,
				format:   format,
				stop:     make(chan struct{}),
			}
		}
	}

	p.mu.Lock()
	if p.load != l {
		p.mu.Unlock()
		if t != nil {
			t.close()
		}
		l.err = media.ErrInterrupted
		close(l.done)
		return
	}
	if err == nil {
		err = p.out.Init(p.sampleRate)
		if err != nil {
			t.close()
		}
	}
	if err != nil {
		p.log.Warn("ошибка загрузки источника", zap.String("source", l.source), zap.Error(err))
		l.err = err
		p.mu.Unlock()
		close(l.done)
		return
	}

	p.track = t
	p.queueLocked(t)
	duration := t.duration()
	p.mu.Unlock()

	p.log.Debug("источник загружен",
		zap.String("source", t.source),
		zap.Duration("duration", duration),
		zap.Int("sample_rate", int(t.format.SampleRate)),
	)
	close(l.done)

	p.emit(media.Event{Kind: media.MetadataReady, Source: t.source, Load: t.load, Duration: duration})
	go p.monitor(t)
}

// start снимает трек с паузы, если запрос не был вытеснен
func (p *Player) start(id uint64, l *loading) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id != p.request || p.load != l {
		return media.ErrInterrupted
	}
	if l.err != nil {
		return l.err
	}
	t := p.track
	if t == nil {
		return media.ErrInterrupted
	}

	// Доигранный трек ставится в очередь заново
	if t.ended {
		p.out.Lock()
		if t.streamer.Position() >= t.streamer.Len() {
			_ = t.streamer.Seek(0)
		}
		p.out.Unlock()
		t.ended = false
		p.queueLocked(t)
	}

	p.out.Lock()
	t.ctrl.Paused = false
	p.out.Unlock()
	p.playing = true
	return nil
}

// queueLocked строит конвейер трека на паузе и отправляет его в выход
func (p *Player) queueLocked(t *track) {
	var s beep.Streamer = t.streamer
	if t.format.SampleRate != p.sampleRate {
		s = beep.Resample(4, t.format.SampleRate, p.sampleRate, s)
	}
	t.volume = &effects.Volume{Streamer: s, Base: 2}
	t.ctrl = &beep.Ctrl{Streamer: t.volume, Paused: true}
	t.tap = NewTap(t.ctrl, TapSize, p.mix)
	p.setVolume(t.volume)

	p.out.Play(beep.Seq(t.tap, beep.Callback(func() {
		// Вызывается под блокировкой выхода
		go p.finish(t)
	})))
}

// applyVolumeLocked применяет громкость к текущему конвейеру
func (p *Player) applyVolumeLocked() {
	if p.track == nil || p.track.volume == nil {
		return
	}
	p.out.Lock()
	p.setVolume(p.track.volume)
	p.out.Unlock()
}

// setVolume переводит линейную громкость в степень двойки для effects.Volume
func (p *Player) setVolume(v *effects.Volume) {
	v.Silent = p.muted || p.level <= 0
	if p.level > 0 {
		v.Volume = math.Log2(p.level)
	}
}

// releaseLocked выгружает текущий трек
func (p *Player) releaseLocked() {
	t := p.track
	if t == nil {
		return
	}
	p.track = nil
	close(t.stop)
	p.out.Clear()
	t.close()
}

// finish отмечает трек доигранным и отправляет событие Ended
func (p *Player) finish(t *track) {
	p.mu.Lock()
	if p.track != t {
		p.mu.Unlock()
		return
	}
	t.ended = true
	p.playing = false
	duration := t.duration()
	p.mu.Unlock()

	select {
	case p.events <- media.Event{Kind: media.Ended, Source: t.source, Load: t.load, Position: duration, Duration: duration}:
	case <-p.ctx.Done():
	}
}

// monitor отправляет позицию, пока трек воспроизводится
func (p *Player) monitor(t *track) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-t.stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.track != t || !p.playing {
				p.mu.Unlock()
				continue
			}
			p.out.Lock()
			pos := t.format.SampleRate.D(t.streamer.Position())
			p.out.Unlock()
			duration := t.duration()
			p.mu.Unlock()

			p.emit(media.Event{Kind: media.PositionAdvanced, Source: t.source, Load: t.load, Position: pos, Duration: duration})
		}
	}
}

// emit отправляет событие, пропуская его, если канал переполнен
func (p *Player) emit(ev media.Event) {
	select {
	case p.events <- ev:
	default:
		p.log.Debug("событие пропущено", zap.Stringer("kind", ev.Kind), zap.String("source", ev.Source), zap.Uint64("load", ev.Load))
	}
}
