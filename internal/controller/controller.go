// Package controller содержит машину состояний воспроизведения: загрузку треков,
// навигацию по плейлисту, перемотку, громкость и реакцию на события аудио-элемента.
//
// Controller не потокобезопасен: все методы вызываются из одного цикла обработки событий.
package controller

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/ingest"
	"github.com/hazadus/go-jukebox/internal/media"
	"github.com/hazadus/go-jukebox/internal/playlist"
	"github.com/hazadus/go-jukebox/internal/source"
	"github.com/hazadus/go-jukebox/internal/utils"
)

// Значения по умолчанию
const (
	DefaultRestartThreshold = 3 * time.Second
	DefaultVolumeFloor      = 0.6
)

// State состояние воспроизведения
type State int

const (
	// Stopped трек еще не загружен
	Stopped State = iota
	// Paused трек загружен, но не играет
	Paused
	// Playing трек играет
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Attacher подключает визуализацию к новому источнику
type Attacher interface {
	Attach(source string)
}

// Display получает изменения отображаемого состояния
type Display interface {
	TrackLoaded(index int, track data.Track)
	PlayStateChanged(playing bool)
	ProgressChanged(position, duration time.Duration)
	DurationChanged(duration time.Duration)
	VolumeChanged(level float64, muted bool)
	PlaylistChanged(visible []int, current int)
	ModesChanged(shuffle, repeat bool)
}

// Request запрос воспроизведения. Результат из Done передается в Settle
// вместе с поколением запроса.
type Request struct {
	Generation uint64
	Done       <-chan error
}

// Options параметры контроллера
type Options struct {
	RestartThreshold time.Duration
	VolumeFloor      float64
	Rand             *rand.Rand
	Logger           *zap.Logger
	Blobs            *source.Blobs
}

// Controller управляет плейлистом и аудио-элементом
type Controller struct {
	el       media.Element
	session  Attacher
	display  Display
	playlist *playlist.Playlist
	rng      *rand.Rand
	log      *zap.Logger
	blobs    *source.Blobs

	restartThreshold time.Duration
	volumeFloor      float64

	loaded     bool
	playing    bool
	generation uint64
	query      string
	visible    []int
}

// New создает контроллер. session и display могут быть nil.
func New(pl *playlist.Playlist, el media.Element, session Attacher, display Display, opts Options) *Controller {
	if opts.RestartThreshold <= 0 {
		opts.RestartThreshold = DefaultRestartThreshold
	}
	if opts.VolumeFloor <= 0 || opts.VolumeFloor > 1 {
		opts.VolumeFloor = DefaultVolumeFloor
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Blobs == nil {
		opts.Blobs = source.NewBlobs()
	}
	if session == nil {
		session = nopAttacher{}
	}
	if display == nil {
		display = nopDisplay{}
	}

	return &Controller{
		el:               el,
		session:          session,
		display:          display,
		playlist:         pl,
		rng:              opts.Rand,
		log:              opts.Logger,
		blobs:            opts.Blobs,
		restartThreshold: opts.RestartThreshold,
		volumeFloor:      opts.VolumeFloor,
		visible:          pl.Filter(""),
	}
}

// Playlist возвращает плейлист
func (c *Controller) Playlist() *playlist.Playlist { return c.playlist }

// Playing возвращает true, если последний запрос воспроизведения завершился успешно
func (c *Controller) Playing() bool { return c.playing }

// State возвращает состояние машины
func (c *Controller) State() State {
	switch {
	case !c.loaded:
		return Stopped
	case c.playing:
		return Playing
	default:
		return Paused
	}
}

// Generation возвращает поколение последнего запроса
func (c *Controller) Generation() uint64 { return c.generation }

// Query возвращает текущий поисковый запрос
func (c *Controller) Query() string { return c.query }

// Visible возвращает индексы отображаемых треков
func (c *Controller) Visible() []int {
	return append([]int(nil), c.visible...)
}

// LoadTrack загружает трек по индексу с заворачиванием, не запуская воспроизведение
func (c *Controller) LoadTrack(index int) int {
	if c.playlist.Len() == 0 {
		return 0
	}

	i := c.playlist.SetCurrent(index)
	track := c.playlist.Track(i)

	c.generation++
	c.el.SetSource(track.Source)
	c.loaded = true
	c.setPlaying(false)
	c.session.Attach(track.Source)

	c.log.Debug("трек загружен",
		zap.Int("index", i),
		zap.String("title", track.Title),
		zap.String("source", track.Source),
	)

	c.display.TrackLoaded(i, track)
	c.display.ProgressChanged(0, 0)
	c.display.PlaylistChanged(c.Visible(), i)
	return i
}

// Play запрашивает воспроизведение. Если трек не загружен, сначала загружается текущий.
func (c *Controller) Play() *Request {
	if !c.loaded {
		c.LoadTrack(c.playlist.Current())
	}
	c.generation++
	return &Request{Generation: c.generation, Done: c.el.Play()}
}

// Settle применяет результат запроса воспроизведения.
// Результаты устаревших запросов игнорируются. Возвращает true, если результат применен.
func (c *Controller) Settle(generation uint64, err error) bool {
	if generation != c.generation {
		c.log.Debug("устаревший результат воспроизведения",
			zap.Uint64("generation", generation),
			zap.Uint64("current", c.generation),
			zap.Error(err),
		)
		return false
	}
	if err != nil {
		c.log.Warn("воспроизведение отклонено",
			zap.String("source", c.el.Source()),
			zap.Error(err),
		)
		c.setPlaying(false)
		return true
	}
	c.setPlaying(true)
	return true
}

// Pause ставит воспроизведение на паузу
func (c *Controller) Pause() {
	c.generation++
	c.el.Pause()
	c.setPlaying(false)
}

// TogglePlay переключает воспроизведение и паузу.
// Возвращает nil, если была поставлена пауза.
func (c *Controller) TogglePlay() *Request {
	if c.playing {
		c.Pause()
		return nil
	}
	return c.Play()
}

// PlayIndex загружает и воспроизводит трек по индексу
func (c *Controller) PlayIndex(index int) *Request {
	c.LoadTrack(index)
	return c.Play()
}

// Next переходит к следующему треку (или случайному в режиме shuffle)
func (c *Controller) Next() *Request {
	return c.PlayIndex(c.playlist.NextIndex(c.rng))
}

// Prev перематывает в начало, если трек играет дольше порога,
// иначе переходит к предыдущему треку. Возвращает nil при перемотке.
func (c *Controller) Prev() *Request {
	if c.loaded && c.el.Position() > c.restartThreshold {
		c.el.SetPosition(0)
		return nil
	}
	return c.PlayIndex(c.playlist.PrevIndex())
}

// SeekRelative сдвигает позицию на delta в пределах [0, duration]
func (c *Controller) SeekRelative(delta time.Duration) {
	duration := max(c.el.Duration(), 0)
	c.el.SetPosition(utils.Clamp(c.el.Position()+delta, 0, duration))
}

// SeekToFraction устанавливает позицию как долю длительности.
// Пока длительность неизвестна, ничего не делает.
func (c *Controller) SeekToFraction(fraction float64) {
	duration := c.el.Duration()
	if duration <= 0 || math.IsNaN(fraction) {
		return
	}
	fraction = utils.Clamp(fraction, 0, 1)
	c.el.SetPosition(time.Duration(fraction * float64(duration)))
}

// SetVolume устанавливает громкость в пределах [0, 1]
func (c *Controller) SetVolume(level float64) {
	if math.IsNaN(level) {
		return
	}
	c.el.SetVolume(utils.Clamp(level, 0, 1))
	c.display.VolumeChanged(c.el.Volume(), c.el.Muted())
}

// AdjustVolume меняет громкость на delta
func (c *Controller) AdjustVolume(delta float64) {
	c.SetVolume(c.el.Volume() + delta)
}

// ToggleMute выключает звук или включает его обратно.
// При нулевой громкости восстанавливается слышимый уровень по умолчанию.
func (c *Controller) ToggleMute() {
	if c.el.Muted() || c.el.Volume() == 0 {
		c.el.SetMuted(false)
		if c.el.Volume() == 0 {
			c.el.SetVolume(c.volumeFloor)
		}
	} else {
		c.el.SetMuted(true)
	}
	c.display.VolumeChanged(c.el.Volume(), c.el.Muted())
}

// ToggleShuffle переключает режим shuffle
func (c *Controller) ToggleShuffle() bool {
	on := c.playlist.ToggleShuffle()
	c.display.ModesChanged(on, c.playlist.Repeating())
	return on
}

// ToggleRepeat переключает повтор текущего трека
func (c *Controller) ToggleRepeat() bool {
	on := c.playlist.ToggleRepeat()
	c.display.ModesChanged(c.playlist.Shuffled(), on)
	return on
}

// OnTrackEnded повторяет трек в режиме repeat, иначе переходит к следующему
func (c *Controller) OnTrackEnded() *Request {
	if c.playlist.Repeating() {
		c.el.SetPosition(0)
		return c.Play()
	}
	return c.Next()
}

// Search фильтрует отображаемый плейлист. Сам плейлист и текущий трек не меняются.
func (c *Controller) Search(query string) []int {
	c.query = query
	c.visible = c.playlist.Filter(query)
	c.display.PlaylistChanged(c.Visible(), c.playlist.Current())
	return c.Visible()
}

// IngestFiles добавляет аудио файлы в конец плейлиста. Если трек еще
// не загружен, загружается последний добавленный, без воспроизведения.
// Возвращает количество добавленных треков.
func (c *Controller) IngestFiles(files []ingest.File) int {
	tracks := ingest.Tracks(files, c.blobs)
	if len(tracks) == 0 {
		c.log.Debug("аудио файлы не найдены", zap.Int("files", len(files)))
		return 0
	}

	c.playlist.Append(tracks...)
	c.visible = c.playlist.Filter(c.query)
	c.log.Info("файлы добавлены", zap.Int("tracks", len(tracks)), zap.Int("skipped", len(files)-len(tracks)))

	if !c.loaded {
		c.LoadTrack(c.playlist.Len() - 1)
		return len(tracks)
	}
	c.display.PlaylistChanged(c.Visible(), c.playlist.Current())
	return len(tracks)
}

// HandleEvent обрабатывает событие аудио-элемента. События чужого
// источника или прежней загрузки того же источника игнорируются.
// Может вернуть новый запрос воспроизведения.
func (c *Controller) HandleEvent(ev media.Event) *Request {
	if !c.loaded || ev.Source != c.el.Source() || ev.Load != c.el.Load() {
		return nil
	}

	switch ev.Kind {
	case media.PositionAdvanced:
		c.display.ProgressChanged(ev.Position, ev.Duration)
	case media.MetadataReady:
		c.display.DurationChanged(ev.Duration)
	case media.Ended:
		c.setPlaying(false)
		c.display.ProgressChanged(ev.Position, ev.Duration)
		return c.OnTrackEnded()
	}
	return nil
}

func (c *Controller) setPlaying(playing bool) {
	if c.playing == playing {
		return
	}
	c.playing = playing
	c.display.PlayStateChanged(playing)
}

type nopAttacher struct{}

func (nopAttacher) Attach(string) {}

type nopDisplay struct{}

func (nopDisplay) TrackLoaded(int, data.Track) {}
func (nopDisplay) PlayStateChanged(bool) {}
func (nopDisplay) ProgressChanged(time.Duration, time.Duration) {}
func (nopDisplay) DurationChanged(time.Duration) {}
func (nopDisplay) VolumeChanged(float64, bool) {}
func (nopDisplay) PlaylistChanged([]int, int) {}
func (nopDisplay) ModesChanged(bool, bool) {}
