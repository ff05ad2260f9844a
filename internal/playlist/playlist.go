// Package playlist содержит упорядоченный список треков, курсор текущего трека
// и флаги режимов shuffle и repeat.
package playlist

import (
	"math/rand"
	"strings"

	"github.com/hazadus/go-jukebox/internal/data"
)

// Playlist хранит треки и индекс текущего трека.
// При непустом списке 0 <= current < len(tracks).
type Playlist struct {
	tracks  []data.Track
	current int
	shuffle bool
	repeat  bool
}

// New создает плейлист из переданных треков
func New(tracks []data.Track) *Playlist {
	return &Playlist{
		tracks: append([]data.Track(nil), tracks...),
	}
}

// Len возвращает количество треков
func (p *Playlist) Len() int { return len(p.tracks) }

// Tracks возвращает копию списка треков
func (p *Playlist) Tracks() []data.Track {
	return append([]data.Track(nil), p.tracks...)
}

// Track возвращает трек по индексу с учетом заворачивания
func (p *Playlist) Track(i int) data.Track {
	if len(p.tracks) == 0 {
		return data.Track{}
	}
	return p.tracks[p.Wrap(i)]
}

// Current возвращает индекс текущего трека
func (p *Playlist) Current() int { return p.current }

// Wrap приводит индекс к диапазону [0, Len()) по модулю:
// отрицательные значения отсчитываются с конца.
func (p *Playlist) Wrap(i int) int {
	n := len(p.tracks)
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// SetCurrent устанавливает текущий трек и возвращает итоговый индекс
func (p *Playlist) SetCurrent(i int) int {
	p.current = p.Wrap(i)
	return p.current
}

// NextIndex возвращает индекс следующего трека, не меняя текущий.
// В режиме shuffle индекс выбирается равновероятно, включая текущий.
func (p *Playlist) NextIndex(rng *rand.Rand) int {
	if len(p.tracks) == 0 {
		return 0
	}
	if p.shuffle {
		return rng.Intn(len(p.tracks))
	}
	return p.Wrap(p.current + 1)
}

// PrevIndex возвращает индекс предыдущего трека
func (p *Playlist) PrevIndex() int {
	return p.Wrap(p.current - 1)
}

// Append добавляет треки в конец списка
func (p *Playlist) Append(tracks ...data.Track) {
	p.tracks = append(p.tracks, tracks...)
}

// ToggleShuffle переключает режим shuffle
func (p *Playlist) ToggleShuffle() bool {
	p.shuffle = !p.shuffle
	return p.shuffle
}

// ToggleRepeat переключает повтор текущего трека
func (p *Playlist) ToggleRepeat() bool {
	p.repeat = !p.repeat
	return p.repeat
}

// Shuffled сообщает, включен ли shuffle
func (p *Playlist) Shuffled() bool { return p.shuffle }

// Repeating сообщает, включен ли повтор
func (p *Playlist) Repeating() bool { return p.repeat }

// Filter возвращает индексы треков, у которых строка "title artist"
// содержит запрос без учета регистра. Пустой запрос возвращает все треки.
func (p *Playlist) Filter(query string) []int {
	q := strings.ToLower(query)
	visible := make([]int, 0, len(p.tracks))
	for i, t := range p.tracks {
		if q != "" && !strings.Contains(strings.ToLower(t.Title+" "+t.Artist), q) {
			continue
		}
		visible = append(visible, i)
	}
	return visible
}
