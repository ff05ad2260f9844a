// Package data содержит модель трека и загрузку библиотеки треков
package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Track описывает один воспроизводимый трек.
// Source - локатор аудио: путь к файлу, http(s)://, s3://bucket/key или blob:<id>.
type Track struct {
	Title  string `yaml:"title"`
	Artist string `yaml:"artist"`
	Album  string `yaml:"album,omitempty"`
	Source string `yaml:"src"`
	Cover  string `yaml:"cover,omitempty"`
}

// DisplayTitle возвращает название для отображения
func (t Track) DisplayTitle() string {
	if t.Title == "" {
		return "Unknown"
	}
	return t.Title
}

// AppData содержит треки библиотеки, из которых собирается плейлист при запуске
type AppData struct {
	Tracks []Track `yaml:"tracks"`
}

// SeedTracks возвращает встроенный список треков, используемый при пустой библиотеке
func SeedTracks() []Track {
	return []Track{
		{Title: "Song One", Artist: "Artist A", Source: "tracks/song1.mp3", Cover: "covers/cover1.jpg"},
		{Title: "Song Two", Artist: "Artist B", Source: "tracks/song2.mp3", Cover: "covers/cover2.jpg"},
		{Title: "Song Three", Artist: "Artist C", Source: "tracks/song3.mp3", Cover: "covers/cover3.jpg"},
	}
}

// NewAppData создает новую структуру AppData со встроенными треками
func NewAppData() *AppData {
	return &AppData{
		Tracks: SeedTracks(),
	}
}

// LoadData загружает библиотеку из файла.
// Отсутствующий или пустой файл дает встроенный список треков.
func (d *AppData) LoadData(filePath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		// Если файл не найден, используем встроенные треки
		if os.IsNotExist(err) {
			*d = *NewAppData()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла библиотеки: %w", err)
	}

	loaded := &AppData{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("ошибка разбора библиотеки: %w", err)
	}

	// Треки без источника воспроизвести нельзя
	tracks := make([]Track, 0, len(loaded.Tracks))
	for _, t := range loaded.Tracks {
		if t.Source == "" {
			continue
		}
		tracks = append(tracks, t)
	}

	if len(tracks) == 0 {
		*d = *NewAppData()
		return nil
	}
	d.Tracks = tracks
	return nil
}
