// Package ingest превращает выбранные пользователем файлы в треки плейлиста
package ingest

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/metadata"
	"github.com/hazadus/go-jukebox/internal/source"
)

// LocalArtist исполнитель для треков, добавленных пользователем
const LocalArtist = "Local File"

// File выбранный пользователем файл
type File struct {
	Name     string
	MIMEType string
	Path     string
	Album    string
}

// IsAudio сообщает, является ли файл аудио
func (f File) IsAudio() bool {
	return strings.HasPrefix(f.MIMEType, "audio/")
}

// FromPaths собирает описания файлов, определяя их MIME тип.
// Отсутствующие пути и директории пропускаются.
func FromPaths(paths []string, log *zap.Logger) []File {
	if log == nil {
		log = zap.NewNop()
	}
	extractor := metadata.NewExtractor()
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		stat, err := os.Stat(path)
		if err != nil {
			log.Warn("файл пропущен", zap.String("path", path), zap.Error(err))
			continue
		}
		if stat.IsDir() {
			log.Warn("директория пропущена", zap.String("path", path))
			continue
		}
		info := extractor.ExtractFromFile(path)
		files = append(files, File{
			Name:     filepath.Base(path),
			MIMEType: info.MIMEType,
			Path:     path,
			Album:    info.Album,
		})
	}
	return files
}

// Tracks регистрирует аудио файлы в хранилище сессии и возвращает треки
// в исходном порядке. Файлы других типов пропускаются.
func Tracks(files []File, blobs *source.Blobs) []data.Track {
	var tracks []data.Track
	for _, file := range files {
		if !file.IsAudio() {
			continue
		}
		tracks = append(tracks, data.Track{
			Title:  TitleFromName(file.Name),
			Artist: LocalArtist,
			Album:  file.Album,
			Source: blobs.RegisterFile(file.Name, file.Path),
			Cover:  "",
		})
	}
	return tracks
}

// TitleFromName отбрасывает расширение файла
func TitleFromName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ParseDropped разбирает пути, вставленные в терминал при перетаскивании файлов
func ParseDropped(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	paths, err := shellquote.Split(text)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора путей: %w", err)
	}

	// Некоторые терминалы передают пути как file:// URI
	for i, path := range paths {
		if !strings.HasPrefix(path, "file://") {
			continue
		}
		u, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора URI %s: %w", path, err)
		}
		paths[i] = u.Path
	}
	return paths, nil
}
