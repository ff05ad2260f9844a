// Package metadata предоставляет функционал для определения типа и метаданных аудио файлов
package metadata

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Info хранит сведения о файле, выбранном пользователем
type Info struct {
	MIMEType string
	Title    string
	Artist   string
	Album    string
}

// IsAudio сообщает, является ли файл аудио
func (i Info) IsAudio() bool {
	return strings.HasPrefix(i.MIMEType, "audio/")
}

// mimeByFileType сопоставляет тип контейнера, распознанный по сигнатуре
var mimeByFileType = map[tag.FileType]string{
	tag.MP3:  "audio/mpeg",
	tag.FLAC: "audio/flac",
	tag.OGG:  "audio/ogg",
	tag.M4A:  "audio/mp4",
	tag.M4B:  "audio/mp4",
	tag.M4P:  "audio/mp4",
	tag.ALAC: "audio/mp4",
	tag.DSF:  "audio/dsf",
}

// mimeByExt используется, когда сигнатура не распознана.
// Встроенная таблица mime не содержит аудио типов на большинстве систем.
var mimeByExt = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".wave": "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".weba": "audio/webm",
	".txt":  "text/plain",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// Extractor определяет тип и теги аудио файлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFromReader определяет тип по сигнатуре и читает теги.
// name используется для запасного определения по расширению.
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, name string) Info {
	info := Info{MIMEType: e.mimeFromSignature(reader)}
	if info.MIMEType == "" {
		info.MIMEType = MIMEByExtension(name)
	}

	// Сбрасываем reader в начало
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return info
	}

	metadata, err := tag.ReadFrom(reader)
	if err != nil {
		return info
	}

	info.Title = metadata.Title()
	info.Artist = metadata.Artist()
	info.Album = metadata.Album()
	return info
}

// ExtractFromFile определяет тип и теги файла
func (e *Extractor) ExtractFromFile(filePath string) Info {
	file, err := os.Open(filePath)
	if err != nil {
		return Info{MIMEType: MIMEByExtension(filePath)}
	}
	defer file.Close()

	return e.ExtractFromReader(file, filePath)
}

func (e *Extractor) mimeFromSignature(reader io.ReadSeeker) string {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	_, fileType, err := tag.Identify(reader)
	if err != nil {
		return ""
	}
	return mimeByFileType[fileType]
}

// DetectMIME возвращает MIME тип файла или пустую строку, если тип неизвестен
func DetectMIME(filePath string) string {
	return NewExtractor().ExtractFromFile(filePath).MIMEType
}

// MIMEByExtension определяет MIME тип по расширению имени
func MIMEByExtension(name string) string {
	return mimeByExt[strings.ToLower(filepath.Ext(name))]
}
