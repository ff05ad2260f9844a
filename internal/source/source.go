// Package source разрешает локаторы треков (файлы, http(s), s3, blob) в поток байтов с перемоткой
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hazadus/go-jukebox/internal/s3"
	"github.com/hazadus/go-jukebox/internal/streaming"
)

// Kind тип локатора
type Kind int

const (
	KindFile Kind = iota
	KindHTTP
	KindS3
	KindBlob
)

// KindOf определяет тип локатора по префиксу
func KindOf(locator string) Kind {
	switch {
	case strings.HasPrefix(locator, BlobScheme):
		return KindBlob
	case strings.HasPrefix(locator, s3.Scheme):
		return KindS3
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return KindHTTP
	default:
		return KindFile
	}
}

// ErrNoObjectStore возвращается для s3:// локаторов, если S3 не настроен
var ErrNoObjectStore = errors.New("хранилище S3 не настроено")

// ObjectStore открывает объекты удаленного хранилища
type ObjectStore interface {
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

// Opener открывает источники треков
type Opener struct {
	blobs      *Blobs
	objects    ObjectStore
	bufferSize int
}

// NewOpener создает Opener. objects может быть nil.
func NewOpener(blobs *Blobs, objects ObjectStore) *Opener {
	if blobs == nil {
		blobs = NewBlobs()
	}
	return &Opener{
		blobs:      blobs,
		objects:    objects,
		bufferSize: streaming.DefaultBufferSize,
	}
}

// Blobs возвращает хранилище blob'ов сессии
func (o *Opener) Blobs() *Blobs { return o.blobs }

// Open открывает источник. Удаленные источники читаются в память целиком,
// чтобы по ним можно было перематывать.
func (o *Opener) Open(ctx context.Context, locator string) (io.ReadSeekCloser, error) {
	if locator == "" {
		return nil, errors.New("пустой локатор")
	}

	switch KindOf(locator) {
	case KindBlob:
		return o.blobs.Open(locator)

	case KindHTTP:
		reader, err := streaming.NewReader(ctx, locator, o.bufferSize)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания потокового ридера: %w", err)
		}
		// Сервер вернул страницу вместо аудио
		if contentType := reader.ContentType(); strings.HasPrefix(contentType, "text/") {
			reader.Close()
			return nil, fmt.Errorf("неожиданный Content-Type: %s", contentType)
		}
		return buffer(reader)

	case KindS3:
		if o.objects == nil {
			return nil, ErrNoObjectStore
		}
		body, err := o.objects.Open(ctx, locator)
		if err != nil {
			return nil, err
		}
		return buffer(body)

	default:
		file, err := os.Open(locator)
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия файла: %w", err)
		}
		return file, nil
	}
}

// memoryReader поток в памяти с пустым Close
type memoryReader struct {
	*bytes.Reader
}

func (memoryReader) Close() error { return nil }

// buffer вычитывает поток в память и закрывает его
func buffer(rc io.ReadCloser) (io.ReadSeekCloser, error) {
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения потока: %w", err)
	}
	return memoryReader{bytes.NewReader(content)}, nil
}
