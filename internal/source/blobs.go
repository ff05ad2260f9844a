package source

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// BlobScheme префикс локатора, действующего только в текущей сессии
const BlobScheme = "blob:"

// OpenFunc открывает содержимое blob'а для чтения
type OpenFunc func() (io.ReadSeekCloser, error)

type blob struct {
	name string
	open OpenFunc
}

// Blobs хранит ссылки на пользовательские файлы, добавленные в текущей сессии.
// Ссылки не сохраняются между запусками.
type Blobs struct {
	mu      sync.RWMutex
	entries map[string]blob
}

// NewBlobs создает пустое хранилище
func NewBlobs() *Blobs {
	return &Blobs{entries: make(map[string]blob)}
}

// Register регистрирует содержимое и возвращает его локатор blob:<uuid>
func (b *Blobs) Register(name string, open OpenFunc) string {
	locator := BlobScheme + uuid.NewString()
	b.mu.Lock()
	b.entries[locator] = blob{name: name, open: open}
	b.mu.Unlock()
	return locator
}

// RegisterFile регистрирует локальный файл
func (b *Blobs) RegisterFile(name, path string) string {
	return b.Register(name, func() (io.ReadSeekCloser, error) {
		return os.Open(path)
	})
}

// Name возвращает имя, под которым был зарегистрирован blob
func (b *Blobs) Name(locator string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.entries[locator]
	return entry.name, ok
}

// Len возвращает количество зарегистрированных blob'ов
func (b *Blobs) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Open открывает blob по локатору
func (b *Blobs) Open(locator string) (io.ReadSeekCloser, error) {
	if !strings.HasPrefix(locator, BlobScheme) {
		return nil, fmt.Errorf("не blob локатор: %s", locator)
	}
	b.mu.RLock()
	entry, ok := b.entries[locator]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("blob не найден: %s", locator)
	}
	rc, err := entry.open()
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия %s: %w", entry.name, err)
	}
	return rc, nil
}
