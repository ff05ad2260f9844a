package streaming

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewReader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Range") != "bytes=0-" {
			t.Errorf("Ожидался заголовок Range bytes=0-, получено %q", r.Header.Get("Range"))
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3 audio payload"))
	}))
	defer server.Close()

	reader, err := NewReader(context.Background(), server.URL+"/song.mp3", DefaultBufferSize)
	if err != nil {
		t.Fatalf("Ошибка создания ридера: %v", err)
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Ошибка чтения: %v", err)
	}
	if string(body) != "ID3 audio payload" {
		t.Errorf("Неожиданное содержимое: %q", body)
	}
	if reader.ContentType() != "audio/mpeg" {
		t.Errorf("Ожидался Content-Type audio/mpeg, получено %s", reader.ContentType())
	}
}

func TestNewReaderHTTPError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewReader(context.Background(), server.URL, DefaultBufferSize)
	if err == nil {
		t.Fatal("Ожидалась ошибка HTTP")
	}
	if !strings.Contains(err.Error(), "ошибка HTTP") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestNewReaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader(ctx, "http://127.0.0.1:1/song.mp3", DefaultBufferSize)
	if err == nil {
		t.Fatal("Ожидалась ошибка для отмененного контекста")
	}
}
