package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hazadus/go-jukebox/internal/source"
)

func TestTracksFiltersNonAudio(t *testing.T) {
	files := []File{
		{Name: "a.mp3", MIMEType: "audio/mpeg", Path: "/music/a.mp3"},
		{Name: "notes.txt", MIMEType: "text/plain", Path: "/music/notes.txt"},
		{Name: "b.wav", MIMEType: "audio/wav", Path: "/music/b.wav"},
	}
	blobs := source.NewBlobs()

	tracks := Tracks(files, blobs)

	if len(tracks) != 2 {
		t.Fatalf("Ожидалось 2 трека, получено %d", len(tracks))
	}
	if tracks[0].Title != "a" || tracks[1].Title != "b" {
		t.Errorf("Неожиданные названия: %s, %s", tracks[0].Title, tracks[1].Title)
	}
	for _, track := range tracks {
		if track.Artist != LocalArtist {
			t.Errorf("Ожидался исполнитель %s, получено %s", LocalArtist, track.Artist)
		}
		if track.Cover != "" {
			t.Errorf("Ожидалась пустая обложка, получено %s", track.Cover)
		}
		if source.KindOf(track.Source) != source.KindBlob {
			t.Errorf("Ожидался blob локатор, получено %s", track.Source)
		}
	}
	if blobs.Len() != 2 {
		t.Errorf("Ожидалось 2 blob'а, получено %d", blobs.Len())
	}
}

func TestTracksOnlyNonAudio(t *testing.T) {
	files := []File{{Name: "notes.txt", MIMEType: "text/plain"}}
	if tracks := Tracks(files, source.NewBlobs()); len(tracks) != 0 {
		t.Errorf("Ожидался пустой результат, получено %d", len(tracks))
	}
}

func TestTitleFromName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"song.mp3", "song"},
		{"my.song.final.wav", "my.song.final"},
		{"noext", "noext"},
		{"Artist - Title.flac", "Artist - Title"},
	}
	for _, test := range tests {
		if got := TitleFromName(test.name); got != test.expected {
			t.Errorf("TitleFromName(%s) = %s; expected %s", test.name, got, test.expected)
		}
	}
}

func TestFromPaths(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track one.wav")
	text := filepath.Join(dir, "readme.txt")
	for _, path := range []string{audio, text} {
		if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
			t.Fatalf("Ошибка создания тестового файла: %v", err)
		}
	}

	files := FromPaths([]string{audio, "", text}, nil)

	if len(files) != 2 {
		t.Fatalf("Ожидалось 2 файла, получено %d", len(files))
	}
	if files[0].Name != "track one.wav" || files[0].MIMEType != "audio/wav" {
		t.Errorf("Неожиданный файл: %+v", files[0])
	}
	if files[1].IsAudio() {
		t.Errorf("Текстовый файл не должен считаться аудио: %+v", files[1])
	}
}

func TestParseDropped(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"пусто", "   ", nil},
		{"один путь", "/music/a.mp3", []string{"/music/a.mp3"}},
		{"экранированный пробел", `/music/my\ song.mp3 /music/b.wav`, []string{"/music/my song.mp3", "/music/b.wav"}},
		{"кавычки", `'/music/my song.mp3'`, []string{"/music/my song.mp3"}},
		{"file URI", "file:///music/a.mp3", []string{"/music/a.mp3"}},
		{"file URI с пробелом", "file:///home/u/My%20Song.mp3", []string{"/home/u/My Song.mp3"}},
		{"file:// внутри имени", "'/tmp/notes file://x.mp3'", []string{"/tmp/notes file://x.mp3"}},
		{"путь и URI", "/music/a.mp3 file:///music/b%23.wav", []string{"/music/a.mp3", "/music/b#.wav"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			paths, err := ParseDropped(test.input)
			if err != nil {
				t.Fatalf("Неожиданная ошибка: %v", err)
			}
			if !reflect.DeepEqual(paths, test.expected) {
				t.Errorf("Ожидалось %v, получено %v", test.expected, paths)
			}
		})
	}
}

func TestFromPathsSkipsMissingAndDirectories(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(audio, []byte("data"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}
	albumDir := filepath.Join(dir, "album.mp3")
	if err := os.Mkdir(albumDir, 0755); err != nil {
		t.Fatalf("Ошибка создания директории: %v", err)
	}

	core, logs := observer.New(zap.WarnLevel)
	files := FromPaths([]string{filepath.Join(dir, "typo.mp3"), albumDir, audio}, zap.New(core))

	if len(files) != 1 || files[0].Path != audio {
		t.Fatalf("Ожидался только существующий файл, получено %+v", files)
	}
	if logs.Len() != 2 {
		t.Errorf("Ожидалось 2 предупреждения о пропуске, получено %d", logs.Len())
	}
	if tracks := Tracks(FromPaths([]string{"/nonexistent/typo.mp3"}, nil), source.NewBlobs()); len(tracks) != 0 {
		t.Errorf("Несуществующий путь не должен становиться треком, получено %d", len(tracks))
	}
}

func TestParseDroppedBadURI(t *testing.T) {
	if _, err := ParseDropped("file:///music/%zz.mp3"); err == nil {
		t.Error("Ожидалась ошибка для некорректного URI")
	}
}

func TestParseDroppedUnterminatedQuote(t *testing.T) {
	if _, err := ParseDropped(`'/music/a.mp3`); err == nil {
		t.Error("Ожидалась ошибка для незакрытой кавычки")
	}
}
