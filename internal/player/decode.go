package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedFormat возвращается, если формат файла не поддерживается декодером
var ErrUnsupportedFormat = errors.New("неподдерживаемый формат аудио")

// decode выбирает декодер по сигнатуре файла: RIFF/WAVE или MP3
func decode(rsc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	header := make([]byte, 12)
	n, err := io.ReadFull(rsc, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, beep.Format{}, fmt.Errorf("ошибка чтения заголовка: %w", err)
	}
	if _, err := rsc.Seek(0, io.SeekStart); err != nil {
		return nil, beep.Format{}, fmt.Errorf("ошибка перемотки: %w", err)
	}

	if n == len(header) && bytes.Equal(header[0:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")) {
		streamer, format, err := wav.Decode(rsc)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("ошибка декодирования WAV: %w", err)
		}
		return streamer, format, nil
	}

	streamer, format, err := mp3.Decode(rsc)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return streamer, format, nil
}
