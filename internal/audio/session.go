// Package audio содержит сессию анализа звука: единственный на процесс граф
// "захват сэмплов -> анализатор", который переключается между треками без пересоздания.
package audio

import (
	"sync"

	"go.uber.org/zap"
)

// Capture отдает последние проигранные сэмплы (моно)
type Capture interface {
	Samples(n int) []float64
}

// Session владеет анализатором. Анализатор создается лениво при первом
// подключении источника и живет до конца сессии. Если создать его не удалось,
// визуализация отключается до конца сессии, воспроизведение это не затрагивает.
type Session struct {
	mu       sync.Mutex
	capture  Capture
	fftSize  int
	log      *zap.Logger
	analyser *Analyser
	attached string
	disabled bool
}

// NewSession создает сессию поверх источника сэмплов
func NewSession(capture Capture, fftSize int, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		capture: capture,
		fftSize: fftSize,
		log:     log,
	}
}

// Attach подключает визуализацию к новому источнику
func (s *Session) Attach(source string) {
	if source == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return
	}

	if s.analyser == nil {
		analyser, err := NewAnalyser(s.fftSize)
		if err != nil {
			s.disabled = true
			s.log.Warn("визуализатор отключен", zap.Error(err))
			return
		}
		s.analyser = analyser
		s.log.Debug("граф анализа создан", zap.Int("fft_size", s.fftSize))
	}

	s.attached = source
	s.log.Debug("визуализатор подключен", zap.String("source", source))
}

// Attached возвращает локатор подключенного источника
func (s *Session) Attached() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// Ready сообщает, построен ли граф анализа
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyser != nil
}

// Disabled сообщает, отключена ли визуализация из-за ошибки построения графа
func (s *Session) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// BinCount возвращает количество полос или 0, если граф не построен
func (s *Session) BinCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyser == nil {
		return 0
	}
	return s.analyser.BinCount()
}

// FrequencyData заполняет dst текущим спектром. Возвращает false, если граф не построен.
func (s *Session) FrequencyData(dst []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyser == nil {
		return false
	}
	var samples []float64
	if s.capture != nil {
		samples = s.capture.Samples(s.analyser.FFTSize())
	}
	s.analyser.ByteFrequencyData(samples, dst)
	return true
}
