// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultLibraryFile      = "~/.jukebox/library.yaml"
	DefaultSampleRate       = 44100
	DefaultInitialVolume    = 1.0
	DefaultVolumeFloor      = 0.6
	DefaultSeekStep         = 10.0
	DefaultKeySeekStep      = 5.0
	DefaultVolumeStep       = 0.05
	DefaultRestartThreshold = 3.0
	DefaultFFTSize          = 256
	DefaultFrameRate        = 30
	DefaultTheme            = "dark"
	DefaultLogLevel         = "info"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	LibraryFile string `yaml:"library_file"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`

	AwsAccessKey string `yaml:"aws_access_key"`
	AwsSecretKey string `yaml:"aws_secret_key"`
	AwsRegion    string `yaml:"aws_region"`
	AwsEndpoint  string `yaml:"aws_endpoint"`

	SampleRate       int     `yaml:"sample_rate"`
	InitialVolume    float64 `yaml:"initial_volume"`
	DefaultVolume    float64 `yaml:"default_volume"`    // уровень, восстанавливаемый при снятии mute с нулевой громкости
	SeekStep         float64 `yaml:"seek_step"`         // секунды, кнопки перемотки
	KeySeekStep      float64 `yaml:"key_seek_step"`     // секунды, стрелки
	VolumeStep       float64 `yaml:"volume_step"`       // шаг громкости для стрелок
	RestartThreshold float64 `yaml:"restart_threshold"` // секунды, после которых prev перематывает в начало
	FFTSize          int     `yaml:"fft_size"`
	FrameRate        int     `yaml:"frame_rate"`
	Theme            string  `yaml:"theme"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		LibraryFile:      DefaultLibraryFile,
		LogLevel:         DefaultLogLevel,
		SampleRate:       DefaultSampleRate,
		InitialVolume:    DefaultInitialVolume,
		DefaultVolume:    DefaultVolumeFloor,
		SeekStep:         DefaultSeekStep,
		KeySeekStep:      DefaultKeySeekStep,
		VolumeStep:       DefaultVolumeStep,
		RestartThreshold: DefaultRestartThreshold,
		FFTSize:          DefaultFFTSize,
		FrameRate:        DefaultFrameRate,
		Theme:            DefaultTheme,
	}
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файл не существует, возвращается конфигурация по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.expandPaths(home)
			return config, nil
		}
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора yaml конфигурации: %w", err)
	}

	config.applyDefaults()
	config.expandPaths(home)

	return config, nil
}

// applyDefaults заменяет пустые и некорректные значения значениями по умолчанию
func (c *Config) applyDefaults() {
	d := Default()
	if c.LibraryFile == "" {
		c.LibraryFile = d.LibraryFile
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.InitialVolume < 0 || c.InitialVolume > 1 {
		c.InitialVolume = d.InitialVolume
	}
	if c.DefaultVolume <= 0 || c.DefaultVolume > 1 {
		c.DefaultVolume = d.DefaultVolume
	}
	if c.SeekStep <= 0 {
		c.SeekStep = d.SeekStep
	}
	if c.KeySeekStep <= 0 {
		c.KeySeekStep = d.KeySeekStep
	}
	if c.VolumeStep <= 0 {
		c.VolumeStep = d.VolumeStep
	}
	if c.RestartThreshold <= 0 {
		c.RestartThreshold = d.RestartThreshold
	}
	// fft_size намеренно не исправляется: некорректный размер отключает визуализатор
	if c.FFTSize == 0 {
		c.FFTSize = d.FFTSize
	}
	if c.FrameRate <= 0 {
		c.FrameRate = d.FrameRate
	}
	if c.Theme != "light" {
		c.Theme = d.Theme
	}
}

// expandPaths раскрывает тильду в путях
func (c *Config) expandPaths(home string) {
	c.LibraryFile = strings.Replace(c.LibraryFile, "~", home, 1)
	c.LogFile = strings.Replace(c.LogFile, "~", home, 1)
}

// Seconds переводит значение в секундах в time.Duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// FrameInterval возвращает интервал между кадрами визуализатора
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}
