package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hazadus/go-jukebox/internal/config"
	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/logger"
)

const (
	defaultConfigPath = "~/.jukebox/config.yaml"
)

// Application содержит конфигурацию, библиотеку и логгер приложения
type Application struct {
	Config *config.Config
	Data   *data.AppData
	Logger *zap.Logger

	configPath string
}

func main() {
	app := &Application{}

	if err := app.createRootCommand().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// load загружает конфигурацию, логгер и библиотеку треков
func (app *Application) load() error {
	var err error

	// Загружаем конфигурацию
	if app.Config, err = config.LoadConfig(app.configPath); err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Терминал занят интерфейсом, поэтому лог пишется только в файл
	if app.Logger, err = logger.New(app.Config.LogFile, app.Config.LogLevel); err != nil {
		return err
	}

	// Загружаем библиотеку
	app.Data = data.NewAppData()
	if err = app.Data.LoadData(app.Config.LibraryFile); err != nil {
		return fmt.Errorf("ошибка загрузки библиотеки: %w", err)
	}

	app.Logger.Info("приложение загружено",
		zap.String("config", app.configPath),
		zap.String("library", app.Config.LibraryFile),
		zap.Int("tracks", len(app.Data.Tracks)))
	return nil
}
