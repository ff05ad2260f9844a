package main

import (
	"math/rand"
	"time"

	"github.com/hazadus/go-jukebox/internal/audio"
	"github.com/hazadus/go-jukebox/internal/player"
	"github.com/hazadus/go-jukebox/internal/s3"
	"github.com/hazadus/go-jukebox/internal/source"
	"github.com/hazadus/go-jukebox/internal/tui"
	tuiApp "github.com/hazadus/go-jukebox/internal/tui/app"
)

// launchTUI собирает плеер, анализатор и запускает интерфейс
func (app *Application) launchTUI(files []string) error {
	objects, err := app.objectStore()
	if err != nil {
		return err
	}

	blobs := source.NewBlobs()
	opener := source.NewOpener(blobs, objects)

	el := player.NewPlayer(opener, player.Options{
		SampleRate: app.Config.SampleRate,
		Logger:     app.Logger.Named("player"),
	})
	session := audio.NewSession(el, app.Config.FFTSize, app.Logger.Named("audio"))

	// Создаем экземпляр TUI приложения
	ui := tui.NewApp(tuiApp.Deps{
		Config:  app.Config,
		Tracks:  app.Data.Tracks,
		Element: el,
		Session: session,
		Blobs:   blobs,
		Logger:  app.Logger,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Files:   files,
	})

	// Запускаем TUI
	return ui.Run()
}

// objectStore создает клиент S3, если в конфигурации указаны настройки AWS
func (app *Application) objectStore() (source.ObjectStore, error) {
	cfg := app.Config
	if cfg.AwsRegion == "" && cfg.AwsEndpoint == "" && cfg.AwsAccessKey == "" {
		return nil, nil
	}

	objects, err := s3.NewObjects(&s3.Config{
		Region:    cfg.AwsRegion,
		AccessKey: cfg.AwsAccessKey,
		SecretKey: cfg.AwsSecretKey,
		Endpoint:  cfg.AwsEndpoint,
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}
