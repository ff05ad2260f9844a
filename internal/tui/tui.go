// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-jukebox/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	deps app.Deps
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(deps app.Deps) *App {
	return &App{deps: deps}
}

// Model создает главную модель приложения
func (tuiApp *App) Model() *app.MainModel {
	return app.NewMainModel(tuiApp.deps)
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	model := tuiApp.Model()

	// Мышь нужна для перемотки кликом по прогресс-бару
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err := p.Run()

	// Закрываем плеер после завершения программы
	if closeErr := model.Close(); err == nil {
		err = closeErr
	}

	return err
}
