package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the library",
		Long:  `Display the tracks the playlist starts with.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTracks()
		},
	}
}

func (app *Application) listTracks() {
	if len(app.Data.Tracks) == 0 {
		fmt.Println("📚 Библиотека пуста.")
		return
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(app.Data.Tracks))

	// Выводим заголовок таблицы
	fmt.Printf("%-4s %-30s %-30s %-20s %s\n",
		"№", "Исполнитель", "Название", "Альбом", "Источник")
	fmt.Println(strings.Repeat("-", 120))

	// Выводим каждый трек
	for i, track := range app.Data.Tracks {
		fmt.Printf("%-4d %-30s %-30s %-20s %s\n",
			i+1,
			utils.TruncateString(track.Artist, 28),
			utils.TruncateString(track.DisplayTitle(), 28),
			utils.TruncateString(track.Album, 18),
			track.Source)
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'jukebox [файлы...]' для запуска плеера")
}
