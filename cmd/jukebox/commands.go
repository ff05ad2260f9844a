package main

import (
	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jukebox [files...]",
		Short: "A terminal audio player with a spectrum visualizer",
		Long: `A terminal audio player with playlist, search, shuffle and repeat.
Files passed as arguments are added to the playlist on start.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.load()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return app.launchTUI(args)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", defaultConfigPath, "path to the config file")

	// Добавляем команды, передавая в них экземпляр приложения
	rootCmd.AddCommand(app.createListCommand())

	return rootCmd
}
