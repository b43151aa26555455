package cmd

import (
	"fmt"

	"github.com/Iron-Ham/panelkit/internal/config"
	"github.com/Iron-Ham/panelkit/internal/tui"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the panel TUI",
	Long: `Start the terminal UI with every configured panel mounted.

Panels listed in panels.open_on_start are opened first. Changes to the
config file's tui section are applied while the TUI is running.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.openOnStart(); err != nil {
		rt.logger.Warn("opening panels on start", "error", err.Error())
	}

	app := tui.New(rt.host, tui.Options{
		Styles:   rt.styles,
		ShowHelp: rt.cfg.TUI.ShowHelp,
	})

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			msg, err := reloadUI()
			if err != nil {
				rt.logger.Warn("config reload rejected", "file", e.Name, "error", err.Error())
				return
			}
			rt.logger.Info("config reloaded", "file", e.Name, "op", e.Op.String())
			app.Send(msg)
		})
		viper.WatchConfig()
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// reloadUI re-reads the configuration and derives the settings the running
// TUI can apply. Mounted panels, logging and the tab strip keep their
// start-up settings.
func reloadUI() (tui.ConfigMsg, error) {
	cfg, err := config.Load()
	if err != nil {
		return tui.ConfigMsg{}, err
	}
	st, err := loadStyles(cfg)
	if err != nil {
		return tui.ConfigMsg{}, err
	}
	return tui.ConfigMsg{Styles: st, ShowHelp: cfg.TUI.ShowHelp}, nil
}
