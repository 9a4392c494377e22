package cmd

import (
	"os"
	"path/filepath"

	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/ui"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and system details.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	appDir, err := app.AppDataDir()
	if err != nil {
		appDir = "Unknown"
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(appDir, "bolso.db")
	}

	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath:      configPath,
		DBPath:          dbPath,
		DBExists:        dbExists,
		DefaultCurrency: cfg.Defaults.Currency,
		AppDataDir:      appDir,
		LogLevel:        cfg.Log.Level,
		BalanceWorkers:  cfg.Balance.Workers,
		BalanceQueue:    cfg.Balance.QueueSize,
	}

	ui.PrintL1Title("bolso")
	return views.RenderSystemInfo(items)
}
