package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/hance08/bolso/cmd/account"
	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/cmd/transaction"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/config"
	"github.com/hance08/bolso/internal/errhandler"
	"github.com/hance08/bolso/internal/logging"
	"github.com/hance08/bolso/internal/ui/prompts"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute runs the command line and returns the process exit code.
func Execute(migrations fs.FS) int {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// filled in by PersistentPreRunE once flags are parsed
	application := &app.App{}
	cleanup := func() {}
	defer func() { cleanup() }()

	rootCmd := &cobra.Command{
		Use:           "bolso",
		Short:         "bolso is a CLI personal finance tracker",
		Long:          `bolso tracks accounts, income, expenses and transfers, and computes account balances over any period.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig()
			if err != nil {
				return err
			}

			logger := logging.New(cfg.Log.Level)
			a, c, err := app.NewApp(cmd.Context(), cfg, migrations, logger)
			if err != nil {
				return err
			}

			*application = *a
			cleanup = c
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(account.NewAccountCmd(application))
	rootCmd.AddCommand(transaction.NewTransactionCmd(application))
	rootCmd.AddCommand(transaction.NewAddCmd(application))
	rootCmd.AddCommand(NewBalanceCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))

	return errhandler.HandleError(rootCmd.ExecuteContext(ctx))
}

func initConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	defaults := config.NewDefault()
	viper.SetDefault("database.path", defaults.Database.Path)
	viper.SetDefault("defaults.currency", defaults.Defaults.Currency)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("balance.workers", defaults.Balance.Workers)
	viper.SetDefault("balance.queue_size", defaults.Balance.QueueSize)

	created := false
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.AppDataDir()
		if err != nil {
			return nil, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if created, err = createDefaultConfig(appDir); err != nil {
			return nil, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("BOLSO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	if created && os.Getenv("BOLSO_DEFAULTS_CURRENCY") == "" && cmdutil.Interactive() {
		if err := initWizard(); err != nil {
			return nil, err
		}
	}

	cfg := config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Database.Path != "" {
		path, err := expandPath(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		cfg.Database.Path = path
	}
	cfg.ConfigPath = viper.ConfigFileUsed()

	return cfg, nil
}

func initWizard() error {
	currency, err := prompts.PromptInitCurrency(viper.GetString("defaults.currency"))
	if err != nil {
		return err
	}

	viper.Set("defaults.currency", currency)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Printf("Configuration saved. Default currency set to: %s\n", currency)
	return nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

// createDefaultConfig writes the defaults to appDir/config.yaml unless the
// file exists, and reports whether it wrote one.
func createDefaultConfig(appDir string) (bool, error) {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
