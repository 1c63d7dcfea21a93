package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"eventform/internal/config"
	"eventform/internal/datetime"
	"eventform/internal/draft"
	"eventform/internal/event"
	"eventform/internal/paths"
)

type App struct {
	Config     *config.Config
	ConfigPath string
	DraftPath  string
	Settings   event.Settings
	Editor     *event.Editor
	Location   *time.Location
	Log        *slog.Logger
}

// Now returns the current time in the app's configured location.
// Always use this instead of caching time at startup.
func (a *App) Now() time.Time {
	return time.Now().In(a.Location)
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "eventform",
		Short:         "Edit a calendar event's dates, times, zones and frequency from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			logger, err := newLogger(os.Stderr, level)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			return startTUI(app)
		},
	}
	cmd.PersistentFlags().String("config", "", "Path to config.json or config.yaml (defaults to ~/.config/eventform/config.json)")
	cmd.PersistentFlags().String("draft", "", "Path to the draft file (defaults to ~/.local/state/eventform/draft.json)")
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")

	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newDiscardCmd())
	cmd.AddCommand(newRangeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newSetupCmd())

	return cmd
}

func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return paths.ConfigPath()
}

func resolveDraftPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("draft"); path != "" {
		return path, nil
	}
	return paths.DraftPath()
}

func initApp(cmd *cobra.Command) (*App, error) {
	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, err
	}
	settings, err := cfg.Settings()
	if err != nil {
		if errors.Is(err, datetime.ErrInvalidTimezone) {
			slog.Warn("config timezone rejected", "path", cfgPath, "timezone", cfg.Timezone)
		}
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	loc, err := datetime.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, err
	}
	draftPath, err := resolveDraftPath(cmd)
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	return &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		DraftPath:  draftPath,
		Settings:   settings,
		Editor:     event.NewEditor(settings, logger.With("component", "editor")),
		Location:   loc,
		Log:        logger,
	}, nil
}

func (a *App) SaveConfig() error {
	if a == nil || a.Config == nil || a.ConfigPath == "" {
		return fmt.Errorf("config is not initialized")
	}
	return config.Save(a.ConfigPath, a.Config)
}

func (a *App) LoadDraft() (*draft.Draft, error) {
	return draft.Load(a.DraftPath)
}

func (a *App) SaveDraft(d *draft.Draft) error {
	if err := draft.Save(a.DraftPath, d, time.Now()); err != nil {
		return err
	}
	a.Log.Debug("draft saved", "path", a.DraftPath, "id", d.ID)
	return nil
}
