package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"eventform/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage local configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigCalendarsCmd())
	cmd.AddCommand(newConfigCalendarAddCmd())
	cmd.AddCommand(newConfigCalendarSetCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force       bool
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
			}
			cfg := config.Default()
			if interactive {
				if err := setupTime(cfg); err != nil {
					return err
				}
				if err := setupCalendars(cfg); err != nil {
					return err
				}
				if _, err := cfg.Settings(); err != nil {
					return err
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("Config written: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for timezone, defaults and calendars")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(path)
			if err != nil {
				return err
			}
			var data []byte
			if asYAML {
				data, err = yaml.Marshal(cfg)
			} else {
				data, err = json.MarshalIndent(cfg, "", "  ")
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", path)
			fmt.Printf("%s\n", strings.TrimRight(string(data), "\n"))
			if _, err := cfg.Settings(); err != nil {
				fmt.Printf("%s\n", gray("invalid: "+err.Error()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")
	return cmd
}

func newConfigCalendarsCmd() *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List configured calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(path)
			if err != nil {
				return err
			}
			for _, cal := range cfg.Calendars {
				current := ""
				if cal.ID == cfg.CalendarID {
					current = " (default)"
				}
				if showIDs {
					fmt.Printf("- %s%s\n  id: %s\n", cal.Name, current, cal.ID)
				} else {
					fmt.Printf("- %s%s\n", cal.Name, current)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show calendar IDs")
	return cmd
}

func newConfigCalendarAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-calendar [calendarID] [name]",
		Short: "Add a calendar the editor can pick",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(path)
			if err != nil {
				return err
			}
			name := args[0]
			if len(args) == 2 {
				name = args[1]
			}
			for _, cal := range cfg.Calendars {
				if cal.ID == args[0] {
					return fmt.Errorf("calendar already configured: %s", args[0])
				}
			}
			cfg.Calendars = append(cfg.Calendars, config.Calendar{ID: args[0], Name: name})
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("Added calendar: %s (id: %s)\n", name, args[0])
			return nil
		},
	}
	return cmd
}

func newConfigCalendarSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-calendar [calendarID]",
		Short: "Set calendar_id in config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(path)
			if err != nil {
				return err
			}
			cfg.CalendarID = args[0]
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("calendar_id updated: %s\n", cfg.CalendarID)
			return nil
		},
	}
	return cmd
}
