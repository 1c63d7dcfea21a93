package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"eventform/internal/config"
	"eventform/internal/timeparse"
)

type choiceItem[T any] struct {
	Label string
	Item  T
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup for timezone, defaults and calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(cfgPath)
			if err != nil {
				return err
			}

			printSection("Time")
			if err := setupTime(cfg); err != nil {
				return err
			}

			printSection("Calendar")
			if err := setupCalendars(cfg); err != nil {
				return err
			}

			if _, err := cfg.Settings(); err != nil {
				return err
			}
			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			fmt.Printf("\nSetup complete. Config saved to %s\n", cfgPath)
			return nil
		},
	}
	return cmd
}

func setupTime(cfg *config.Config) error {
	tz := ""
	prompt := &survey.Input{Message: "Timezone (IANA name)", Default: cfg.Timezone}
	if err := survey.AskOne(prompt, &tz, survey.WithValidator(validateWith(func(v string) error {
		_, err := timeparse.ParseTimezone(v)
		return err
	}))); err != nil {
		return err
	}
	cfg.Timezone = strings.TrimSpace(tz)

	weekStart := ""
	options := []string{"monday", "sunday", "saturday"}
	if err := survey.AskOne(&survey.Select{Message: "Week starts on", Options: options, Default: cfg.WeekStart}, &weekStart); err != nil {
		return err
	}
	cfg.WeekStart = weekStart

	start := ""
	if err := survey.AskOne(&survey.Input{Message: "Default start time", Default: cfg.DefaultStartTime}, &start,
		survey.WithValidator(validateWith(func(v string) error {
			_, err := timeparse.ParseClock(v)
			return err
		}))); err != nil {
		return err
	}
	clock, _ := timeparse.ParseClock(start)
	cfg.DefaultStartTime = clock.String()

	duration := ""
	if err := survey.AskOne(&survey.Input{Message: "Default duration", Default: cfg.DefaultDuration}, &duration,
		survey.WithValidator(validateWith(func(v string) error {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err == nil && d <= 0 {
				err = fmt.Errorf("duration must be positive")
			}
			return err
		}))); err != nil {
		return err
	}
	cfg.DefaultDuration = strings.TrimSpace(duration)

	return survey.AskOne(&survey.Confirm{Message: "Show week numbers?", Default: cfg.DisplayWeekNumbers}, &cfg.DisplayWeekNumbers)
}

func setupCalendars(cfg *config.Config) error {
	for {
		addMore := false
		if err := survey.AskOne(&survey.Confirm{Message: "Add a calendar?", Default: len(cfg.Calendars) <= 1}, &addMore); err != nil {
			return err
		}
		if !addMore {
			break
		}
		id, err := askRequired("Calendar ID")
		if err != nil {
			return err
		}
		name, err := askLabel("Display name", id)
		if err != nil {
			return err
		}
		cfg.Calendars = append(cfg.Calendars, config.Calendar{ID: id, Name: name})
	}

	choices := buildCalendarChoices(cfg.Calendars)
	if len(choices) == 0 {
		return nil
	}
	defaultLabel := ""
	for _, choice := range choices {
		if choice.Item.ID == cfg.CalendarID {
			defaultLabel = choice.Label
			break
		}
	}
	prompt := &survey.Select{
		Message:  "Default calendar",
		Options:  labelsFromChoices(choices),
		Default:  defaultLabel,
		PageSize: 12,
	}
	var selected string
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	choice, ok := findChoice(choices, selected)
	if !ok {
		return fmt.Errorf("invalid calendar selection")
	}
	cfg.CalendarID = choice.Item.ID
	return nil
}

func validateWith(check func(string) error) survey.Validator {
	return func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("expected text")
		}
		return check(s)
	}
}

func buildCalendarChoices(cals []config.Calendar) []choiceItem[config.Calendar] {
	counts := map[string]int{}
	for _, c := range cals {
		counts[c.Name]++
	}
	index := map[string]int{}
	choices := make([]choiceItem[config.Calendar], 0, len(cals))
	for _, c := range cals {
		label := c.Name
		if counts[c.Name] > 1 {
			index[c.Name]++
			label = fmt.Sprintf("%s (%d)", label, index[c.Name])
		}
		choices = append(choices, choiceItem[config.Calendar]{Label: label, Item: c})
	}
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].Label < choices[j].Label })
	return choices
}

func labelsFromChoices[T any](choices []choiceItem[T]) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	return labels
}

func findChoice[T any](choices []choiceItem[T], label string) (choiceItem[T], bool) {
	for _, choice := range choices {
		if choice.Label == label {
			return choice, true
		}
	}
	var zero choiceItem[T]
	return zero, false
}

func askLabel(message, defaultValue string) (string, error) {
	var input string
	prompt := &survey.Input{Message: message, Default: defaultValue}
	if err := survey.AskOne(prompt, &input, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func askRequired(message string) (string, error) {
	var input string
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &input, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func printSection(title string) {
	fmt.Printf("\n\033[1m%s\033[0m\n", title)
}
