package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"eventform/internal/event"
)

func newShowCmd() *cobra.Command {
	var (
		asJSON bool
		asYAML bool
		rule   bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the open draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && asYAML {
				return fmt.Errorf("--json and --yaml are exclusive")
			}
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			d, err := app.LoadDraft()
			if err != nil {
				return err
			}
			m := d.Model
			switch {
			case asJSON:
				data, err := json.MarshalIndent(m, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case asYAML:
				data, err := yaml.Marshal(m)
				if err != nil {
					return err
				}
				fmt.Println(strings.TrimRight(string(data), "\n"))
			case rule:
				if m.Frequency == nil {
					fmt.Println(gray("(does not repeat)"))
					return nil
				}
				text, err := ruleText(m, app.Settings.WeekStart)
				if err != nil {
					return err
				}
				fmt.Println(text)
			default:
				fmt.Println(formatModel(m, app.Settings.WeekStart))
				if !m.Valid() {
					fmt.Println(gray("  (end is before start)"))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the model as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the model as YAML")
	cmd.Flags().BoolVar(&rule, "rrule", false, "Print only the recurrence rule")
	return cmd
}

// ruleText renders the recurrence as DTSTART and RRULE lines anchored on the
// resolved start.
func ruleText(m event.Model, weekStart time.Weekday) (string, error) {
	start, err := m.Start.Resolve()
	if err != nil {
		return "", err
	}
	rule, err := m.Frequency.RRule(start, weekStart)
	if err != nil {
		return "", err
	}
	return rule.String(), nil
}
