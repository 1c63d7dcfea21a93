package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eventform/internal/event"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [field] [value]",
		Short: "Change one field of the open draft",
		Long: "Change one field of the open draft. Fields: " + fieldList() + ".\n" +
			"Rejected edits leave the draft unchanged.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			d, err := app.LoadDraft()
			if err != nil {
				return err
			}
			f, err := parseField(args[0])
			if err != nil {
				return err
			}
			next, err := applyField(app, d.Model, f, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if next.Equal(d.Model) {
				fmt.Println(gray("(no change)"))
				return nil
			}
			d.Model = next
			if err := app.SaveDraft(d); err != nil {
				return err
			}
			fmt.Println(formatModel(next, app.Settings.WeekStart))
			return nil
		},
	}
	return cmd
}

// applyField parses raw for f and applies the resulting intent to m. The
// returned error explains a rejection; the model is then m itself.
func applyField(app *App, m event.Model, f field, raw string) (event.Model, error) {
	if fieldHidden(f, m) {
		return m, fmt.Errorf("%s is not editable for this event", f)
	}
	intent, err := fieldIntent(f, raw, m, app.Settings, app.Now())
	if err != nil {
		app.Log.Debug("input rejected", "field", f, "value", raw, "err", err)
		return m, fmt.Errorf("%s: %w", f, err)
	}
	next, err := app.Editor.Apply(m, intent)
	if err != nil {
		return m, fmt.Errorf("%s: %w", f, err)
	}
	return next, nil
}

func fieldList() string {
	names := make([]string, 0, len(allFields))
	for _, f := range allFields {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
