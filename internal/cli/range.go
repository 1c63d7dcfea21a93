package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eventform/internal/daterange"
	"eventform/internal/datetime"
	"eventform/internal/timeparse"
)

func newRangeCmd() *cobra.Command {
	var (
		viewStr string
		dateStr string
		fromStr string
		toStr   string
		rng     int
		next    int
		prev    int
	)
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show the calendar window around a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			now := app.Now()
			bounds := timeparse.Bounds{Min: app.Settings.MinDate, Max: app.Settings.MaxDate}
			view, err := daterange.ParseView(viewStr)
			if err != nil {
				return err
			}
			date := datetime.DateOf(now)
			if dateStr != "" {
				if date, err = timeparse.ParseDate(dateStr, now, bounds); err != nil {
					return err
				}
			}
			if (fromStr == "") != (toStr == "") {
				return fmt.Errorf("--from and --to go together")
			}
			if fromStr != "" {
				from, err := timeparse.ParseDate(fromStr, now, bounds)
				if err != nil {
					return err
				}
				to, err := timeparse.ParseDate(toStr, now, bounds)
				if err != nil {
					return err
				}
				sel := daterange.FromSelection(from, to)
				date, view, rng = sel.Date, sel.View, sel.Range
			}
			for i := 0; i < next; i++ {
				date = daterange.Step(date, rng, view, 1)
			}
			for i := 0; i < prev; i++ {
				date = daterange.Step(date, rng, view, -1)
			}

			w := daterange.Range(date, rng, view, app.Settings.WeekStart)
			fmt.Printf("%s view: %s (%d days)\n", view, w, w.Days())
			if app.Settings.DisplayWeekNumbers {
				fmt.Println(gray("  weeks: " + weekNumbers(w)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&viewStr, "view", "week", "View: day, week, month, year or agenda")
	cmd.Flags().StringVar(&dateStr, "date", "", "Anchor date (defaults to today)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Selection start; picks the view from the selected span")
	cmd.Flags().StringVar(&toStr, "to", "", "Selection end")
	cmd.Flags().IntVar(&rng, "range", 0, "Extra days (week view) or weeks (month view)")
	cmd.Flags().IntVar(&next, "next", 0, "Move this many windows forward")
	cmd.Flags().IntVar(&prev, "prev", 0, "Move this many windows back")
	return cmd
}

func weekNumbers(w daterange.Window) string {
	var weeks []string
	last := -1
	for d := w.From; !d.After(w.To); d = d.AddDays(1) {
		if wk := d.ISOWeek(); wk != last {
			weeks = append(weeks, fmt.Sprintf("%d", wk))
			last = wk
		}
	}
	return strings.Join(weeks, ", ")
}
