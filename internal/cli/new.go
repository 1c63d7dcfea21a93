package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"eventform/internal/datetime"
	"eventform/internal/draft"
	"eventform/internal/event"
	"eventform/internal/timeparse"
)

func newNewCmd() *cobra.Command {
	var (
		dateStr  string
		timeStr  string
		tz       string
		endTZ    string
		from     string
		to       string
		every    string
		calendar string
		allDay   bool
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Start editing a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if !force {
				if _, err := app.LoadDraft(); err == nil {
					return fmt.Errorf("a draft is already open: %s (use --force or `eventform discard`)", app.DraftPath)
				} else if !errors.Is(err, draft.ErrNoDraft) {
					return err
				}
			}
			m, err := buildNewModel(app, newModelInput{
				Title:    strings.Join(args, " "),
				Date:     dateStr,
				Time:     timeStr,
				TZ:       tz,
				EndTZ:    endTZ,
				From:     from,
				To:       to,
				Every:    every,
				Calendar: calendar,
				AllDay:   allDay,
			})
			if err != nil {
				return err
			}
			if err := app.SaveDraft(draft.New(m)); err != nil {
				return err
			}
			fmt.Println(formatModel(m, app.Settings.WeekStart))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "today", "Start date (e.g. 2023-06-05, tomorrow, next friday)")
	cmd.Flags().StringVar(&timeStr, "time", "", "Start time (HH:MM, defaults to default_start_time)")
	cmd.Flags().StringVar(&tz, "tz", "", "Timezone (defaults to the configured timezone)")
	cmd.Flags().StringVar(&from, "from", "", "Start of an existing event as an RFC 3339 instant (with --to)")
	cmd.Flags().StringVar(&to, "to", "", "End of an existing event as an RFC 3339 instant (with --from)")
	cmd.Flags().StringVar(&endTZ, "end-tz", "", "Timezone the end is shown in (with --from/--to, defaults to --tz)")
	cmd.Flags().StringVar(&every, "every", "", "Frequency (daily, weekly, weekdays, monthly, monthly last, yearly, RRULE:...)")
	cmd.Flags().StringVar(&calendar, "calendar", "", "Calendar ID (defaults to calendar_id)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an open draft")
	return cmd
}

type newModelInput struct {
	Title    string
	Date     string
	Time     string
	TZ       string
	EndTZ    string
	From     string
	To       string
	Every    string
	Calendar string
	AllDay   bool
}

func buildNewModel(app *App, in newModelInput) (event.Model, error) {
	s := app.Settings
	now := app.Now()
	tzid := s.Timezone
	if in.TZ != "" {
		var err error
		if tzid, err = timeparse.ParseTimezone(in.TZ); err != nil {
			return event.Model{}, err
		}
	}
	var (
		m       event.Model
		err     error
		intents []event.Intent
	)
	if in.From != "" || in.To != "" {
		m, err = modelFromInstants(s, in, tzid)
		if in.AllDay {
			intents = append(intents, event.SetAllDay{AllDay: true})
		}
	} else {
		m, err = modelFromDate(s, in, tzid, now)
	}
	if err != nil {
		return event.Model{}, err
	}
	m.Calendars = app.Config.EventCalendars()
	m.CalendarID = app.Config.CalendarID
	intents = append(intents, event.SetTitle{Title: in.Title})
	if in.Calendar != "" {
		intents = append(intents, event.SetCalendar{ID: in.Calendar})
	}
	if in.Every != "" {
		intent, err := fieldIntent(fieldEvery, in.Every, m, s, now)
		if err != nil {
			return event.Model{}, err
		}
		intents = append(intents, intent)
	}
	return app.Editor.ApplyAll(m, intents...)
}

// modelFromDate starts a new event on a date, "today" being read in tzid.
func modelFromDate(s event.Settings, in newModelInput, tzid string, now time.Time) (event.Model, error) {
	loc, err := datetime.LoadLocation(tzid)
	if err != nil {
		return event.Model{}, err
	}
	bounds := timeparse.Bounds{Min: s.MinDate, Max: s.MaxDate}
	date := datetime.DateOf(now.In(loc))
	if raw := strings.TrimSpace(in.Date); raw != "" && !strings.EqualFold(raw, "today") {
		if date, err = timeparse.ParseDate(raw, now.In(loc), bounds); err != nil {
			return event.Model{}, err
		}
	}
	clock := s.DefaultStartTime
	if in.Time != "" {
		if clock, err = timeparse.ParseClock(in.Time); err != nil {
			return event.Model{}, err
		}
	}
	return event.NewModel(s, datetime.NewState(date, clock, tzid), in.AllDay)
}

// modelFromInstants opens an existing event given as RFC 3339 instants, the
// start rendered in tzid and the end in its own zone.
func modelFromInstants(s event.Settings, in newModelInput, tzid string) (event.Model, error) {
	if in.From == "" || in.To == "" {
		return event.Model{}, fmt.Errorf("--from and --to go together")
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(in.From))
	if err != nil {
		return event.Model{}, fmt.Errorf("%w: --from %q", timeparse.ErrInvalidDateInput, in.From)
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(in.To))
	if err != nil {
		return event.Model{}, fmt.Errorf("%w: --to %q", timeparse.ErrInvalidDateInput, in.To)
	}
	endTZ := tzid
	if in.EndTZ != "" {
		if endTZ, err = timeparse.ParseTimezone(in.EndTZ); err != nil {
			return event.Model{}, err
		}
	}
	return event.FromInstants(s, start, tzid, end, endTZ)
}
