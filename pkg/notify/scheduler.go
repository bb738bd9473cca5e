package notify

import (
	"fmt"
	"time"

	"gourd/entities"
	"gourd/pkg/timing"
)

// Lead-time reminder kinds. Each maps to a one-shot flag on the plant's
// timing record: the flag flips false->true once and never reverts for the
// scheduled date.
const (
	KindOneHourBefore    = "oneHourBefore"
	KindThirtyMinsBefore = "thirtyMinsBefore"
)

// Notification is what the external poller hands to the delivery channel.
// This package only computes what is due; it never sends anything.
type Notification struct {
	PlantID       uint      `json:"plant_id"`
	PlantName     string    `json:"plant_name"`
	PlantTagalog  string    `json:"plant_tagalog"`
	Kind          string    `json:"kind"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Message       string    `json:"message"`
	Window        string    `json:"window"`
}

// Initialize populates the plant's timing record from the species clock
// window. Unknown species leave the record unset so legacy rows keep working.
func Initialize(p *entities.Plant, pollinationDate time.Time) {
	e, ok := timing.Lookup(p.Species)
	if !ok {
		return
	}
	p.Timing = &entities.PollinationTiming{
		StartHour:     e.Window.StartHour,
		EndHour:       e.Window.EndHour,
		ScheduledDate: pollinationDate,
	}
}

// Pending returns the reminders due at now for the given plants. A reminder
// is due once wall-clock time passes the scheduled date at startHour minus
// its lead time and the matching flag is still unset. The anchor is built
// from the scheduled date's calendar day in now's zone: scheduled dates
// arrive as UTC midnight from the API, but start hours mean local wall-clock
// hours, so the anchor must follow the poller's clock.
func Pending(plants []entities.Plant, now time.Time) []Notification {
	var out []Notification
	for i := range plants {
		p := &plants[i]
		if p.Status != entities.StatusPollinated || p.Timing == nil || p.Timing.ScheduledDate.IsZero() {
			continue
		}

		day := p.Timing.ScheduledDate
		oneHourAt := time.Date(day.Year(), day.Month(), day.Day(), p.Timing.StartHour-1, 0, 0, 0, now.Location())
		thirtyAt := oneHourAt.Add(30 * time.Minute)
		window := fmt.Sprintf("%d:00 - %d:00", p.Timing.StartHour, p.Timing.EndHour)

		name := p.DisplayName.English
		if name == "" {
			name = string(p.Species)
		}
		tagalog := p.DisplayName.Tagalog
		if tagalog == "" {
			tagalog = string(p.Species)
		}

		if !p.Timing.Notified.OneHourBefore && !now.Before(oneHourAt) {
			out = append(out, Notification{
				PlantID:       p.PlantID,
				PlantName:     name,
				PlantTagalog:  tagalog,
				Kind:          KindOneHourBefore,
				ScheduledTime: oneHourAt,
				Message:       fmt.Sprintf("Pollination starts in 1 hour! %s is ready at %d:00", name, p.Timing.StartHour),
				Window:        window,
			})
		}
		if !p.Timing.Notified.ThirtyMinsBefore && !now.Before(thirtyAt) {
			out = append(out, Notification{
				PlantID:       p.PlantID,
				PlantName:     name,
				PlantTagalog:  tagalog,
				Kind:          KindThirtyMinsBefore,
				ScheduledTime: thirtyAt,
				Message:       "Pollination in 30 minutes! Get your tools ready!",
				Window:        window,
			})
		}
	}
	return out
}

// MarkSent flips the one-shot flag for a delivered reminder. Flipping an
// already-set flag is a no-op so the poller can ack idempotently.
func MarkSent(p *entities.Plant, kind string) error {
	if p.Timing == nil {
		return fmt.Errorf("plant has no pollination timing")
	}
	switch kind {
	case KindOneHourBefore:
		p.Timing.Notified.OneHourBefore = true
	case KindThirtyMinsBefore:
		p.Timing.Notified.ThirtyMinsBefore = true
	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}
	return nil
}

// Summary describes a species' daily window for display screens.
type WindowSummary struct {
	Species   entities.Species `json:"species"`
	Window    string           `json:"window"`
	StartHour int              `json:"start_hour"`
	EndHour   int              `json:"end_hour"`
}

func Summary(s entities.Species) *WindowSummary {
	e, ok := timing.Lookup(s)
	if !ok {
		return nil
	}
	period := "Morning"
	if e.Window.StartHour >= 12 {
		period = "Evening"
	}
	return &WindowSummary{
		Species:   s,
		Window:    fmt.Sprintf("%s (%s - %s)", period, formatHour(e.Window.StartHour), formatHour(e.Window.EndHour)),
		StartHour: e.Window.StartHour,
		EndHour:   e.Window.EndHour,
	}
}

func formatHour(h int) string {
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h
	switch {
	case h == 0:
		display = 12
	case h > 12:
		display = h - 12
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}
