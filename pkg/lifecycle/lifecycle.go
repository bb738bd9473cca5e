package lifecycle

import (
	"fmt"
	"time"

	"gourd/entities"
	"gourd/pkg/notify"
)

// State transitions for a tracked plant. All operations mutate the record
// in place; persistence is the caller's job. Transitions are one-way: there
// is no operation that moves a plant backwards.

// MarkFlowering records the observed flower gender and advances the plant
// to flowering. Any gender outside male/female is silently ignored; the
// mobile app sends only the two valid values and legacy clients relied on
// the lenient behavior.
func MarkFlowering(p *entities.Plant, gender entities.Gender) {
	if gender != entities.GenderMale && gender != entities.GenderFemale {
		return
	}
	p.Gender = gender
	p.Status = entities.StatusFlowering
}

// MarkPollinated stamps the pollination date (defaulting to now), advances
// the plant to pollinated, and arms the reminder timing for the species.
// No prior-status check: the app allows marking pollination straight from
// planted.
func MarkPollinated(p *entities.Plant, date *time.Time, now time.Time) {
	d := now
	if date != nil {
		d = *date
	}
	p.DatePollinated = &d
	p.Status = entities.StatusPollinated
	notify.Initialize(p, d)
}

// AddNote appends a timestamped note. Kind defaults to observation.
func AddNote(p *entities.Plant, content string, kind entities.NoteKind, now time.Time) error {
	if content == "" {
		return fmt.Errorf("note content is required")
	}
	if len([]rune(content)) > entities.MaxNoteLen {
		return fmt.Errorf("note cannot exceed %d characters", entities.MaxNoteLen)
	}
	if kind == "" {
		kind = entities.NoteObservation
	}
	p.Notes = append(p.Notes, entities.Note{Content: content, Date: now, Kind: kind})
	return nil
}

// AddImage replaces the single tracked progress image. No history is kept.
func AddImage(p *entities.Plant, img entities.Image, now time.Time) {
	img.UploadDate = now
	p.Image = &img
}

// RemoveImage clears the image slot.
func RemoveImage(p *entities.Plant) {
	p.Image = nil
}

// RecordOutcome appends a pollination attempt result. A successful attempt
// advances the plant to fruiting; a failed one keeps it at pollinated so
// the history shows the attempt without faking progress.
func RecordOutcome(p *entities.Plant, outcome entities.OutcomeKind, now time.Time) error {
	switch outcome {
	case entities.OutcomeSuccessful, entities.OutcomeFailed, entities.OutcomePending:
	default:
		return fmt.Errorf("outcome must be one of: %s, %s, %s",
			entities.OutcomeSuccessful, entities.OutcomeFailed, entities.OutcomePending)
	}
	p.Outcomes = append(p.Outcomes, entities.PollinationOutcome{Outcome: outcome, Date: now})
	switch outcome {
	case entities.OutcomeSuccessful:
		p.Status = entities.StatusFruiting
	case entities.OutcomeFailed:
		p.Status = entities.StatusPollinated
	}
	return nil
}

// MarkHarvested closes out a fruiting plant.
func MarkHarvested(p *entities.Plant) error {
	if p.Status != entities.StatusFruiting {
		return fmt.Errorf("only a fruiting plant can be harvested")
	}
	p.Status = entities.StatusHarvested
	return nil
}
