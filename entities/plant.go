package entities

import (
	"fmt"
	"time"
)

type Species string

const (
	SpeciesAmpalaya Species = "ampalaya"
	SpeciesPatola   Species = "patola"
	SpeciesUpo      Species = "upo"
	SpeciesKalabasa Species = "kalabasa"
	SpeciesKundol   Species = "kundol"
)

// AllSpecies is the closed set accepted at creation, in display order.
var AllSpecies = []Species{SpeciesAmpalaya, SpeciesPatola, SpeciesUpo, SpeciesKalabasa, SpeciesKundol}

func (s Species) Valid() bool {
	switch s {
	case SpeciesAmpalaya, SpeciesPatola, SpeciesUpo, SpeciesKalabasa, SpeciesKundol:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderUndetermined Gender = "undetermined"
)

type Status string

const (
	StatusPlanted    Status = "planted"
	StatusFlowering  Status = "flowering"
	StatusPollinated Status = "pollinated"
	StatusFruiting   Status = "fruiting"
	StatusHarvested  Status = "harvested"
)

type NoteKind string

const (
	NoteObservation NoteKind = "observation"
	NoteCare        NoteKind = "care"
	NoteProblem     NoteKind = "problem"
	NoteMilestone   NoteKind = "milestone"
)

// MaxNoteLen caps a single note's content.
const MaxNoteLen = 500

type Note struct {
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
	Kind    NoteKind  `json:"kind"`
}

type OutcomeKind string

const (
	OutcomeSuccessful OutcomeKind = "successful"
	OutcomeFailed     OutcomeKind = "failed"
	OutcomePending    OutcomeKind = "pending"
)

type PollinationOutcome struct {
	Outcome OutcomeKind `json:"outcome"`
	Date    time.Time   `json:"date"`
}

type DisplayName struct {
	English string `json:"english"`
	Tagalog string `json:"tagalog"`
}

type Image struct {
	URL        string    `json:"url"`
	StorageID  string    `json:"storage_id"`
	Caption    string    `json:"caption"`
	UploadDate time.Time `json:"upload_date"`
}

type NotificationFlags struct {
	OneHourBefore    bool `json:"one_hour_before"`
	ThirtyMinsBefore bool `json:"thirty_mins_before"`
}

// PollinationTiming anchors the daily reminder window after pollination is
// marked. Hours are inclusive local-clock boundaries.
type PollinationTiming struct {
	StartHour     int               `json:"start_hour"` // 0-23
	EndHour       int               `json:"end_hour"`   // 0-23
	ScheduledDate time.Time         `json:"scheduled_date"`
	Notified      NotificationFlags `json:"notified"`
}

type Plant struct {
	PlantID     uint        `gorm:"primaryKey" json:"plant_id"`
	UserID      string      `json:"user_id" gorm:"index"`
	Species     Species     `json:"species" gorm:"index"` // ampalaya|patola|upo|kalabasa|kundol
	DisplayName DisplayName `gorm:"embedded;embeddedPrefix:display_" json:"display_name"`
	Gender      Gender      `json:"gender"` // male|female|undetermined
	Status      Status      `json:"status" gorm:"index"`

	DatePlanted    time.Time  `json:"date_planted" gorm:"index"`
	DatePollinated *time.Time `json:"date_pollinated,omitempty"`

	Notes    []Note               `gorm:"serializer:json" json:"notes,omitempty"`
	Outcomes []PollinationOutcome `gorm:"serializer:json" json:"outcomes,omitempty"`
	Image    *Image               `gorm:"serializer:json" json:"image,omitempty"`
	Timing   *PollinationTiming   `gorm:"serializer:json" json:"timing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the creation/update invariants. It does not touch derived
// fields; display names are filled by the species table lookup.
func (p *Plant) Validate() error {
	if !p.Species.Valid() {
		return fmt.Errorf("species must be one of: %s, %s, %s, %s, %s",
			SpeciesAmpalaya, SpeciesPatola, SpeciesUpo, SpeciesKalabasa, SpeciesKundol)
	}
	if p.UserID == "" {
		return fmt.Errorf("user is required")
	}
	if p.DatePlanted.IsZero() {
		return fmt.Errorf("date planted is required")
	}
	if p.DatePollinated != nil && p.DatePollinated.Before(p.DatePlanted) {
		return fmt.Errorf("pollination date cannot be before planting date")
	}
	return nil
}
