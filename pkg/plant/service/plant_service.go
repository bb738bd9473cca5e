package service

import (
	"time"

	"gourd/entities"
	"gourd/pkg/notify"
	"gourd/pkg/plant/repository"
	"gourd/pkg/timing"
)

// ValidationError marks a caller mistake so the HTTP layer can answer 400
// instead of 500.
type ValidationError struct{ Msg string }

func (e ValidationError) Error() string { return e.Msg }

type CreateInput struct {
	Species     entities.Species
	DatePlanted time.Time
	Gender      entities.Gender
	InitialNote string
}

// UpdateInput carries the mutable fields of a general PUT. Nil means
// "leave unchanged".
type UpdateInput struct {
	Gender         *entities.Gender
	Status         *entities.Status
	DatePollinated *time.Time
}

// PlantView is a record plus its derived display values, computed against
// the clock supplied to the service.
type PlantView struct {
	entities.Plant
	AgeInDays           int                         `json:"age_in_days"`
	GenderDetection     *timing.GenderDetectionInfo `json:"gender_detection,omitempty"`
	PollinationEstimate string                      `json:"pollination_estimate"`
	PollinationWindow   *notify.WindowSummary       `json:"pollination_window,omitempty"`
}

type DashboardStats struct {
	Total          int64                                     `json:"total"`
	Active         int64                                     `json:"active"`
	NeedsAttention int                                       `json:"needs_attention"`
	ByStatus       map[entities.Status]int64                 `json:"by_status"`
	BySpecies      map[entities.Species]int64                `json:"by_species"`
	Attention      []PlantView                               `json:"attention"`
	RecentActivity []entities.Plant                          `json:"recent_activity"`
	PlantTypes     map[entities.Species]entities.DisplayName `json:"plant_types"`
}

type PlantService interface {
	Create(uid string, in CreateInput) (*PlantView, error)
	Get(uid string, id uint) (*PlantView, error)
	List(uid string, q repository.ListQuery) ([]PlantView, int64, error)
	Update(uid string, id uint, in UpdateInput) (*PlantView, error)
	Delete(uid string, id uint) error

	MarkFlowering(uid string, id uint, gender entities.Gender) (*PlantView, error)
	MarkPollinated(uid string, id uint, date *time.Time) (*PlantView, error)
	AddNote(uid string, id uint, content string, kind entities.NoteKind) (*entities.Note, error)
	SetImage(uid string, id uint, img entities.Image) (*PlantView, error)
	RemoveImage(uid string, id uint) (*PlantView, error)
	RecordOutcome(uid string, id uint, outcome entities.OutcomeKind) (*PlantView, error)
	MarkHarvested(uid string, id uint) (*PlantView, error)

	Attention(uid string) ([]PlantView, error)
	Upcoming(uid string) ([]PlantView, error)
	Dashboard(uid string) (*DashboardStats, error)
	PlantTypes() map[entities.Species]entities.DisplayName

	PendingNotifications(uid string) ([]notify.Notification, error)
	MarkNotificationSent(uid string, id uint, kind string) error
}
