package serviceImp

import (
	"time"

	"gourd/entities"
	"gourd/pkg/lifecycle"
	"gourd/pkg/notify"
	"gourd/pkg/plant/repository"
	"gourd/pkg/plant/service"
	"gourd/pkg/timing"
)

type plantSvc struct {
	r   repository.PlantRepository
	now func() time.Time
}

func New(r repository.PlantRepository) service.PlantService {
	return &plantSvc{r: r, now: time.Now}
}

// NewWithClock pins "now" for deterministic window math in tests.
func NewWithClock(r repository.PlantRepository, now func() time.Time) service.PlantService {
	return &plantSvc{r: r, now: now}
}

func (s *plantSvc) view(p *entities.Plant) *service.PlantView {
	now := s.now()
	return &service.PlantView{
		Plant:               *p,
		AgeInDays:           timing.AgeInDays(p, now),
		GenderDetection:     timing.DetectionInfo(p, now),
		PollinationEstimate: timing.Estimate(p, now),
		PollinationWindow:   notify.Summary(p.Species),
	}
}

func (s *plantSvc) views(ps []entities.Plant) []service.PlantView {
	out := make([]service.PlantView, 0, len(ps))
	for i := range ps {
		out = append(out, *s.view(&ps[i]))
	}
	return out
}

func (s *plantSvc) Create(uid string, in service.CreateInput) (*service.PlantView, error) {
	gender := in.Gender
	if gender == "" {
		gender = entities.GenderUndetermined
	}
	p := &entities.Plant{
		UserID:      uid,
		Species:     in.Species,
		Gender:      gender,
		Status:      entities.StatusPlanted,
		DatePlanted: in.DatePlanted,
	}
	if err := p.Validate(); err != nil {
		return nil, service.ValidationError{Msg: err.Error()}
	}
	timing.EnsureDisplayName(p)
	if in.InitialNote != "" {
		if err := lifecycle.AddNote(p, in.InitialNote, entities.NoteObservation, s.now()); err != nil {
			return nil, service.ValidationError{Msg: err.Error()}
		}
	}
	if err := s.r.Create(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) Get(uid string, id uint) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) List(uid string, q repository.ListQuery) ([]service.PlantView, int64, error) {
	ps, total, err := s.r.List(uid, q)
	if err != nil {
		return nil, 0, err
	}
	return s.views(ps), total, nil
}

func (s *plantSvc) Update(uid string, id uint, in service.UpdateInput) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if in.Gender != nil {
		switch *in.Gender {
		case entities.GenderMale, entities.GenderFemale, entities.GenderUndetermined:
			p.Gender = *in.Gender
		default:
			return nil, service.ValidationError{Msg: "gender must be one of: male, female, undetermined"}
		}
	}
	if in.Status != nil {
		switch *in.Status {
		case entities.StatusPlanted, entities.StatusFlowering, entities.StatusPollinated,
			entities.StatusFruiting, entities.StatusHarvested:
			p.Status = *in.Status
		default:
			return nil, service.ValidationError{Msg: "invalid status"}
		}
	}
	if in.DatePollinated != nil {
		p.DatePollinated = in.DatePollinated
	}
	if err := p.Validate(); err != nil {
		return nil, service.ValidationError{Msg: err.Error()}
	}
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) Delete(uid string, id uint) error { return s.r.Delete(id, uid) }

func (s *plantSvc) MarkFlowering(uid string, id uint, gender entities.Gender) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	lifecycle.MarkFlowering(p, gender)
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) MarkPollinated(uid string, id uint, date *time.Time) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	lifecycle.MarkPollinated(p, date, s.now())
	if err := p.Validate(); err != nil {
		return nil, service.ValidationError{Msg: err.Error()}
	}
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) AddNote(uid string, id uint, content string, kind entities.NoteKind) (*entities.Note, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.AddNote(p, content, kind, s.now()); err != nil {
		return nil, service.ValidationError{Msg: err.Error()}
	}
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	n := p.Notes[len(p.Notes)-1]
	return &n, nil
}

func (s *plantSvc) SetImage(uid string, id uint, img entities.Image) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	lifecycle.AddImage(p, img, s.now())
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) RemoveImage(uid string, id uint) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	lifecycle.RemoveImage(p)
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) RecordOutcome(uid string, id uint, outcome entities.OutcomeKind) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.RecordOutcome(p, outcome, s.now()); err != nil {
		return nil, service.ValidationError{Msg: err.Error()}
	}
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) MarkHarvested(uid string, id uint) (*service.PlantView, error) {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.MarkHarvested(p); err != nil {
		return nil, service.ValidationError{Msg: err.Error()}
	}
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *plantSvc) Attention(uid string) ([]service.PlantView, error) {
	ps, err := s.r.Attention(uid)
	if err != nil {
		return nil, err
	}
	return s.views(ps), nil
}

// Upcoming mirrors Attention: the mobile app shows the same filtered set
// under its "upcoming pollinations" tab, sorted by planting date so the
// oldest plants surface first.
func (s *plantSvc) Upcoming(uid string) ([]service.PlantView, error) {
	return s.Attention(uid)
}

func (s *plantSvc) Dashboard(uid string) (*service.DashboardStats, error) {
	byStatus, err := s.r.CountByStatus(uid)
	if err != nil {
		return nil, err
	}
	bySpecies, err := s.r.CountBySpecies(uid)
	if err != nil {
		return nil, err
	}
	attention, err := s.r.Attention(uid)
	if err != nil {
		return nil, err
	}
	recent, err := s.r.RecentlyUpdated(uid, s.now().AddDate(0, 0, -7), 10)
	if err != nil {
		return nil, err
	}

	var total, active int64
	for st, n := range byStatus {
		total += n
		if st != entities.StatusHarvested {
			active += n
		}
	}

	needsAttention := len(attention)
	if len(attention) > 5 {
		attention = attention[:5] // dashboard shows a teaser, not the full list
	}
	return &service.DashboardStats{
		Total:          total,
		Active:         active,
		NeedsAttention: needsAttention,
		ByStatus:       byStatus,
		BySpecies:      bySpecies,
		Attention:      s.views(attention),
		RecentActivity: recent,
		PlantTypes:     timing.DisplayNames(),
	}, nil
}

func (s *plantSvc) PlantTypes() map[entities.Species]entities.DisplayName {
	return timing.DisplayNames()
}

func (s *plantSvc) PendingNotifications(uid string) ([]notify.Notification, error) {
	ps, err := s.r.Pollinated(uid)
	if err != nil {
		return nil, err
	}
	return notify.Pending(ps, s.now()), nil
}

func (s *plantSvc) MarkNotificationSent(uid string, id uint, kind string) error {
	p, err := s.r.FindByID(id, uid)
	if err != nil {
		return err
	}
	if err := notify.MarkSent(p, kind); err != nil {
		return service.ValidationError{Msg: err.Error()}
	}
	return s.r.Save(p)
}
