package timing

import (
	"fmt"
	"math"
	"time"

	"gourd/entities"
)

// Derived display values. All functions are pure reads: the caller supplies
// "now" so results are reproducible in tests and across timezones.

// GenderDetectionInfo tells the user when each flower gender should become
// distinguishable on the vine.
type GenderDetectionInfo struct {
	MaleDetection   string `json:"male_detection"`
	FemaleDetection string `json:"female_detection"`
	CanDetectMale   bool   `json:"can_detect_male"`
	CanDetectFemale bool   `json:"can_detect_female"`
}

// Sentinels returned by PollinationEstimate when no window can be computed.
const (
	EstimateUndetermined = "TBA - Gender not determined yet"
	EstimateUnknown      = "Soon"
	EstimateReadyNow     = "Ready for pollination now!"
	EstimatePassed       = "Pollination window passed"
)

// AgeInDays is whole days since planting, floored. Zero when no planting
// date is set.
func AgeInDays(p *entities.Plant, now time.Time) int {
	if p.DatePlanted.IsZero() {
		return 0
	}
	d := now.Sub(p.DatePlanted).Hours() / 24.0
	if d < 0 {
		return int(math.Floor(d))
	}
	return int(d)
}

// DetectionInfo computes the male/female detection windows for a plant.
// Returns nil when the planting date or the species entry is missing.
func DetectionInfo(p *entities.Plant, now time.Time) *GenderDetectionInfo {
	if p.DatePlanted.IsZero() {
		return nil
	}
	e, ok := Lookup(p.Species)
	if !ok {
		return nil
	}

	age := AgeInDays(p, now)
	maleFrom := p.DatePlanted.AddDate(0, 0, e.Male.Min)
	maleTo := p.DatePlanted.AddDate(0, 0, e.Male.Max)
	femaleFrom := p.DatePlanted.AddDate(0, 0, e.Female.Min)
	femaleTo := p.DatePlanted.AddDate(0, 0, e.Female.Max)

	return &GenderDetectionInfo{
		MaleDetection:   formatDateRange(maleFrom, maleTo),
		FemaleDetection: formatDateRange(femaleFrom, femaleTo),
		CanDetectMale:   age >= e.Male.Min,
		CanDetectFemale: age >= e.Female.Min,
	}
}

// Estimate renders the pollination-readiness line shown on the plant card.
func Estimate(p *entities.Plant, now time.Time) string {
	if p.DatePlanted.IsZero() || p.Gender == entities.GenderUndetermined {
		return EstimateUndetermined
	}
	e, ok := Lookup(p.Species)
	if !ok {
		return EstimateUnknown
	}

	earliest := p.DatePlanted.AddDate(0, 0, e.Pollination.Min)
	latest := p.DatePlanted.AddDate(0, 0, e.Pollination.Max)

	switch {
	case !now.Before(earliest) && !now.After(latest):
		return EstimateReadyNow
	case now.Before(earliest):
		days := int(math.Ceil(earliest.Sub(now).Hours() / 24.0))
		return fmt.Sprintf("Ready in %d days (%s)", days, earliest.Format("1/2/2006"))
	default:
		return EstimatePassed
	}
}

// formatDateRange renders "Nov 15-20" within one month, "Nov 28 - Dec 3"
// across months.
func formatDateRange(from, to time.Time) string {
	if from.Month() == to.Month() {
		return fmt.Sprintf("%s %d-%d", from.Format("Jan"), from.Day(), to.Day())
	}
	return fmt.Sprintf("%s %d - %s %d", from.Format("Jan"), from.Day(), to.Format("Jan"), to.Day())
}
