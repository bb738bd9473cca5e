package timing

import (
	"gourd/entities"
)

// DayRange is an inclusive day-offset range counted from planting.
type DayRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ClockWindow is the daily local-hour window when pollination is viable.
type ClockWindow struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// Entry holds every per-species timing parameter the app knows about.
type Entry struct {
	Male        DayRange
	Female      DayRange
	Pollination DayRange
	Window      ClockWindow
}

// table is the static species reference data. Patola's clock window spans
// morning through evening; the plant flowers at either end of the day and
// the app leaves the choice to the user.
var table = map[entities.Species]Entry{
	entities.SpeciesAmpalaya: {
		Male:        DayRange{30, 35},
		Female:      DayRange{38, 45},
		Pollination: DayRange{40, 50},
		Window:      ClockWindow{6, 9},
	},
	entities.SpeciesKalabasa: {
		Male:        DayRange{25, 30},
		Female:      DayRange{30, 35},
		Pollination: DayRange{30, 40},
		Window:      ClockWindow{6, 9},
	},
	entities.SpeciesKundol: {
		Male:        DayRange{45, 55},
		Female:      DayRange{55, 65},
		Pollination: DayRange{55, 70},
		Window:      ClockWindow{6, 8},
	},
	entities.SpeciesPatola: {
		Male:        DayRange{35, 40},
		Female:      DayRange{40, 45},
		Pollination: DayRange{45, 55},
		Window:      ClockWindow{5, 20},
	},
	entities.SpeciesUpo: {
		Male:        DayRange{40, 45},
		Female:      DayRange{45, 55},
		Pollination: DayRange{50, 60},
		Window:      ClockWindow{17, 20},
	},
}

var displayNames = map[entities.Species]entities.DisplayName{
	entities.SpeciesAmpalaya: {English: "Bitter Gourd", Tagalog: "Ampalaya"},
	entities.SpeciesPatola:   {English: "Sponge Gourd", Tagalog: "Patola"},
	entities.SpeciesUpo:      {English: "Bottle Gourd", Tagalog: "Upo"},
	entities.SpeciesKalabasa: {English: "Squash", Tagalog: "Kalabasa"},
	entities.SpeciesKundol:   {English: "Winter Melon", Tagalog: "Kundol"},
}

// Lookup returns the timing entry for a species. Unknown species report
// ok=false so read paths can degrade instead of failing.
func Lookup(s entities.Species) (Entry, bool) {
	e, ok := table[s]
	return e, ok
}

// DisplayNameFor returns the english/tagalog pair for a species.
func DisplayNameFor(s entities.Species) (entities.DisplayName, bool) {
	d, ok := displayNames[s]
	return d, ok
}

// DisplayNames returns the full species -> display-name table.
func DisplayNames() map[entities.Species]entities.DisplayName {
	out := make(map[entities.Species]entities.DisplayName, len(displayNames))
	for k, v := range displayNames {
		out[k] = v
	}
	return out
}

// EnsureDisplayName fills the derived name pair once from the species table.
// The original mobile backend did this in a save hook; here it is an explicit
// step so writes stay observable.
func EnsureDisplayName(p *entities.Plant) {
	if p.DisplayName.English != "" {
		return
	}
	if d, ok := displayNames[p.Species]; ok {
		p.DisplayName = d
	}
}
