// Package catalog holds the static content the journal refers to: the guided
// meditation library and the outline of the 7-day program.
package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownMeditation is returned for ids missing from the library.
var ErrUnknownMeditation = errors.New("unknown meditation")

// Category groups meditations.
type Category string

const (
	CategorySleep   Category = "sleep"
	CategoryRelax   Category = "relax"
	CategoryFocus   Category = "focus"
	CategoryMorning Category = "morning"
)

// Categories lists meditation categories in display order.
var Categories = []Category{CategorySleep, CategoryRelax, CategoryFocus, CategoryMorning}

// Meditation is one guided track.
type Meditation struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Duration int      `json:"duration"` // minutes
	Category Category `json:"category"`
}

var meditations = []Meditation{
	{ID: "sleep-1", Title: "Deep sleep", Duration: 15, Category: CategorySleep},
	{ID: "sleep-2", Title: "Night calm", Duration: 10, Category: CategorySleep},
	{ID: "relax-1", Title: "Releasing tension", Duration: 12, Category: CategoryRelax},
	{ID: "relax-2", Title: "Inner peace", Duration: 8, Category: CategoryRelax},
	{ID: "focus-1", Title: "Clear mind", Duration: 10, Category: CategoryFocus},
	{ID: "focus-2", Title: "Concentration", Duration: 7, Category: CategoryFocus},
	{ID: "morning-1", Title: "Good morning", Duration: 8, Category: CategoryMorning},
	{ID: "morning-2", Title: "Intention for the day", Duration: 6, Category: CategoryMorning},
}

var meditationIndex = func() map[string]Meditation {
	m := make(map[string]Meditation, len(meditations))
	for _, med := range meditations {
		m[med.ID] = med
	}
	return m
}()

// Meditations returns the library in display order.
func Meditations() []Meditation {
	out := make([]Meditation, len(meditations))
	copy(out, meditations)
	return out
}

// LookupMeditation finds a meditation by id.
func LookupMeditation(id string) (Meditation, error) {
	m, ok := meditationIndex[id]
	if !ok {
		return Meditation{}, fmt.Errorf("%w: %q", ErrUnknownMeditation, id)
	}
	return m, nil
}

// MeditationsByCategory returns the meditations of one category.
func MeditationsByCategory(c Category) []Meditation {
	var out []Meditation
	for _, m := range meditations {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}
