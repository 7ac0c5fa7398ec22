// Package refdata serves the dashboard's static reference datasets: the
// fund list, the concept encyclopedia and the learning curriculum. It is
// inert presentation data; the synthesis engine never reads it.
package refdata

import "time"

// Fund is one row of the mutual-fund reference table.
type Fund struct {
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	ExpenseRatio float64   `json:"expense_ratio"`
	AUMMillions  float64   `json:"aum_millions"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Concept is one encyclopedia entry.
type Concept struct {
	Slug     string `json:"slug"`
	Term     string `json:"term"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// Lesson is one curriculum unit.
type Lesson struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Level        string   `json:"level"` // beginner, intermediate, advanced
	Ordinal      int      `json:"ordinal"`
	ConceptSlugs []string `json:"concept_slugs"`
}
