// Package grades lists the grade levels sentences can be generated for.
package grades

import "slices"

const (
	Seventh = "7th Grade"
	Eighth  = "8th Grade"
)

// All is the display order of the supported grades.
var All = []string{Seventh, Eighth}

// Valid reports whether grade is one of the supported grades.
func Valid(grade string) bool {
	return slices.Contains(All, grade)
}
