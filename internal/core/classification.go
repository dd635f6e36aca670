package core

import "strings"

// Tag is the semantic meaning attached to a category for productivity
// reporting. Categories without a tag contribute to the tracked total only.
type Tag string

const (
	TagExercise    Tag = "exercise"
	TagImprovement Tag = "improvement"
)

// Classification maps category names to their semantic tag. It is supplied by
// configuration; nothing in the engine hard-codes category meanings.
type Classification map[string]Tag

// NewClassification builds a classification from per-tag category name lists.
// Later lists win on duplicate names.
func NewClassification(exercise, improvement []string) Classification {
	c := make(Classification, len(exercise)+len(improvement))
	for _, name := range exercise {
		if name = strings.TrimSpace(name); name != "" {
			c[name] = TagExercise
		}
	}
	for _, name := range improvement {
		if name = strings.TrimSpace(name); name != "" {
			c[name] = TagImprovement
		}
	}
	return c
}

// Tag returns the tag for a category and whether one is assigned.
func (c Classification) Tag(category string) (Tag, bool) {
	tag, ok := c[category]
	return tag, ok
}

// ProductivityReport is the derived daily metric set: hours tracked, hours in
// tagged categories, and the ratio of tracked hours to hours elapsed since
// midnight. At the instant of midnight the ratio is undefined rather than a
// division by zero; Defined reports that.
type ProductivityReport struct {
	Date             string
	TrackedHours     float64
	ExerciseHours    float64
	ImprovementHours float64
	Ratio            float64
	Defined          bool
}
