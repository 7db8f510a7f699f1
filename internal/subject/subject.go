// Package subject defines the learning domains and the ordered grade and
// difficulty scales shared by all telemetry components.
package subject

// Subject is a top-level learning domain.
type Subject string

const (
	Arithmetic Subject = "arithmetic"
	Geometry   Subject = "geometry"
	Language   Subject = "language"
	Science    Subject = "science"
	Civics     Subject = "civics"
	Geography  Subject = "geography"
)

// All returns every subject in display order.
func All() []Subject {
	return []Subject{Arithmetic, Geometry, Language, Science, Civics, Geography}
}

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	switch s {
	case Arithmetic, Geometry, Language, Science, Civics, Geography:
		return true
	}
	return false
}

// Difficulty is one step on the ordered easy/medium/hard scale.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// difficultyOrder is the promotion ladder, easiest first.
var difficultyOrder = []Difficulty{Easy, Medium, Hard}

// NextDifficulty returns the next harder difficulty and true, or the input
// and false when already at the hardest step.
func NextDifficulty(d Difficulty) (Difficulty, bool) {
	for i, cur := range difficultyOrder {
		if cur == d && i+1 < len(difficultyOrder) {
			return difficultyOrder[i+1], true
		}
	}
	return d, false
}

// IsHardest reports whether d is the top of the difficulty ladder.
func IsHardest(d Difficulty) bool {
	return d == difficultyOrder[len(difficultyOrder)-1]
}

// Grade is the learner's school-year band.
type Grade string

const (
	GradeK Grade = "k"
	Grade1 Grade = "1"
	Grade2 Grade = "2"
	Grade3 Grade = "3"
	Grade4 Grade = "4"
	Grade5 Grade = "5"
	Grade6 Grade = "6"
)

var gradeOrder = []Grade{GradeK, Grade1, Grade2, Grade3, Grade4, Grade5, Grade6}

// NextGrade returns the next grade band and true, or the input and false
// when already at the highest band.
func NextGrade(g Grade) (Grade, bool) {
	for i, cur := range gradeOrder {
		if cur == g && i+1 < len(gradeOrder) {
			return gradeOrder[i+1], true
		}
	}
	return g, false
}
