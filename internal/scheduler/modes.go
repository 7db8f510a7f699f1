package scheduler

import (
	"math/rand"

	"github.com/abhisek/learnloop/internal/mistakes"
	"github.com/abhisek/learnloop/internal/subject"
)

// Graded-ramp boundaries: questions answered correctly this session before
// stepping up from easy, then from medium.
const (
	rampEasyBelow   = 5
	rampMediumBelow = 15
)

// FocusedParams biases generation toward previously missed content by
// substituting the topic, grade and difficulty recorded on a randomly
// chosen mistake. Falls back to the given params when the log is empty.
func FocusedParams(log *mistakes.Log, fallback Params, rng *rand.Rand) Params {
	records := log.All()
	if len(records) == 0 {
		return fallback
	}
	r := records[rng.Intn(len(records))]
	return Params{Topic: r.Topic, Grade: r.Grade, Difficulty: r.Difficulty}
}

// GradedDifficulty is the coarse stateless ramp: easy until five correct
// answers this session, medium until fifteen, then whatever the learner
// selected.
func GradedDifficulty(sessionCorrect int, selected subject.Difficulty) subject.Difficulty {
	switch {
	case sessionCorrect < rampEasyBelow:
		return subject.Easy
	case sessionCorrect < rampMediumBelow:
		return subject.Medium
	}
	return selected
}
