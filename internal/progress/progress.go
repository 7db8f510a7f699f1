// Package progress holds the per-topic answer counters and the XP, level
// and badge state. All mutation goes through the pure Apply reducer so the
// leveling logic is testable as a plain state transition.
package progress

import (
	"log/slog"

	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/subject"
)

// Counter tallies answers for one topic. Monotonic; only Reset decrements.
type Counter struct {
	TotalAnswered int `json:"totalAnswered"`
	TotalCorrect  int `json:"totalCorrect"`
}

// Event is one answered exercise.
type Event struct {
	Subject subject.Subject
	Topic   string
	Correct bool
}

// XP awarded per answer and per correct answer.
const (
	xpPerAnswer  = 2
	xpPerCorrect = 8
	xpPerLevel   = 500
)

// State is the full progress state. Treated as immutable by Apply.
type State struct {
	Counters map[subject.Subject]map[string]Counter `json:"counters"`
	XP       int                                    `json:"xp"`
	Badges   []string                               `json:"badges"`
}

// Level derives the learner level from accumulated XP.
func (s State) Level() int {
	return s.XP/xpPerLevel + 1
}

// Counter returns the counter for a subject/topic, zero when absent.
func (s State) Counter(subj subject.Subject, topic string) Counter {
	return s.Counters[subj][topic]
}

// TotalCorrect sums correct answers across all subjects and topics.
func (s State) TotalCorrect() int {
	total := 0
	for _, topics := range s.Counters {
		for _, c := range topics {
			total += c.TotalCorrect
		}
	}
	return total
}

// badgeMilestones maps lifetime correct-answer counts to badge names.
var badgeMilestones = []struct {
	correct int
	name    string
}{
	{10, "getting-started"},
	{100, "centurion"},
	{500, "scholar"},
}

// Apply folds one event into the state and returns the new state. The input
// state is not modified.
func Apply(s State, e Event) State {
	next := s
	next.Counters = make(map[subject.Subject]map[string]Counter, len(s.Counters))
	for subj, topics := range s.Counters {
		cp := make(map[string]Counter, len(topics))
		for topic, c := range topics {
			cp[topic] = c
		}
		next.Counters[subj] = cp
	}
	if next.Counters[e.Subject] == nil {
		next.Counters[e.Subject] = make(map[string]Counter)
	}

	c := next.Counters[e.Subject][e.Topic]
	c.TotalAnswered++
	next.XP = s.XP + xpPerAnswer
	if e.Correct {
		c.TotalCorrect++
		next.XP += xpPerCorrect
	}
	next.Counters[e.Subject][e.Topic] = c

	next.Badges = append([]string(nil), s.Badges...)
	totalCorrect := next.TotalCorrect()
	for _, m := range badgeMilestones {
		if totalCorrect >= m.correct && !hasBadge(next.Badges, m.name) {
			next.Badges = append(next.Badges, m.name)
		}
	}
	return next
}

func hasBadge(badges []string, name string) bool {
	for _, b := range badges {
		if b == name {
			return true
		}
	}
	return false
}

const stateKey = "progress"

// Store owns the persisted progress state for one learner.
type Store struct {
	kv    store.KV
	state State
}

// NewStore loads progress state from kv, degrading to empty.
func NewStore(kv store.KV) *Store {
	s := &Store{kv: kv}
	if !kv.Get(stateKey, &s.state) {
		s.state = State{}
	}
	return s
}

// State returns the current progress state.
func (s *Store) State() State {
	return s.state
}

// Record applies one answered exercise and persists best-effort.
func (s *Store) Record(e Event) State {
	s.state = Apply(s.state, e)
	s.persist()
	return s.state
}

// Reset clears the counter for one subject/topic. Explicit user action; XP
// and badges are kept.
func (s *Store) Reset(subj subject.Subject, topic string) {
	if topics, ok := s.state.Counters[subj]; ok {
		delete(topics, topic)
	}
	s.persist()
}

func (s *Store) persist() {
	if err := s.kv.Set(stateKey, s.state); err != nil {
		slog.Debug("progress write failed", "error", err)
	}
}
