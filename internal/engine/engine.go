// Package engine wires the telemetry components into the single-actor core
// the presentation layer talks to: session lifecycle, answer fan-out,
// question scheduling and report building.
package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnloop/internal/mistakes"
	"github.com/abhisek/learnloop/internal/progress"
	"github.com/abhisek/learnloop/internal/report"
	"github.com/abhisek/learnloop/internal/scheduler"
	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/streak"
	"github.com/abhisek/learnloop/internal/subject"
	"github.com/abhisek/learnloop/internal/timetrack"
)

// Engine is the composition root. One engine per learner device; single
// writer, no concurrent sessions.
type Engine struct {
	kv         store.KV
	trackers   map[subject.Subject]*timetrack.Tracker
	logs       map[subject.Subject]*mistakes.Log
	streak     *streak.Tracker
	progress   *progress.Store
	thresholds report.Thresholds
	rng        *rand.Rand
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithThresholds overrides the classifier thresholds.
func WithThresholds(t report.Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithRand overrides the random source used by focused-mistake scheduling.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// New builds an engine over the given store, loading all per-subject state.
// Corrupt or missing stored state degrades to empty.
func New(kv store.KV, opts ...Option) *Engine {
	e := &Engine{
		kv:         kv,
		trackers:   make(map[subject.Subject]*timetrack.Tracker),
		logs:       make(map[subject.Subject]*mistakes.Log),
		streak:     streak.NewTracker(kv),
		progress:   progress.NewStore(kv),
		thresholds: report.DefaultThresholds(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
	for _, subj := range subject.All() {
		e.trackers[subj] = timetrack.New(subj, kv)
		e.logs[subj] = mistakes.NewLog(subj, kv)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session is one interactive play session.
type Session struct {
	ID        string
	StartedAt time.Time
	Streak    streak.State
	Reward    streak.RewardTier

	correct int
	history scheduler.History
}

// CorrectCount returns the number of correct answers this session. Drives
// the graded difficulty ramp.
func (s *Session) CorrectCount() int {
	return s.correct
}

// StartSession opens a new session, applying the streak continuity update.
// Repeated starts on the same calendar day leave the streak unchanged.
func (e *Engine) StartSession() *Session {
	now := e.now()
	state, reward := e.streak.Touch(now)
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: now,
		Streak:    state,
		Reward:    reward,
	}
}

// Answer is one answered exercise, reported by the presentation layer.
type Answer struct {
	Subject         subject.Subject
	Topic           string
	Grade           subject.Grade
	Difficulty      subject.Difficulty
	QuestionText    string
	CorrectAnswer   string
	GivenAnswer     string
	Correct         bool
	DurationSeconds int
}

// RecordAnswer fans the event out to the time tracker, the progress
// reducer and, for wrong answers, the subject's mistake log. Persistence
// inside each component is best-effort and never interrupts gameplay.
func (e *Engine) RecordAnswer(sess *Session, a Answer) {
	if !a.Subject.Valid() {
		return
	}
	now := e.now()

	e.trackers[a.Subject].Record(a.Topic, a.Grade, a.Difficulty, a.DurationSeconds, now)
	e.progress.Record(progress.Event{Subject: a.Subject, Topic: a.Topic, Correct: a.Correct})

	if a.Correct {
		if sess != nil {
			sess.correct++
		}
		return
	}
	e.logs[a.Subject].Append(mistakes.Record{
		Topic:         a.Topic,
		QuestionText:  a.QuestionText,
		CorrectAnswer: a.CorrectAnswer,
		WrongAnswer:   a.GivenAnswer,
		Grade:         a.Grade,
		Difficulty:    a.Difficulty,
		Timestamp:     now.Format(time.RFC3339),
	})
}

// NextQuestion picks the next exercise, enforcing the no-repeat window over
// this session's history.
func (e *Engine) NextQuestion(sess *Session, gen scheduler.Generator, p scheduler.Params) scheduler.Question {
	q, hist := scheduler.Next(gen, p, sess.history, scheduler.DefaultCap, scheduler.DefaultMaxAttempts)
	sess.history = hist
	return q
}

// NextFocused picks the next exercise in focused-mistake mode, biasing
// generation parameters toward a previously missed question.
func (e *Engine) NextFocused(sess *Session, subj subject.Subject, gen scheduler.Generator, fallback scheduler.Params) scheduler.Question {
	p := scheduler.FocusedParams(e.logs[subj], fallback, e.rng)
	return e.NextQuestion(sess, gen, p)
}

// NextGraded picks the next exercise in graded mode: the difficulty ramps
// with this session's correct count before honoring the learner's choice.
func (e *Engine) NextGraded(sess *Session, gen scheduler.Generator, p scheduler.Params) scheduler.Question {
	p.Difficulty = scheduler.GradedDifficulty(sess.correct, p.Difficulty)
	return e.NextQuestion(sess, gen, p)
}

// MistakeLog exposes a subject's mistake log for focused practice screens
// and the explicit clear action.
func (e *Engine) MistakeLog(subj subject.Subject) *mistakes.Log {
	return e.logs[subj]
}

// Progress returns the current progress state.
func (e *Engine) Progress() progress.State {
	return e.progress.State()
}

// BuildReport aggregates all subjects over the window and classifies every
// active topic. An inverted window yields an empty report body.
func (e *Engine) BuildReport(w report.Window) report.Report {
	inputs := make([]report.SubjectInput, 0, len(subject.All()))
	mistakeStats := make(map[subject.Subject]map[string]mistakes.TopicStats)

	for _, subj := range subject.All() {
		tracker := e.trackers[subj]
		rangeResult := tracker.QueryRange(w.Start, w.End)

		sessions := make(map[string][]timetrack.Session)
		for _, topic := range tracker.Topics() {
			sessions[topic] = tracker.Sessions(topic)
		}

		stats := e.logs[subj].CountByTopic(w.Start, w.End)
		mistakeStats[subj] = stats

		inputs = append(inputs, report.SubjectInput{
			Subject:      subj,
			Counters:     e.progress.State().Counters[subj],
			TimeRange:    rangeResult,
			HasTimeData:  tracker.HasData(),
			Sessions:     sessions,
			MistakeStats: stats,
		})
	}

	agg := report.Aggregate(inputs, w)
	recs := report.ClassifyAll(agg.Topics, mistakeStats, e.thresholds)

	state := e.progress.State()
	return report.Build(agg, recs, w, e.streak.Current().StreakCount, state.Level(), state.Badges)
}
