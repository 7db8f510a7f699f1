// Package timetrack accumulates practice duration per subject, keyed by
// topic, grade, difficulty and local calendar day. It is the foundational
// data source for windowed progress reports.
package timetrack

import (
	"log/slog"
	"sort"
	"time"

	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/subject"
)

// SessionCap bounds the per-topic session list (FIFO eviction).
const SessionCap = 1000

// Session is one recorded practice interval, kept in the bounded per-topic
// list for mode computation and charting.
type Session struct {
	Topic      string             `json:"topic"`
	Grade      subject.Grade      `json:"grade"`
	Difficulty subject.Difficulty `json:"difficulty"`
	Seconds    int                `json:"seconds"`
	Timestamp  string             `json:"timestamp"` // RFC3339
}

// DailyBucket is the per-day fold of all practice on one subject.
// Invariant: TotalSeconds == sum of TopicSeconds.
type DailyBucket struct {
	TotalSeconds      int                        `json:"totalSeconds"`
	TopicSeconds      map[string]int             `json:"topicSeconds"`
	GradeSeconds      map[subject.Grade]int      `json:"gradeSeconds"`
	DifficultySeconds map[subject.Difficulty]int `json:"difficultySeconds"`
}

// TopicAccumulator is the lifetime fold for one topic.
type TopicAccumulator struct {
	TotalSeconds      int                        `json:"totalSeconds"`
	Sessions          []Session                  `json:"sessions"`
	GradeSeconds      map[subject.Grade]int      `json:"gradeSeconds"`
	DifficultySeconds map[subject.Difficulty]int `json:"difficultySeconds"`
}

type trackerState struct {
	Days   map[string]*DailyBucket      `json:"days"`
	Topics map[string]*TopicAccumulator `json:"topics"`
}

// Tracker records and aggregates practice time for a single subject.
// Single-writer: one interactive session owns a learner's data.
type Tracker struct {
	subj  subject.Subject
	kv    store.KV
	state trackerState
}

// New creates a tracker for subj, loading prior state from kv. Missing or
// corrupt stored state degrades to empty.
func New(subj subject.Subject, kv store.KV) *Tracker {
	t := &Tracker{subj: subj, kv: kv}
	if !kv.Get(t.key(), &t.state) {
		t.state = trackerState{}
	}
	if t.state.Days == nil {
		t.state.Days = make(map[string]*DailyBucket)
	}
	if t.state.Topics == nil {
		t.state.Topics = make(map[string]*TopicAccumulator)
	}
	return t
}

func (t *Tracker) key() string {
	return "timetrack:" + string(t.subj)
}

// Record folds one practice interval into today's daily bucket and the
// topic's lifetime accumulator. Non-positive durations and empty topics are
// ignored. Persistence is best-effort; a write failure never interrupts
// gameplay.
func (t *Tracker) Record(topic string, grade subject.Grade, difficulty subject.Difficulty, seconds int, now time.Time) {
	if seconds <= 0 || topic == "" {
		return
	}

	day := subject.DayKey(now)
	bucket := t.state.Days[day]
	if bucket == nil {
		bucket = &DailyBucket{
			TopicSeconds:      make(map[string]int),
			GradeSeconds:      make(map[subject.Grade]int),
			DifficultySeconds: make(map[subject.Difficulty]int),
		}
		t.state.Days[day] = bucket
	}
	bucket.TotalSeconds += seconds
	bucket.TopicSeconds[topic] += seconds
	bucket.GradeSeconds[grade] += seconds
	bucket.DifficultySeconds[difficulty] += seconds

	acc := t.state.Topics[topic]
	if acc == nil {
		acc = &TopicAccumulator{
			GradeSeconds:      make(map[subject.Grade]int),
			DifficultySeconds: make(map[subject.Difficulty]int),
		}
		t.state.Topics[topic] = acc
	}
	acc.TotalSeconds += seconds
	acc.GradeSeconds[grade] += seconds
	acc.DifficultySeconds[difficulty] += seconds
	acc.Sessions = append(acc.Sessions, Session{
		Topic:      topic,
		Grade:      grade,
		Difficulty: difficulty,
		Seconds:    seconds,
		Timestamp:  now.Format(time.RFC3339),
	})
	if len(acc.Sessions) > SessionCap {
		acc.Sessions = acc.Sessions[len(acc.Sessions)-SessionCap:]
	}

	if err := t.kv.Set(t.key(), t.state); err != nil {
		slog.Debug("time tracker write failed", "subject", t.subj, "error", err)
	}
}

// DayEntry is one day of the range query result, for time-series charting.
type DayEntry struct {
	Day          string         `json:"day"`
	TotalSeconds int            `json:"totalSeconds"`
	TopicSeconds map[string]int `json:"topicSeconds"`
}

// RangeResult aggregates all buckets whose day falls within the queried
// range, boundaries inclusive.
type RangeResult struct {
	TotalSeconds int            `json:"totalSeconds"`
	TopicSeconds map[string]int `json:"topicSeconds"`
	Days         []DayEntry     `json:"days"`
}

// QueryRange aggregates the buckets between start and end inclusive. Day
// keys are parsed back to local dates for comparison; keys that fail to
// parse are skipped. Days are returned in ascending order.
func (t *Tracker) QueryRange(start, end time.Time) RangeResult {
	res := RangeResult{TopicSeconds: make(map[string]int)}

	first, err := subject.ParseDayKey(subject.DayKey(start))
	if err != nil {
		return res
	}
	last, err := subject.ParseDayKey(subject.DayKey(end))
	if err != nil {
		return res
	}

	for key, bucket := range t.state.Days {
		day, err := subject.ParseDayKey(key)
		if err != nil {
			continue
		}
		if day.Before(first) || day.After(last) {
			continue
		}
		res.TotalSeconds += bucket.TotalSeconds
		for topic, secs := range bucket.TopicSeconds {
			res.TopicSeconds[topic] += secs
		}
		entry := DayEntry{Day: key, TotalSeconds: bucket.TotalSeconds, TopicSeconds: make(map[string]int, len(bucket.TopicSeconds))}
		for topic, secs := range bucket.TopicSeconds {
			entry.TopicSeconds[topic] = secs
		}
		res.Days = append(res.Days, entry)
	}

	sort.Slice(res.Days, func(i, j int) bool { return res.Days[i].Day < res.Days[j].Day })
	return res
}

// Sessions returns a copy of the bounded session list for topic.
func (t *Tracker) Sessions(topic string) []Session {
	acc := t.state.Topics[topic]
	if acc == nil {
		return nil
	}
	out := make([]Session, len(acc.Sessions))
	copy(out, acc.Sessions)
	return out
}

// Topics returns every topic with lifetime practice time, unordered.
func (t *Tracker) Topics() []string {
	topics := make([]string, 0, len(t.state.Topics))
	for topic := range t.state.Topics {
		topics = append(topics, topic)
	}
	return topics
}

// HasData reports whether any practice time has ever been recorded.
func (t *Tracker) HasData() bool {
	return len(t.state.Days) > 0
}
