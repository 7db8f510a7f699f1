// Package mistakes keeps a bounded append-only log of incorrect answers per
// subject, feeding focused practice and the "recently struggling" signals in
// progress reports.
package mistakes

import (
	"log/slog"
	"time"

	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/subject"
)

// Cap bounds the log; the oldest record is evicted first.
const Cap = 50

// Record is one incorrect answer.
type Record struct {
	Subject       subject.Subject    `json:"subject"`
	Topic         string             `json:"topic"`
	QuestionText  string             `json:"questionText"`
	CorrectAnswer string             `json:"correctAnswer"`
	WrongAnswer   string             `json:"wrongAnswer"`
	Grade         subject.Grade      `json:"grade"`
	Difficulty    subject.Difficulty `json:"difficulty"`
	Timestamp     string             `json:"timestamp"` // RFC3339; may be absent on malformed records
}

// Time parses the record timestamp. ok is false when the timestamp is
// missing or unparseable; such records belong to no range.
func (r Record) Time() (time.Time, bool) {
	if r.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TopicStats aggregates mistakes for one topic within a range.
type TopicStats struct {
	Count    int       `json:"count"`
	LastSeen time.Time `json:"lastSeen"`
}

// Log is the bounded mistake log for one subject.
type Log struct {
	subj    subject.Subject
	kv      store.KV
	cap     int
	records []Record
}

// NewLog creates a mistake log for subj, loading prior records from kv.
func NewLog(subj subject.Subject, kv store.KV) *Log {
	l := &Log{subj: subj, kv: kv, cap: Cap}
	if !kv.Get(l.key(), &l.records) {
		l.records = nil
	}
	if len(l.records) > l.cap {
		l.records = l.records[len(l.records)-l.cap:]
	}
	return l
}

func (l *Log) key() string {
	return "mistakes:" + string(l.subj)
}

// Append records a mistake, evicting the oldest when the cap is exceeded.
// Always succeeds; persistence is best-effort.
func (l *Log) Append(r Record) {
	r.Subject = l.subj
	l.records = append(l.records, r)
	if len(l.records) > l.cap {
		l.records = l.records[len(l.records)-l.cap:]
	}
	if err := l.kv.Set(l.key(), l.records); err != nil {
		slog.Debug("mistake log write failed", "subject", l.subj, "error", err)
	}
}

// All returns a copy of the current records, oldest first.
func (l *Log) All() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records currently held.
func (l *Log) Len() int {
	return len(l.records)
}

// QueryRange returns the records whose timestamp falls within [start, end]
// inclusive. Records without a usable timestamp are excluded.
func (l *Log) QueryRange(start, end time.Time) []Record {
	var out []Record
	for _, r := range l.records {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CountByTopic aggregates mistake counts per topic within the range, keeping
// the most recent timestamp per topic for recency signals.
func (l *Log) CountByTopic(start, end time.Time) map[string]TopicStats {
	stats := make(map[string]TopicStats)
	for _, r := range l.QueryRange(start, end) {
		ts, _ := r.Time()
		s := stats[r.Topic]
		s.Count++
		if ts.After(s.LastSeen) {
			s.LastSeen = ts
		}
		stats[r.Topic] = s
	}
	return stats
}

// Clear empties the log. Explicit and irreversible.
func (l *Log) Clear() {
	l.records = nil
	if err := l.kv.Set(l.key(), l.records); err != nil {
		slog.Debug("mistake log clear failed", "subject", l.subj, "error", err)
	}
}
