package mistakes

import (
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/subject"
)

func record(topic string, ts time.Time) Record {
	return Record{
		Topic:         topic,
		QuestionText:  "2 + 2 = ?",
		CorrectAnswer: "4",
		WrongAnswer:   "5",
		Grade:         subject.Grade1,
		Difficulty:    subject.Easy,
		Timestamp:     ts.Format(time.RFC3339),
	}
}

func TestAppendEvictsOldestPastCap(t *testing.T) {
	l := NewLog(subject.Arithmetic, store.NewMemory())
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 60; i++ {
		r := record(fmt.Sprintf("topic-%d", i), base.Add(time.Duration(i)*time.Minute))
		l.Append(r)
	}

	if l.Len() != Cap {
		t.Fatalf("Len = %d, want %d", l.Len(), Cap)
	}
	all := l.All()
	if all[0].Topic != "topic-10" {
		t.Errorf("oldest surviving = %s, want topic-10", all[0].Topic)
	}
	if all[len(all)-1].Topic != "topic-59" {
		t.Errorf("newest = %s, want topic-59", all[len(all)-1].Topic)
	}
}

func TestQueryRangeInclusiveBoundaries(t *testing.T) {
	l := NewLog(subject.Arithmetic, store.NewMemory())
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	l.Append(record("before", base.Add(-time.Hour)))
	l.Append(record("start", base))
	l.Append(record("end", base.Add(time.Hour)))
	l.Append(record("after", base.Add(2*time.Hour)))

	got := l.QueryRange(base, base.Add(time.Hour))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Topic != "start" || got[1].Topic != "end" {
		t.Errorf("topics = %s, %s, want start, end", got[0].Topic, got[1].Topic)
	}
}

func TestRecordsWithoutTimestampExcludedFromRanges(t *testing.T) {
	l := NewLog(subject.Arithmetic, store.NewMemory())
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	l.Append(Record{Topic: "no-ts"})
	l.Append(Record{Topic: "bad-ts", Timestamp: "yesterday-ish"})
	l.Append(record("good", base))

	got := l.QueryRange(base.Add(-24*time.Hour), base.Add(24*time.Hour))
	if len(got) != 1 || got[0].Topic != "good" {
		t.Errorf("got %+v, want only the good record", got)
	}
	// Malformed records still count toward the log itself.
	if l.Len() != 3 {
		t.Errorf("Len = %d, want 3", l.Len())
	}
}

func TestCountByTopicKeepsMostRecentTimestamp(t *testing.T) {
	l := NewLog(subject.Arithmetic, store.NewMemory())
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	l.Append(record("fractions", base))
	l.Append(record("fractions", base.Add(2*time.Hour)))
	l.Append(record("fractions", base.Add(time.Hour)))
	l.Append(record("decimals", base))

	stats := l.CountByTopic(base, base.Add(3*time.Hour))
	if stats["fractions"].Count != 3 {
		t.Errorf("fractions count = %d, want 3", stats["fractions"].Count)
	}
	if !stats["fractions"].LastSeen.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("fractions lastSeen = %v, want %v", stats["fractions"].LastSeen, base.Add(2*time.Hour))
	}
	if stats["decimals"].Count != 1 {
		t.Errorf("decimals count = %d, want 1", stats["decimals"].Count)
	}
}

func TestClearEmptiesLog(t *testing.T) {
	kv := store.NewMemory()
	l := NewLog(subject.Arithmetic, kv)
	l.Append(record("fractions", time.Now()))

	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len after clear = %d, want 0", l.Len())
	}
	if NewLog(subject.Arithmetic, kv).Len() != 0 {
		t.Error("clear was not persisted")
	}
}

func TestLogSurvivesReload(t *testing.T) {
	kv := store.NewMemory()
	l := NewLog(subject.Geometry, kv)
	l.Append(record("angles", time.Now()))

	if NewLog(subject.Geometry, kv).Len() != 1 {
		t.Error("records lost on reload")
	}
}

func TestCorruptStateDegradesToEmpty(t *testing.T) {
	kv := store.NewMemory()
	kv.SetRaw("mistakes:geometry", []byte(`"oops"`))

	l := NewLog(subject.Geometry, kv)
	if l.Len() != 0 {
		t.Error("corrupt state did not degrade to empty")
	}
}
