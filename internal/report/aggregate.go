package report

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/learnloop/internal/mistakes"
	"github.com/abhisek/learnloop/internal/progress"
	"github.com/abhisek/learnloop/internal/subject"
	"github.com/abhisek/learnloop/internal/timetrack"
)

// Unavailable marks a snapshot field that could not be derived from the
// window's data. Kept as a sentinel string so report rendering stays total.
const Unavailable = "unavailable"

// TopicSnapshot is the unified per-topic view of one reporting window.
// Derived on demand, never persisted.
type TopicSnapshot struct {
	Subject              subject.Subject `json:"subject"`
	Topic                string          `json:"topic"`
	Questions            int             `json:"questions"`
	Correct              int             `json:"correct"`
	Accuracy             int             `json:"accuracy"` // rounded percent
	TimeMinutes          float64         `json:"timeMinutes"`
	MostCommonGrade      string          `json:"mostCommonGrade"`
	MostCommonDifficulty string          `json:"mostCommonDifficulty"`
}

// AccuracyPercent computes the rounded accuracy for a question/correct
// pair, defined as 0 when no questions were answered. Recomputing from the
// same pair always yields the same percent.
func AccuracyPercent(questions, correct int) int {
	if questions == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(questions) * 100))
}

// DayActivity is one day of the cross-subject activity chart.
type DayActivity struct {
	Day            string                  `json:"day"`
	TotalSeconds   int                     `json:"totalSeconds"`
	SubjectSeconds map[subject.Subject]int `json:"subjectSeconds"`
}

// SubjectInput is one subject's telemetry for the window: lifetime progress
// counters, the time tracker's windowed range result, windowed mistake
// stats, and the session records used for grade/difficulty modes.
type SubjectInput struct {
	Subject      subject.Subject
	Counters     map[string]progress.Counter
	TimeRange    timetrack.RangeResult
	HasTimeData  bool
	Sessions     map[string][]timetrack.Session
	MistakeStats map[string]mistakes.TopicStats
}

// Aggregate rolls all subjects' telemetry up into per-topic snapshots and a
// cross-subject daily series. Topics with no windowed activity are omitted;
// a subject with no time-series data at all falls back to its lifetime
// counters so a report is never silently empty. An inverted window yields
// an empty aggregate, not an error.
type AggregateResult struct {
	Topics []TopicSnapshot `json:"topics"`
	Daily  []DayActivity   `json:"daily"`
}

// Aggregate computes the unified snapshot for one window.
func Aggregate(inputs []SubjectInput, w Window) AggregateResult {
	var res AggregateResult
	if !w.Valid() {
		return res
	}

	for _, in := range inputs {
		for _, topic := range topicsFor(in) {
			counter := in.Counters[topic]
			minutes := float64(in.TimeRange.TopicSeconds[topic]) / 60

			if counter.TotalAnswered == 0 && minutes == 0 {
				continue
			}

			grade, difficulty := topicModes(in.Sessions[topic], w)
			res.Topics = append(res.Topics, TopicSnapshot{
				Subject:              in.Subject,
				Topic:                topic,
				Questions:            counter.TotalAnswered,
				Correct:              counter.TotalCorrect,
				Accuracy:             AccuracyPercent(counter.TotalAnswered, counter.TotalCorrect),
				TimeMinutes:          minutes,
				MostCommonGrade:      grade,
				MostCommonDifficulty: difficulty,
			})
		}
	}

	sort.Slice(res.Topics, func(i, j int) bool {
		if res.Topics[i].Subject != res.Topics[j].Subject {
			return res.Topics[i].Subject < res.Topics[j].Subject
		}
		return res.Topics[i].Topic < res.Topics[j].Topic
	})

	res.Daily = dailySeries(inputs)
	return res
}

// topicsFor selects the topics with windowed activity. When the subject has
// no time-series data at all, lifetime counters stand in so the subject is
// not silently dropped.
func topicsFor(in SubjectInput) []string {
	seen := make(map[string]bool)
	var topics []string
	for topic := range in.TimeRange.TopicSeconds {
		if !seen[topic] {
			seen[topic] = true
			topics = append(topics, topic)
		}
	}
	if !in.HasTimeData {
		for topic := range in.Counters {
			if !seen[topic] {
				seen[topic] = true
				topics = append(topics, topic)
			}
		}
	}
	sort.Strings(topics)
	return topics
}

// topicModes tallies grade and difficulty occurrences across the topic's
// windowed sessions and returns the modes, ties broken by first encounter.
// Sessions outside the window are used only when none fall inside it.
func topicModes(sessions []timetrack.Session, w Window) (grade, difficulty string) {
	windowed := sessions[:0:0]
	for _, s := range sessions {
		ts, err := time.Parse(time.RFC3339, s.Timestamp)
		if err != nil {
			continue
		}
		if ts.Before(w.Start) || ts.After(w.End) {
			continue
		}
		windowed = append(windowed, s)
	}
	if len(windowed) == 0 {
		windowed = sessions
	}

	grades := make([]string, 0, len(windowed))
	difficulties := make([]string, 0, len(windowed))
	for _, s := range windowed {
		grades = append(grades, string(s.Grade))
		difficulties = append(difficulties, string(s.Difficulty))
	}
	return mode(grades), mode(difficulties)
}

// mode returns the most frequent value, first-encountered winning ties, or
// the Unavailable sentinel for empty input.
func mode(values []string) string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best := Unavailable
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// dailySeries unions the day keys present across all subjects' windowed
// buckets, filling missing subjects with zero, for cross-subject charts.
func dailySeries(inputs []SubjectInput) []DayActivity {
	byDay := make(map[string]*DayActivity)
	for _, in := range inputs {
		for _, entry := range in.TimeRange.Days {
			day := byDay[entry.Day]
			if day == nil {
				day = &DayActivity{Day: entry.Day, SubjectSeconds: make(map[subject.Subject]int)}
				byDay[entry.Day] = day
			}
			day.SubjectSeconds[in.Subject] += entry.TotalSeconds
			day.TotalSeconds += entry.TotalSeconds
		}
	}

	var days []DayActivity
	for _, day := range byDay {
		for _, in := range inputs {
			if _, ok := day.SubjectSeconds[in.Subject]; !ok {
				day.SubjectSeconds[in.Subject] = 0
			}
		}
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}
