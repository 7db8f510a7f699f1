// Package report turns raw practice telemetry into the parent-facing
// progress report: a windowed per-topic aggregate, tiered explainable
// recommendations, and achievement highlights.
package report

import (
	"fmt"

	"github.com/abhisek/learnloop/internal/subject"
)

// Summary is the headline block of a report.
type Summary struct {
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	TotalMinutes   float64 `json:"totalMinutes"`
	TotalQuestions int     `json:"totalQuestions"`
	TotalCorrect   int     `json:"totalCorrect"`
	Accuracy       int     `json:"accuracy"`
	ActiveDays     int     `json:"activeDays"`
	StreakDays     int     `json:"streakDays"`
	Level          int     `json:"level"`
}

// Achievement is one highlight for the achievements strip.
type Achievement struct {
	Kind   string `json:"kind"` // "streak", "badge" or "level"
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// Report is the read-only snapshot handed to the reporting consumer. Safe
// to serialize for display or export.
type Report struct {
	Summary          Summary                             `json:"summary"`
	PerSubjectTopics map[subject.Subject][]TopicSnapshot `json:"perSubjectTopics"`
	DailyActivity    []DayActivity                       `json:"dailyActivity"`
	Recommendations  []Recommendation                    `json:"recommendations"`
	Achievements     []Achievement                       `json:"achievements"`
}

// Build assembles the final report from an aggregate, its classified
// recommendations and the learner's continuity and leveling state.
func Build(agg AggregateResult, recs []Recommendation, w Window, streakDays, level int, badges []string) Report {
	r := Report{
		Summary: Summary{
			StartDate:  subject.DayKey(w.Start),
			EndDate:    subject.DayKey(w.End),
			ActiveDays: len(agg.Daily),
			StreakDays: streakDays,
			Level:      level,
		},
		PerSubjectTopics: make(map[subject.Subject][]TopicSnapshot),
		DailyActivity:    agg.Daily,
		Recommendations:  recs,
	}

	for _, snap := range agg.Topics {
		r.PerSubjectTopics[snap.Subject] = append(r.PerSubjectTopics[snap.Subject], snap)
		r.Summary.TotalMinutes += snap.TimeMinutes
		r.Summary.TotalQuestions += snap.Questions
		r.Summary.TotalCorrect += snap.Correct
	}
	r.Summary.Accuracy = AccuracyPercent(r.Summary.TotalQuestions, r.Summary.TotalCorrect)

	if streakDays >= 3 {
		r.Achievements = append(r.Achievements, Achievement{
			Kind:   "streak",
			Name:   fmt.Sprintf("%d-day streak", streakDays),
			Detail: fmt.Sprintf("Practiced %d days in a row", streakDays),
		})
	}
	for _, b := range badges {
		r.Achievements = append(r.Achievements, Achievement{Kind: "badge", Name: b})
	}
	if level > 1 {
		r.Achievements = append(r.Achievements, Achievement{
			Kind: "level",
			Name: fmt.Sprintf("level %d", level),
		})
	}
	return r
}
