package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/learnloop/internal/mistakes"
	"github.com/abhisek/learnloop/internal/subject"
)

// Tier is the priority class of a recommendation.
type Tier string

const (
	TierSuccess Tier = "success"
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierLow     Tier = "low"
)

// tierRank orders tiers for display, highest priority first.
var tierRank = map[Tier]int{
	TierSuccess: 0,
	TierHigh:    1,
	TierMedium:  2,
	TierLow:     3,
}

// Rank returns the tier's display priority; lower sorts first.
func (t Tier) Rank() int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return len(tierRank)
}

// Recommendation codes identify the rule that fired, independent of the
// human-readable message.
const (
	CodePromote      = "promote"
	CodeInsufficient = "insufficient_data"
	CodeNeedsWork    = "needs_practice"
	CodeImproving    = "improving"
	CodeSteady       = "steady"
	CodeMoreVolume   = "more_volume"
)

// Recommendation is one tiered, explainable piece of advice for a topic.
type Recommendation struct {
	Topic        string          `json:"topic"`
	Subject      subject.Subject `json:"subject"`
	Tier         Tier            `json:"tier"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	PriorityRank int             `json:"priorityRank"`
}

// Classify produces one recommendation for a topic that had activity in the
// window. Rules are tested in a fixed order: promotion first (a topic that
// clears the full bar promotes even when the raw question count alone would
// look sparse), then the insufficient-signal guard, then needs-practice,
// improving, steady, and finally the more-volume fallback.
func Classify(s TopicSnapshot, mstats mistakes.TopicStats, cfg Thresholds) Recommendation {
	rec := Recommendation{Topic: s.Topic, Subject: s.Subject}
	evidence := fmt.Sprintf("%d%% accuracy over %d questions, %.0f min practiced",
		s.Accuracy, s.Questions, s.TimeMinutes)

	switch {
	case s.Accuracy >= cfg.PromoteAccuracy && s.Questions >= cfg.PromoteQuestions && s.TimeMinutes >= cfg.PromoteMinutes:
		rec.Tier = TierSuccess
		rec.Code = CodePromote
		rec.Message = promotionMessage(s, cfg, evidence)

	case s.Questions < cfg.MinQuestions || s.TimeMinutes < cfg.MinMinutes:
		rec.Tier = TierMedium
		rec.Code = CodeInsufficient
		rec.Message = fmt.Sprintf("Not enough data to judge %s yet: %s. Keep playing for a clearer picture.",
			s.Topic, evidence)

	case (s.Accuracy < cfg.StruggleAccuracy && s.Questions >= cfg.MinQuestions) || mstats.Count >= cfg.StruggleMistakes:
		rec.Tier = TierHigh
		rec.Code = CodeNeedsWork
		rec.Message = fmt.Sprintf("%s needs practice (%s): %s.",
			s.Topic, strings.Join(struggleReasons(s, mstats, cfg), "; "), evidence)

	case s.Accuracy < cfg.ImproveAccuracy:
		rec.Tier = TierMedium
		rec.Code = CodeImproving
		rec.Message = fmt.Sprintf("%s is improving: %s. Keep at it.", s.Topic, evidence)

	case s.Accuracy >= cfg.SteadyAccuracy && s.Questions >= cfg.SteadyQuestions && s.TimeMinutes >= cfg.SteadyMinutes:
		rec.Tier = TierLow
		rec.Code = CodeSteady
		rec.Message = fmt.Sprintf("%s looks solid: %s.", s.Topic, evidence)

	default:
		rec.Tier = TierMedium
		rec.Code = CodeMoreVolume
		rec.Message = fmt.Sprintf("%s shows promise (%s) but needs more questions and practice time before stepping up difficulty.",
			s.Topic, evidence)
	}

	rec.PriorityRank = rec.Tier.Rank()
	return rec
}

// promotionMessage names the step-ups the promotion earns: difficulty when
// not yet at the hardest setting, grade when difficulty is already maxed or
// the stricter super bar is cleared. Neither applying still yields praise.
func promotionMessage(s TopicSnapshot, cfg Thresholds, evidence string) string {
	difficulty := subject.Difficulty(s.MostCommonDifficulty)
	grade := subject.Grade(s.MostCommonGrade)

	knownDifficulty := s.MostCommonDifficulty != Unavailable && s.MostCommonDifficulty != ""
	superBar := s.Accuracy >= cfg.SuperAccuracy && s.Questions >= cfg.SuperQuestions && s.TimeMinutes >= cfg.SuperMinutes

	var steps []string
	if knownDifficulty && !subject.IsHardest(difficulty) {
		next, _ := subject.NextDifficulty(difficulty)
		steps = append(steps, fmt.Sprintf("try %s difficulty", next))
	}
	if (knownDifficulty && subject.IsHardest(difficulty)) || superBar {
		if next, ok := subject.NextGrade(grade); ok {
			steps = append(steps, fmt.Sprintf("move up to grade %s material", next))
		}
	}

	if len(steps) == 0 {
		return fmt.Sprintf("%s is going great: %s.", s.Topic, evidence)
	}
	return fmt.Sprintf("%s is mastered (%s): %s.", s.Topic, evidence, strings.Join(steps, " and "))
}

// struggleReasons composes the additive sub-reasons for a needs-practice
// recommendation.
func struggleReasons(s TopicSnapshot, mstats mistakes.TopicStats, cfg Thresholds) []string {
	var reasons []string
	if s.Accuracy < cfg.StruggleAccuracy {
		reasons = append(reasons, fmt.Sprintf("accuracy is low at %d%%", s.Accuracy))
	}
	if mstats.Count >= cfg.StruggleMistakes {
		reasons = append(reasons, fmt.Sprintf("%d recent mistakes", mstats.Count))
	}
	if s.TimeMinutes < cfg.SteadyMinutes {
		reasons = append(reasons, fmt.Sprintf("only %.0f min practiced", s.TimeMinutes))
	}
	return reasons
}

// ClassifyAll runs the classifier over every snapshot and returns the
// merged list sorted by tier priority.
func ClassifyAll(snaps []TopicSnapshot, mistakeStats map[subject.Subject]map[string]mistakes.TopicStats, cfg Thresholds) []Recommendation {
	recs := make([]Recommendation, 0, len(snaps))
	for _, s := range snaps {
		recs = append(recs, Classify(s, mistakeStats[s.Subject][s.Topic], cfg))
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PriorityRank < recs[j].PriorityRank
	})
	return recs
}
