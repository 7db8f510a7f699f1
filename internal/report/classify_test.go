package report

import (
	"strings"
	"testing"

	"github.com/abhisek/learnloop/internal/mistakes"
	"github.com/abhisek/learnloop/internal/subject"
)

func snap(accuracy, questions int, minutes float64, difficulty string) TopicSnapshot {
	// Derive a correct count that rounds back to the requested accuracy.
	correct := (accuracy*questions + 50) / 100
	return TopicSnapshot{
		Subject:              subject.Arithmetic,
		Topic:                "fractions",
		Questions:            questions,
		Correct:              correct,
		Accuracy:             accuracy,
		TimeMinutes:          minutes,
		MostCommonGrade:      string(subject.Grade3),
		MostCommonDifficulty: difficulty,
	}
}

func TestClassifyTiers(t *testing.T) {
	cfg := DefaultThresholds()

	tests := []struct {
		name     string
		snap     TopicSnapshot
		mistakes int
		wantTier Tier
		wantCode string
	}{
		{"promotion at easy difficulty", snap(95, 50, 25, "easy"), 0, TierSuccess, CodePromote},
		{"sparse data despite high accuracy", snap(95, 5, 2, "easy"), 0, TierMedium, CodeInsufficient},
		{"low accuracy with volume", snap(60, 20, 15, "easy"), 0, TierHigh, CodeNeedsWork},
		{"high mistake volume alone", snap(75, 30, 15, "easy"), 12, TierHigh, CodeNeedsWork},
		{"improving", snap(72, 20, 15, "easy"), 0, TierMedium, CodeImproving},
		{"steady", snap(88, 20, 12, "easy"), 0, TierLow, CodeSteady},
		{"good accuracy below volume bar", snap(90, 12, 6, "easy"), 0, TierMedium, CodeMoreVolume},
		{"accuracy between improve and steady bars", snap(82, 30, 20, "easy"), 0, TierMedium, CodeMoreVolume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Classify(tt.snap, mistakes.TopicStats{Count: tt.mistakes}, cfg)
			if rec.Tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", rec.Tier, tt.wantTier)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestPromotionStepUps(t *testing.T) {
	cfg := DefaultThresholds()

	t.Run("difficulty step-up only below hardest", func(t *testing.T) {
		rec := Classify(snap(95, 50, 25, "easy"), mistakes.TopicStats{}, cfg)
		if !strings.Contains(rec.Message, "medium difficulty") {
			t.Errorf("message %q does not suggest medium difficulty", rec.Message)
		}
		if strings.Contains(rec.Message, "grade") {
			t.Errorf("message %q suggests a grade step-up prematurely", rec.Message)
		}
	})

	t.Run("grade step-up once difficulty maxed", func(t *testing.T) {
		rec := Classify(snap(95, 50, 25, "hard"), mistakes.TopicStats{}, cfg)
		if !strings.Contains(rec.Message, "grade 4") {
			t.Errorf("message %q does not suggest grade 4", rec.Message)
		}
	})

	t.Run("super bar allows both step-ups", func(t *testing.T) {
		rec := Classify(snap(98, 90, 35, "medium"), mistakes.TopicStats{}, cfg)
		if !strings.Contains(rec.Message, "hard difficulty") || !strings.Contains(rec.Message, "grade 4") {
			t.Errorf("message %q should suggest both step-ups", rec.Message)
		}
	})

	t.Run("generic praise when no step applies", func(t *testing.T) {
		rec := Classify(snap(95, 50, 25, Unavailable), mistakes.TopicStats{}, cfg)
		if rec.Tier != TierSuccess {
			t.Fatalf("tier = %s, want success", rec.Tier)
		}
		if strings.Contains(rec.Message, "difficulty") || strings.Contains(rec.Message, "grade") {
			t.Errorf("message %q should be generic praise", rec.Message)
		}
	})
}

func TestPromotionBeatsInsufficientGuard(t *testing.T) {
	// A topic clearing the full promotion bar promotes even though the
	// guard would flag any of its inputs individually.
	cfg := DefaultThresholds()
	cfg.PromoteQuestions = 8 // tuned down below the sparse-data minimum

	rec := Classify(snap(95, 9, 25, "easy"), mistakes.TopicStats{}, cfg)
	if rec.Tier != TierSuccess {
		t.Errorf("tier = %s, want success (promotion is tested before the guard)", rec.Tier)
	}
}

func TestMessagesCarryNumericJustification(t *testing.T) {
	cfg := DefaultThresholds()
	for _, s := range []TopicSnapshot{
		snap(95, 50, 25, "easy"),
		snap(95, 5, 2, "easy"),
		snap(60, 20, 15, "easy"),
		snap(88, 20, 12, "easy"),
	} {
		rec := Classify(s, mistakes.TopicStats{}, cfg)
		for _, want := range []string{"accuracy", "questions", "min"} {
			if !strings.Contains(rec.Message, want) {
				t.Errorf("message %q missing %q", rec.Message, want)
			}
		}
	}
}

func TestStruggleReasonsCompose(t *testing.T) {
	cfg := DefaultThresholds()
	rec := Classify(snap(50, 20, 6, "easy"), mistakes.TopicStats{Count: 15}, cfg)
	if rec.Tier != TierHigh {
		t.Fatalf("tier = %s, want high", rec.Tier)
	}
	for _, want := range []string{"accuracy is low", "recent mistakes", "min practiced"} {
		if !strings.Contains(rec.Message, want) {
			t.Errorf("message %q missing reason %q", rec.Message, want)
		}
	}
}

func TestClassifyAllSortsByTierPriority(t *testing.T) {
	snaps := []TopicSnapshot{
		snap(88, 20, 12, "easy"), // low
		snap(95, 5, 2, "easy"),   // medium
		snap(60, 20, 15, "easy"), // high
		snap(95, 50, 25, "easy"), // success
	}
	recs := ClassifyAll(snaps, nil, DefaultThresholds())

	wantOrder := []Tier{TierSuccess, TierHigh, TierMedium, TierLow}
	for i, want := range wantOrder {
		if recs[i].Tier != want {
			t.Errorf("recs[%d].Tier = %s, want %s", i, recs[i].Tier, want)
		}
	}
	for i, rec := range recs {
		if rec.PriorityRank != rec.Tier.Rank() {
			t.Errorf("recs[%d] rank %d does not match tier %s", i, rec.PriorityRank, rec.Tier)
		}
	}
}
