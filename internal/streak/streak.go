// Package streak maintains the calendar-continuity counter and its reward
// tiers. The counter survives same-day re-entry unchanged, grows by one on
// consecutive days, and resets to one after any gap.
package streak

import (
	"log/slog"
	"time"

	"github.com/abhisek/learnloop/internal/store"
	"github.com/abhisek/learnloop/internal/subject"
)

// RewardTier is the celebration level for a streak milestone.
type RewardTier string

const (
	RewardNone   RewardTier = ""
	RewardLow    RewardTier = "low"
	RewardMedium RewardTier = "medium"
	RewardHigh   RewardTier = "high"
	RewardTop    RewardTier = "top"
)

// Reward maps a streak length to its tier.
func Reward(streak int) RewardTier {
	switch {
	case streak >= 30:
		return RewardTop
	case streak >= 14:
		return RewardHigh
	case streak >= 7:
		return RewardMedium
	case streak >= 3:
		return RewardLow
	}
	return RewardNone
}

// State is the persisted streak record.
type State struct {
	StreakCount   int    `json:"streakCount"`
	LastActiveDay string `json:"lastActiveDay"` // day key, empty when never active
	LastShown     int    `json:"lastShown"`     // streak length last celebrated
}

// Tracker owns the streak state for one learner.
type Tracker struct {
	kv    store.KV
	state State
}

const stateKey = "streak"

// NewTracker loads streak state from kv, degrading to zero state.
func NewTracker(kv store.KV) *Tracker {
	t := &Tracker{kv: kv}
	if !kv.Get(stateKey, &t.state) {
		t.state = State{}
	}
	return t
}

// Current returns the streak state as of the last Touch.
func (t *Tracker) Current() State {
	return t.state
}

// Touch applies the continuity rules for "today" and returns the updated
// state plus the reward to surface, if any. Calling Touch more than once on
// the same day is a no-op beyond the first call. A reward is surfaced only
// when the new streak strictly exceeds the last celebrated one, so the same
// milestone is never announced twice.
func (t *Tracker) Touch(now time.Time) (State, RewardTier) {
	today := subject.DayKey(now)
	yesterday := subject.DayKey(now.AddDate(0, 0, -1))

	switch t.state.LastActiveDay {
	case today:
		// Same-day re-entry.
		return t.state, RewardNone
	case yesterday:
		t.state.StreakCount++
	default:
		// Gap or first-ever activity. Forget the old celebration mark so a
		// rebuilt streak earns its milestones again.
		t.state.StreakCount = 1
		t.state.LastShown = 0
	}
	t.state.LastActiveDay = today

	var reward RewardTier
	if t.state.StreakCount > t.state.LastShown {
		reward = Reward(t.state.StreakCount)
		t.state.LastShown = t.state.StreakCount
	}

	if err := t.kv.Set(stateKey, t.state); err != nil {
		slog.Debug("streak write failed", "error", err)
	}
	return t.state, reward
}
