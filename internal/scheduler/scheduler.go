// Package scheduler picks the next exercise from an opaque content
// generator while enforcing no-immediate-repeat semantics over a bounded
// sliding window of recently seen questions.
package scheduler

import (
	"log/slog"
	"strings"

	"github.com/abhisek/learnloop/internal/subject"
)

// Defaults for the dedup window and the retry budget.
const (
	DefaultCap         = 60
	DefaultMaxAttempts = 50
)

// Params are the generation inputs the core controls. Everything else about
// content generation is the collaborator's business.
type Params struct {
	Topic      string
	Grade      subject.Grade
	Difficulty subject.Difficulty
}

// Question is the minimal contract with the content generator.
type Question struct {
	Text          string   `json:"questionText"`
	CorrectAnswer string   `json:"correctAnswer"`
	Answers       []string `json:"answers"`
}

// Generator produces a candidate question. Randomized output is expected;
// determinism is not part of the contract.
type Generator interface {
	Generate(p Params) Question
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(p Params) Question

// Generate calls f.
func (f GeneratorFunc) Generate(p Params) Question { return f(p) }

// History is the bounded FIFO of recently seen question keys. The zero
// value is ready to use.
type History struct {
	Keys []string `json:"keys"`
}

// Contains reports whether key is in the window.
func (h History) Contains(key string) bool {
	for _, k := range h.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// push appends key, evicting the oldest entry past cap.
func (h History) push(key string, cap int) History {
	keys := append(append([]string(nil), h.Keys...), key)
	if cap > 0 && len(keys) > cap {
		keys = keys[len(keys)-cap:]
	}
	return History{Keys: keys}
}

// Key canonicalizes question text for dedup: case-insensitive, whitespace
// collapsed.
func Key(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Next produces a question not seen within the history window, retrying the
// generator up to maxAttempts times. When the retry budget is exhausted the
// history is reset and the last candidate is accepted anyway, so the game
// never stalls on a content pool smaller than the dedup window. That reset
// is logged as a diagnostic; it is not an error.
func Next(gen Generator, p Params, hist History, cap, maxAttempts int) (Question, History) {
	if cap <= 0 {
		cap = DefaultCap
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var last Question
	for attempt := 0; attempt < maxAttempts; attempt++ {
		last = gen.Generate(p)
		key := Key(last.Text)
		if !hist.Contains(key) {
			return last, hist.push(key, cap)
		}
	}

	slog.Warn("question dedup window reset: content pool may be smaller than the window",
		"topic", p.Topic, "cap", cap, "attempts", maxAttempts)
	return last, History{}.push(Key(last.Text), cap)
}
