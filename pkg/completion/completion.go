// Package completion implements the code-completion engine: prompt shaping,
// response cleanup, confidence scoring and a bounded in-process result cache.
package completion

import (
	"strings"
	"time"
)

// Mode distinguishes the two completion surfaces the editor exposes.
type Mode string

const (
	// ModeInline is the ghost-text completion shown while typing. It favors
	// latency: terse prompt, short results.
	ModeInline Mode = "inline"
	// ModeMenu is the explicit completion-list request. It gets the fuller
	// prompt with best-practices instructions.
	ModeMenu Mode = "menu"
)

// HitConfidence is the fixed confidence reported for cache hits. A cached
// completion already survived post-processing once, so it outranks a fresh
// base-confidence result.
const HitConfidence = 0.9

// slowInline is the latency above which an inline completion is likely to
// arrive after the user has already typed past the cursor.
const slowInline = 2 * time.Second

// ParseMode maps the request's mode flag. Anything that is not explicitly
// inline, including an absent flag, gets the menu treatment.
func ParseMode(s string) Mode {
	if Mode(s) == ModeInline {
		return ModeInline
	}
	return ModeMenu
}

// Score computes the confidence for a freshly generated completion.
// Trivially short results score zero so the editor discards them.
func Score(text string, mode Mode, latency time.Duration) float64 {
	if len(strings.TrimSpace(text)) <= 5 {
		return 0.0
	}

	confidence := 0.8
	if len(text) > 20 {
		confidence += 0.1
	}
	if mode == ModeInline && latency > slowInline {
		confidence -= 0.1
	}

	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}
