package prompt

import "strings"

// Before bounds the code preceding the cursor to max characters, keeping the
// most recent text. The cut snaps forward to the next line boundary when that
// still retains at least half the budget; otherwise the raw cut is marked
// with a "..." prefix.
func Before(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}

	cut := text[len(text)-max:]
	if idx := strings.IndexByte(cut, '\n'); idx >= 0 && len(cut)-idx-1 >= max/2 {
		return cut[idx+1:]
	}
	return "..." + cut
}

// After bounds the code following the cursor to max characters, keeping the
// nearest text. Symmetric to Before: snap back to the previous line boundary
// when enough remains, otherwise mark the cut with a "..." suffix.
func After(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}

	cut := text[:max]
	if idx := strings.LastIndexByte(cut, '\n'); idx >= 0 && idx >= max/2 {
		return cut[:idx]
	}
	return cut + "..."
}
