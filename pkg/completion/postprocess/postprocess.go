// Package postprocess cleans raw model output into an insertable code
// fragment. The pipeline is deterministic and idempotent: running Clean on
// its own output returns it unchanged.
package postprocess

import (
	"regexp"
	"strings"
)

// maxImbalance bounds bracket repair. A fragment missing more closers than
// this was cut mid-structure and is left alone rather than padded.
const maxImbalance = 8

var fenceRe = regexp.MustCompile("```[a-zA-Z0-9_]*\n?")

// boilerplatePrefixes are the chatty lead-ins models produce despite being
// told not to. At most one is stripped.
// Longer prefixes come first so "COMPLETION:" wins over "Complete".
var boilerplatePrefixes = []string{
	"Here's", "The completion", "COMPLETION:", "Complete",
	"Code:", "Answer:", "Result:", "Output:",
}

// explanationMarkers flag the start of prose trailing the code. Everything
// from the first marked line onward is dropped.
var explanationMarkers = []string{
	"this code", "explanation", "note:", "this will", "this is",
	"the above", "this function", "this creates", "this defines",
}

// Clean normalises a raw completion: code fences and boilerplate prefixes are
// stripped, trailing explanations are cut, continuation lines are aligned to
// the indentation at the cursor, and unbalanced brackets and quotes are
// closed. The result is capped at maxLength characters.
func Clean(raw, beforeText, languageName string, maxLength int) string {
	if raw == "" {
		return ""
	}

	completion := strings.TrimSpace(raw)
	completion = fenceRe.ReplaceAllString(completion, "")
	completion = strings.ReplaceAll(completion, "```", "")

	completion = stripBoilerplate(completion, languageName)
	completion = cutExplanation(completion)
	completion = alignToCursor(completion, beforeText)
	completion = closeBrackets(completion)
	completion = closeQuotes(completion)

	if len(completion) > maxLength {
		completion = completion[:maxLength]
	}
	return completion
}

func stripBoilerplate(completion, languageName string) string {
	prefixes := boilerplatePrefixes
	if languageName != "" {
		prefixes = append([]string{languageName + ":"}, prefixes...)
	}
	lower := strings.ToLower(completion)
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return strings.TrimSpace(completion[len(prefix):])
		}
	}
	return completion
}

func cutExplanation(completion string) string {
	lines := strings.Split(completion, "\n")
	kept := lines[:0]
	for _, line := range lines {
		lower := strings.ToLower(line)
		stop := false
		for _, marker := range explanationMarkers {
			if strings.Contains(lower, marker) {
				stop = true
				break
			}
		}
		if stop {
			break
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// alignToCursor re-indents continuation lines to match the line the cursor
// sits on, and drops a completion prefix that re-types that line. Lines
// already carrying the base indent are left untouched so the alignment can
// be re-applied safely.
func alignToCursor(completion, beforeText string) string {
	if beforeText == "" || completion == "" {
		return completion
	}

	beforeLines := strings.Split(beforeText, "\n")
	lastLine := beforeLines[len(beforeLines)-1]
	baseIndent := lastLine[:len(lastLine)-len(strings.TrimLeft(lastLine, " \t"))]

	if baseIndent != "" {
		lines := strings.Split(completion, "\n")
		for i := 1; i < len(lines); i++ {
			if lines[i] != "" && !strings.HasPrefix(lines[i], baseIndent) {
				lines[i] = baseIndent + lines[i]
			}
		}
		completion = strings.Join(lines, "\n")
	}

	typed := strings.TrimSpace(lastLine)
	if typed != "" && strings.HasPrefix(strings.ToLower(completion), strings.ToLower(typed)) {
		completion = strings.TrimLeft(completion[len(typed):], " \t\n\r")
	}
	return completion
}

// closeBrackets appends the closers for openers left unmatched at the end of
// the fragment, innermost first. Mismatched closers are ignored rather than
// repaired.
func closeBrackets(completion string) string {
	var stack []byte
	for i := 0; i < len(completion); i++ {
		switch c := completion[i]; c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) > 0 && stack[len(stack)-1] == opener(c) {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 || len(stack) > maxImbalance {
		return completion
	}

	closers := make([]byte, len(stack))
	for i, c := range stack {
		closers[len(stack)-1-i] = closer(c)
	}
	return completion + string(closers)
}

func closeQuotes(completion string) string {
	for _, q := range []string{`"`, `'`} {
		if strings.Count(completion, q)%2 != 0 {
			completion += q
		}
	}
	return completion
}

func opener(c byte) byte {
	switch c {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}

func closer(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}
