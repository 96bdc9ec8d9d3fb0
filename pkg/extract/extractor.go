// Package extract turns uploaded attachments into model-readable text.
// Content sniffing is byte-based so a renamed executable cannot slip through.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextFromBytes extracts readable text from an uploaded file. Executables are
// rejected outright; unsupported binary formats return an error rather than
// garbage.
func TextFromBytes(raw []byte, originalName string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	m := DetectMIME(raw)

	if IsExecutable(m) {
		return "", fmt.Errorf("blocked: file appears to be a native executable (%s)", m.String())
	}

	if IsTexty(m, originalName) {
		return decodeText(raw), nil
	}

	return "", fmt.Errorf("unsupported binary format: %s", m.String())
}

// decodeText keeps valid UTF-8 as-is and replaces anything else rune by rune
// so one bad byte doesn't discard the whole file.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('�')
		} else {
			b.WriteRune(r)
		}
		raw = raw[size:]
	}
	return b.String()
}
