package prompt

import (
	"strings"
	"testing"

	"ai-copilot-be/pkg/completion"
	"ai-copilot-be/pkg/completion/language"
)

func TestBefore(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{
			name: "under budget unchanged",
			text: "short",
			max:  100,
			want: "short",
		},
		{
			name: "exact budget unchanged",
			text: "12345",
			max:  5,
			want: "12345",
		},
		{
			name: "snaps to line boundary when enough remains",
			text: "aaaa\nbbbbbbbb",
			max:  10,
			want: "bbbbbbbb",
		},
		{
			name: "marks raw cut when boundary loses too much",
			text: "aaaaaaaaaa\nbb",
			max:  10,
			want: "...aaaaaaa\nbb",
		},
		{
			name: "no newline in window",
			text: "abcdefghij",
			max:  4,
			want: "...ghij",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Before(tt.text, tt.max); got != tt.want {
				t.Errorf("Before(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestAfter(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{
			name: "under budget unchanged",
			text: "short",
			max:  100,
			want: "short",
		},
		{
			name: "snaps back to line boundary when enough remains",
			text: "bbbbbbbb\naaaa",
			max:  10,
			want: "bbbbbbbb",
		},
		{
			name: "marks raw cut when boundary loses too much",
			text: "bb\naaaaaaaaaaaa",
			max:  10,
			want: "bb\naaaaaaa...",
		},
		{
			name: "no newline in window",
			text: "abcdefghij",
			max:  4,
			want: "abcd...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := After(tt.text, tt.max); got != tt.want {
				t.Errorf("After(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestBuilderMenuTemplate(t *testing.T) {
	b := NewBuilder(1200, 400)
	lang := language.Lookup("python")

	prompt := b.Build(lang, completion.ModeMenu, "def add(a, b):\n    return ", "\nprint(add(1, 2))", "")

	if !strings.Contains(prompt, CursorMarker) {
		t.Errorf("prompt missing cursor marker: %q", prompt)
	}
	if !strings.Contains(prompt, "def add(a, b):") {
		t.Error("prompt missing before context")
	}
	if !strings.Contains(prompt, "print(add(1, 2))") {
		t.Error("prompt missing after context")
	}
	if !strings.Contains(prompt, "best practices") {
		t.Error("menu prompt missing the best-practices instruction block")
	}
}

func TestBuilderInlineTemplate(t *testing.T) {
	b := NewBuilder(1200, 400)
	lang := language.Lookup("python")

	prompt := b.Build(lang, completion.ModeInline, "def add(a, b):\n    return ", "", "")

	if !strings.Contains(prompt, CursorMarker) {
		t.Errorf("prompt missing cursor marker: %q", prompt)
	}
	if !strings.Contains(prompt, lang.Instruction) {
		t.Error("inline prompt missing the language instruction")
	}
	if strings.Contains(prompt, "best practices") {
		t.Error("inline prompt should be the terse template")
	}
	if strings.Contains(prompt, "PROJECT CONTEXT") {
		t.Error("inline prompt should omit the project section when there is no context")
	}
}

func TestBuilderInlineTemplateWithProjectContext(t *testing.T) {
	b := NewBuilder(1200, 400)
	lang := language.Lookup("go")

	prompt := b.Build(lang, completion.ModeInline, "func main() {\n\t", "", "# FILE: main.go\npackage main")

	if !strings.Contains(prompt, "PROJECT CONTEXT:\n# FILE: main.go") {
		t.Error("inline prompt missing the supplied project context")
	}
}
