package language

import "testing"

func TestLookup(t *testing.T) {
	if got := Lookup("python"); got.Name != "python" {
		t.Errorf(`Lookup("python").Name = %q`, got.Name)
	}
	if got := Lookup("TypeScript"); got.Name != "typescript" {
		t.Errorf("lookup should be case-insensitive, got %q", got.Name)
	}
	if got := Lookup("brainfuck"); got.Name != "python" {
		t.Errorf("unknown language should fall back to python, got %q", got.Name)
	}
	if got := Lookup(""); got.Name != "python" {
		t.Errorf("empty language should fall back to python, got %q", got.Name)
	}
}

func TestContextsAreComplete(t *testing.T) {
	for _, name := range Supported() {
		ctx := Lookup(name)
		if ctx.Instruction == "" {
			t.Errorf("%s has no instruction", name)
		}
		if len(ctx.Patterns) == 0 {
			t.Errorf("%s has no patterns", name)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("go") {
		t.Error(`IsSupported("go") = false`)
	}
	if IsSupported("brainfuck") {
		t.Error(`IsSupported("brainfuck") = true`)
	}
}
