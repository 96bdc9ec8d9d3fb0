package extract

import (
	"strings"
	"testing"
)

func TestTextFromBytesPlainText(t *testing.T) {
	got, err := TextFromBytes([]byte("hello world\nsecond line\n"), "notes.txt")
	if err != nil {
		t.Fatalf("TextFromBytes() error = %v", err)
	}
	if got != "hello world\nsecond line\n" {
		t.Errorf("TextFromBytes() = %q", got)
	}
}

func TestTextFromBytesSourceCode(t *testing.T) {
	src := "package main\n\nfunc main() {}\n"
	got, err := TextFromBytes([]byte(src), "main.go")
	if err != nil {
		t.Fatalf("TextFromBytes() error = %v", err)
	}
	if got != src {
		t.Errorf("TextFromBytes() = %q", got)
	}
}

func TestTextFromBytesEmpty(t *testing.T) {
	got, err := TextFromBytes(nil, "empty.txt")
	if err != nil || got != "" {
		t.Errorf("TextFromBytes(nil) = (%q, %v), want empty and no error", got, err)
	}
}

func TestTextFromBytesBlocksExecutable(t *testing.T) {
	// Minimal ELF header: magic plus enough of the ident block to classify.
	elf := append([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}, make([]byte, 56)...)

	// Renaming the binary must not get it past the byte-based sniffing.
	_, err := TextFromBytes(elf, "innocent.txt")
	if err == nil {
		t.Fatal("ELF content should be blocked")
	}
	if !strings.Contains(err.Error(), "blocked") {
		t.Errorf("error = %v, want a blocked-executable error", err)
	}
}

func TestTextFromBytesRejectsUnknownBinary(t *testing.T) {
	// PNG magic: binary, but not an executable.
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	_, err := TextFromBytes(png, "image.png")
	if err == nil {
		t.Fatal("non-text binary should be rejected")
	}
	if !strings.Contains(err.Error(), "unsupported binary format") {
		t.Errorf("error = %v, want an unsupported-format error", err)
	}
}

func TestTextFromBytesRepairsInvalidUTF8(t *testing.T) {
	raw := []byte("valid \xff tail")
	got, err := TextFromBytes(raw, "data.txt")
	if err != nil {
		t.Fatalf("TextFromBytes() error = %v", err)
	}
	if !strings.Contains(got, "�") {
		t.Errorf("TextFromBytes() = %q, invalid bytes should be replaced", got)
	}
	if !strings.HasPrefix(got, "valid ") || !strings.HasSuffix(got, " tail") {
		t.Errorf("TextFromBytes() = %q, surrounding text should survive", got)
	}
}
