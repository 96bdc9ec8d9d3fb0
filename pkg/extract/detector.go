package extract

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// executableMIMEs are native binary formats that must never be fed to the
// model as text.
var executableMIMEs = []string{
	"application/vnd.microsoft.portable-executable", // Windows PE
	"application/x-elf",                             // Linux ELF
	"application/x-mach-binary",                     // macOS Mach-O
	"application/x-msdownload",
	"application/x-sharedlib",
	"application/x-object",
}

// codeExtensions whitelists source and config files whose MIME often detects
// as generic text.
var codeExtensions = map[string]bool{
	".txt": true, ".md": true, ".rst": true, ".py": true, ".ipynb": true,
	".r": true, ".rb": true, ".pl": true, ".php": true, ".js": true,
	".mjs": true, ".cjs": true, ".ts": true, ".tsx": true, ".jsx": true,
	".java": true, ".kt": true, ".kts": true, ".scala": true, ".go": true,
	".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cc": true,
	".hh": true, ".cs": true, ".swift": true, ".rs": true, ".sql": true,
	".html": true, ".htm": true, ".xml": true, ".xhtml": true, ".css": true,
	".sass": true, ".scss": true, ".json": true, ".yaml": true, ".yml": true,
	".toml": true, ".ini": true, ".cfg": true, ".sh": true, ".bash": true,
	".zsh": true, ".ps1": true, ".bat": true, ".cmd": true, ".gradle": true,
	".dockerfile": true, ".env": true, ".csv": true,
}

// DetectMIME identifies content by its magic bytes, never by the filename.
func DetectMIME(raw []byte) *mimetype.MIME {
	return mimetype.Detect(raw)
}

// IsExecutable reports whether the detected type is a native binary.
func IsExecutable(m *mimetype.MIME) bool {
	for _, bad := range executableMIMEs {
		if m.Is(bad) {
			return true
		}
	}
	return false
}

// IsTexty reports whether content with this MIME and filename can be read as
// plain text. Any type descending from text/plain qualifies, as do known
// source-file extensions.
func IsTexty(m *mimetype.MIME, originalName string) bool {
	for cur := m; cur != nil; cur = cur.Parent() {
		if cur.Is("text/plain") {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	return codeExtensions[ext]
}
