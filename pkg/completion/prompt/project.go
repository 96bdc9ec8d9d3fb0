package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// defaultExcludes matches build artifacts and VCS internals that add noise
// without adding signal.
var defaultExcludes = []string{
	"*.pyc", "__pycache__", "*.log", "*.tmp",
	"node_modules", ".git", "vendor", "dist",
}

// ProjectContextLoader reads the source files around the active file into a
// single bounded string so completions can reference sibling code. Results
// are cached per project root because editors fire completion requests far
// faster than project trees change.
type ProjectContextLoader struct {
	maxChars int
	cache    *cache.Cache
}

func NewProjectContextLoader(maxChars int, ttl time.Duration) *ProjectContextLoader {
	return &ProjectContextLoader{
		maxChars: maxChars,
		cache:    cache.New(ttl, 2*ttl),
	}
}

// Load returns the concatenated project context for the directory containing
// filePath. Missing or unreadable trees yield an empty context, never an
// error: project context is best-effort.
func (l *ProjectContextLoader) Load(filePath string) string {
	if filePath == "" {
		return ""
	}

	root, err := filepath.Abs(filepath.Dir(filePath))
	if err != nil {
		return ""
	}

	cacheKey := "project_context:" + root
	if cached, found := l.cache.Get(cacheKey); found {
		return cached.(string)
	}

	context := l.build(root)
	l.cache.Set(cacheKey, context, cache.DefaultExpiration)
	return context
}

func (l *ProjectContextLoader) build(root string) string {
	var parts []string
	total := 0

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && excluded(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded(name) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = name
		}

		part := fmt.Sprintf("\n# FILE: %s\n%s", rel, content)
		parts = append(parts, part)
		total += len(part)
		if total > l.maxChars {
			return filepath.SkipAll
		}
		return nil
	})

	context := strings.Join(parts, "")
	if len(context) > l.maxChars {
		context = context[:l.maxChars]
	}
	return context
}

func excluded(name string) bool {
	for _, pattern := range defaultExcludes {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
