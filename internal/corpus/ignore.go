package corpus

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the gitignore-syntax file read from the corpus root.
const IgnoreFileName = ".drdementabaseignore"

// Ignorer matches show files that should be left out of a build.
type Ignorer struct {
	rootPath string
	ignorer  *ignore.GitIgnore
}

// NewIgnorer loads the ignore file from rootPath, if present, and appends
// the extra patterns.
func NewIgnorer(rootPath string, extra ...string) (*Ignorer, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	ignorePath := filepath.Join(absPath, IgnoreFileName)
	var gi *ignore.GitIgnore
	if _, statErr := os.Stat(ignorePath); statErr == nil {
		gi, err = ignore.CompileIgnoreFileAndLines(ignorePath, extra...)
		if err != nil {
			return nil, err
		}
	} else {
		gi = ignore.CompileIgnoreLines(extra...)
	}

	return &Ignorer{rootPath: absPath, ignorer: gi}, nil
}

// IsIgnored checks if the given path should be ignored
func (p *Ignorer) IsIgnored(path string) bool {
	if p == nil || p.ignorer == nil {
		return false
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if !strings.HasPrefix(absPath, p.rootPath) {
		return false
	}

	relPath, err := filepath.Rel(p.rootPath, absPath)
	if err != nil || relPath == "." || strings.HasPrefix(relPath, "..") {
		return false
	}

	return p.ignorer.MatchesPath(filepath.ToSlash(relPath))
}
