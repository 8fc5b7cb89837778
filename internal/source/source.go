// Package source validates the source file path given on the command line
// and resolves it to the absolute form used for every later operation.
package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrBadPath is returned for every rejected path. Missing argument, wrong
// suffix, missing file and canonicalisation failures all collapse into it.
var ErrBadPath = errors.New("Bad file path provided") //nolint:staticcheck // user-facing message

// Target is a validated source file.
type Target struct {
	// Path is absolute with symlinks resolved.
	Path string
	// Name is the final path segment, used for display.
	Name string
}

// Resolve validates the first element of args as a source file carrying ext
// and returns its canonical form.
func Resolve(args []string, ext string) (Target, error) {
	if len(args) == 0 {
		return Target{}, ErrBadPath
	}

	return resolvePath(args[0], ext)
}

func resolvePath(candidate, ext string) (Target, error) {
	if candidate == "" || !strings.HasSuffix(candidate, ext) {
		return Target{}, ErrBadPath
	}

	if _, err := os.Stat(candidate); err != nil {
		return Target{}, ErrBadPath
	}

	abs, err := filepath.Abs(candidate)
	if err != nil {
		return Target{}, ErrBadPath
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Target{}, ErrBadPath
	}

	return Target{Path: canonical, Name: filepath.Base(canonical)}, nil
}
