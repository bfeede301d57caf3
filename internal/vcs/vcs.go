// Package vcs recreates version-control history in a materialized project.
package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names
const (
	BackendGoGit = "go-git"
	BackendGit   = "git"
	BackendNone  = "none"
)

// MetadataDir is the repository metadata directory removed before a reset
const MetadataDir = ".git"

// DefaultAuthor signs the generated commit when no author is configured
var DefaultAuthor = Author{Name: "materialize", Email: "materialize@localhost"}

// Author identifies the committer of the generated commit
type Author struct {
	Name  string
	Email string
}

func (a Author) orDefault() Author {
	if a.Name == "" {
		a.Name = DefaultAuthor.Name
	}
	if a.Email == "" {
		a.Email = DefaultAuthor.Email
	}
	return a
}

// Resetter deletes any existing history in a directory and replaces it with
// a single commit containing every file
type Resetter interface {
	Reset(ctx context.Context, message string) (string, error)
}

// Backends lists the accepted backend names
func Backends() []string {
	return []string{BackendGoGit, BackendGit, BackendNone}
}

// New returns the resetter for backend operating on dir
func New(backend, dir string, author Author) (Resetter, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendGoGit:
		return NewGoGit(dir, author), nil
	case BackendGit:
		return NewCLI(dir, author), nil
	case BackendNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown vcs backend %q (expected one of %s)", backend, strings.Join(Backends(), ", "))
	}
}

// Noop leaves version control untouched
type Noop struct{}

// Reset does nothing
func (Noop) Reset(context.Context, string) (string, error) { return "", nil }

// removeMetadata deletes dir/.git if present
func removeMetadata(dir string) error {
	path := filepath.Join(dir, MetadataDir)
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
