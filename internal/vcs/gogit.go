package vcs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit resets history with the pure Go git implementation, so no git
// binary is needed
type GoGit struct {
	Dir    string
	Author Author

	now func() time.Time
}

// NewGoGit returns a go-git resetter for dir
func NewGoGit(dir string, author Author) *GoGit {
	return &GoGit{Dir: dir, Author: author.orDefault(), now: time.Now}
}

// Reset removes dir/.git, initializes a repository, stages everything and
// commits it with message
func (g *GoGit) Reset(ctx context.Context, message string) (string, error) {
	if err := removeMetadata(g.Dir); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainInit(g.Dir, false)
	if err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("git worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	author := g.Author.orDefault()
	now := time.Now
	if g.now != nil {
		now = g.now
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	return hash.String(), nil
}
