package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLI resets history by running the git binary, so the user's global git
// configuration applies. Commit hooks are skipped.
type CLI struct {
	Dir    string
	Author Author
	// Binary defaults to "git" resolved through PATH
	Binary string
}

// NewCLI returns a git binary resetter for dir. Unlike GoGit the author is
// left empty when unset so git falls back to user.name and user.email.
func NewCLI(dir string, author Author) *CLI {
	return &CLI{Dir: dir, Author: author, Binary: "git"}
}

// Reset removes dir/.git and runs git init, git add -A and git commit
func (c *CLI) Reset(ctx context.Context, message string) (string, error) {
	bin := c.Binary
	if bin == "" {
		bin = "git"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return "", fmt.Errorf("git binary not available: %w", err)
	}

	if err := removeMetadata(c.Dir); err != nil {
		return "", err
	}

	if _, err := c.run(ctx, bin, "init"); err != nil {
		return "", err
	}
	if _, err := c.run(ctx, bin, "add", "-A"); err != nil {
		return "", err
	}

	var args []string
	if c.Author.Name != "" {
		args = append(args, "-c", "user.name="+c.Author.Name)
	}
	if c.Author.Email != "" {
		args = append(args, "-c", "user.email="+c.Author.Email)
	}
	args = append(args, "commit", "--no-verify", "-m", message)
	if _, err := c.run(ctx, bin, args...); err != nil {
		return "", err
	}

	out, err := c.run(ctx, bin, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *CLI) run(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = c.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w\n%s", bin, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}
