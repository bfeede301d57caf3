// Package materialize turns a template tree into a standalone project: it
// copies the tree, substitutes placeholder tokens, removes template-only
// artifacts and recreates version-control history.
//
// The pipeline is strictly sequential and has no rollback. A run interrupted
// through its context stops between files and leaves the target partially
// materialized.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const metadataDir = ".git"

// Input carries the values substituted into the template
type Input struct {
	ProjectName string
	// PackageIdentifier defaults to DerivePackageIdentifier(ProjectName)
	PackageIdentifier string
}

// Resetter recreates version-control history in the target tree and returns
// the id of the single commit it made
type Resetter interface {
	Reset(ctx context.Context, message string) (string, error)
}

// Options configures New
type Options struct {
	Rules    []Rule
	Cleanup  []string
	VCS      Resetter
	Logger   *zap.Logger
	Progress func(done, total int)
}

// Materializer runs the copy, substitute, cleanup and VCS reset steps
type Materializer struct {
	Template billy.Filesystem
	Target   billy.Filesystem

	// TemplatePath is the template root relative to the target root, set
	// when the template tree lives inside the target tree. It is removed
	// during cleanup and ignored when resolving rule patterns.
	TemplatePath string
	// Exclude lists template-relative paths that are never copied
	Exclude []string

	Rules   []Rule
	Cleanup []string
	VCS     Resetter
	Logger  *zap.Logger
	// Progress is called after each copied template entry
	Progress func(done, total int)

	sameTree bool
}

type entry struct {
	rel  string
	info os.FileInfo
}

// New returns a Materializer over host directories
func New(templateDir, targetDir string, opts Options) *Materializer {
	m := &Materializer{
		Template: osfs.New(templateDir),
		Target:   osfs.New(targetDir),
		Exclude:  []string{metadataDir},
		Rules:    opts.Rules,
		Cleanup:  opts.Cleanup,
		VCS:      opts.VCS,
		Logger:   opts.Logger,
		Progress: opts.Progress,
	}

	templateAbs, err := filepath.Abs(templateDir)
	if err != nil {
		return m
	}
	targetAbs, err := filepath.Abs(targetDir)
	if err != nil {
		return m
	}

	if templateAbs == targetAbs {
		m.sameTree = true
		return m
	}
	if rel, ok := within(targetAbs, templateAbs); ok {
		m.TemplatePath = filepath.ToSlash(rel)
	}
	if rel, ok := within(templateAbs, targetAbs); ok {
		m.Exclude = append(m.Exclude, rel)
	}

	return m
}

// within returns p relative to root when p is strictly below root
func within(root, p string) (string, bool) {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// CommitMessage is the message of the single commit created in the target
func CommitMessage(in Input) string {
	return fmt.Sprintf("Initial commit: %s (%s)", in.ProjectName, in.PackageIdentifier)
}

// Materialize validates in and runs the pipeline. Fatal precondition
// failures are returned as *Error before anything is written; per-file and
// VCS failures are collected as warnings in the report.
func (m *Materializer) Materialize(ctx context.Context, in Input) (*Report, error) {
	in, derived, err := m.validate(in)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:             uuid.NewString(),
		ProjectName:       in.ProjectName,
		PackageIdentifier: in.PackageIdentifier,
		PackageDerived:    derived,
	}

	log := m.logger().With(
		zap.String("run_id", report.RunID),
		zap.String("project", in.ProjectName),
		zap.String("package", in.PackageIdentifier),
	)

	entries, err := m.plan(report, log)
	if err != nil {
		return nil, &Error{Kind: KindTemplateNotFound, Subject: m.Template.Root(), Err: err}
	}

	log.Debug("materializing", zap.Int("entries", len(entries)))

	steps := []struct {
		step Step
		run  func(context.Context) error
	}{
		{StepCopy, func(ctx context.Context) error { return m.copyTree(ctx, entries, report, log) }},
		{StepSubstitute, func(ctx context.Context) error { return m.substitute(ctx, in, report, log) }},
		{StepCleanup, func(ctx context.Context) error { return m.cleanup(ctx, report, log) }},
		{StepVCS, func(ctx context.Context) error { return m.resetVCS(ctx, in, report, log) }},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("interrupted before %s: %w", s.step, err)
		}
		if err := s.run(ctx); err != nil {
			return report, fmt.Errorf("interrupted during %s: %w", s.step, err)
		}
		log.Debug("step finished", zap.String("step", string(s.step)))
	}

	return report, nil
}

func (m *Materializer) validate(in Input) (Input, bool, error) {
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	if in.ProjectName == "" {
		return in, false, &Error{Kind: KindMissingProjectName}
	}

	info, err := m.Template.Stat(".")
	if err != nil {
		return in, false, &Error{Kind: KindTemplateNotFound, Subject: m.Template.Root(), Err: err}
	}
	if !info.IsDir() {
		return in, false, &Error{Kind: KindTemplateNotFound, Subject: m.Template.Root(), Err: fmt.Errorf("not a directory")}
	}

	derived := false
	in.PackageIdentifier = strings.TrimSpace(in.PackageIdentifier)
	if in.PackageIdentifier == "" {
		in.PackageIdentifier = DerivePackageIdentifier(in.ProjectName)
		derived = true
	}
	if err := ValidatePackageIdentifier(in.PackageIdentifier); err != nil {
		return in, derived, &Error{
			Kind:       KindInvalidPackageIdentifier,
			Subject:    in.PackageIdentifier,
			Suggestion: SuggestPackageIdentifier(in.PackageIdentifier),
			Err:        err,
		}
	}

	return in, derived, nil
}

// plan lists the template entries in walk order. Only a failure to read the
// template root is returned; unreadable subtrees become warnings.
func (m *Materializer) plan(report *Report, log *zap.Logger) ([]entry, error) {
	var entries []entry

	err := util.Walk(m.Template, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			report.warn(StepCopy, filepath.ToSlash(p), err)
			log.Warn("cannot read template entry", zap.String("path", p), zap.Error(err))
			return nil
		}
		if p == "." {
			return nil
		}
		if m.excluded(p) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		entries = append(entries, entry{rel: p, info: info})
		return nil
	})

	return entries, err
}

func (m *Materializer) excluded(rel string) bool {
	for _, ex := range m.Exclude {
		if rel == ex {
			return true
		}
	}
	return false
}

func (m *Materializer) copyTree(ctx context.Context, entries []entry, report *Report, log *zap.Logger) error {
	if m.sameTree {
		report.warn(StepCopy, "", fmt.Errorf("template and target are the same directory, nothing copied"))
		return nil
	}

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		mode := e.info.Mode()
		var err error
		switch {
		case mode.IsDir():
			err = m.Target.MkdirAll(e.rel, mode.Perm()|0o700)
		case mode&os.ModeSymlink != 0:
			err = m.copySymlink(e.rel)
		case mode.IsRegular():
			err = m.copyFile(e.rel, mode.Perm())
		default:
			err = fmt.Errorf("unsupported file type %s", mode.Type())
		}

		rel := filepath.ToSlash(e.rel)
		if err != nil {
			report.warn(StepCopy, rel, err)
			log.Warn("copy failed", zap.String("path", rel), zap.Error(err))
		} else if !mode.IsDir() {
			report.Copied = append(report.Copied, rel)
			log.Debug("copied", zap.String("path", rel))
		}

		if m.Progress != nil {
			m.Progress(i+1, len(entries))
		}
	}

	return nil
}

func (m *Materializer) copyFile(rel string, perm os.FileMode) error {
	src, err := m.Template.Open(rel)
	if err != nil {
		return err
	}
	defer src.Close()

	if dir := filepath.Dir(rel); dir != "." {
		if err := m.Target.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	dst, err := m.Target.OpenFile(rel, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	// OpenFile only applies perm to new files
	if ch, ok := m.Target.(billy.Change); ok {
		return ch.Chmod(rel, perm)
	}
	return nil
}

func (m *Materializer) copySymlink(rel string) error {
	link, err := m.Template.Readlink(rel)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(rel); dir != "." {
		if err := m.Target.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := m.Target.Remove(rel); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return m.Target.Symlink(link, rel)
}

func (m *Materializer) substitute(ctx context.Context, in Input, report *Report, log *zap.Logger) error {
	var index []string
	indexed := false

	for _, rule := range m.Rules {
		value, err := rule.Value.Resolve(in)
		if err != nil {
			report.warn(StepSubstitute, "", fmt.Errorf("rule %q: %w", rule.Token, err))
			continue
		}

		for _, sel := range rule.Files {
			if err := ctx.Err(); err != nil {
				return err
			}

			paths := []string{sel}
			if isPattern(sel) {
				if !indexed {
					index = m.targetFiles(report, log)
					indexed = true
				}
				paths = matchSelector(index, sel)
			}

			found := false
			for _, p := range paths {
				if m.substituteFile(p, rule, value, report, log) {
					found = true
				}
			}
			if !found {
				report.Skipped = append(report.Skipped, sel)
				log.Debug("selector matched nothing", zap.String("selector", sel))
			}
		}
	}

	return nil
}

// substituteFile applies rule to one target file and reports whether the
// file exists
func (m *Materializer) substituteFile(slashPath string, rule Rule, value string, report *Report, log *zap.Logger) bool {
	name := filepath.FromSlash(slashPath)

	info, err := m.Target.Stat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false
		}
		report.warn(StepSubstitute, slashPath, err)
		log.Warn("cannot stat substitution target", zap.String("path", slashPath), zap.Error(err))
		return true
	}
	if info.IsDir() {
		return false
	}

	data, err := util.ReadFile(m.Target, name)
	if err != nil {
		report.warn(StepSubstitute, slashPath, err)
		log.Warn("cannot read substitution target", zap.String("path", slashPath), zap.Error(err))
		return true
	}

	out, n := rule.Apply(data, value)
	if n == 0 {
		return true
	}

	if err := util.WriteFile(m.Target, name, out, info.Mode().Perm()); err != nil {
		report.warn(StepSubstitute, slashPath, err)
		log.Warn("cannot write substitution target", zap.String("path", slashPath), zap.Error(err))
		return true
	}

	report.Substitutions = append(report.Substitutions, Substitution{Path: slashPath, Token: rule.Token, Count: n})
	log.Debug("substituted", zap.String("path", slashPath), zap.String("token", rule.Token), zap.Int("count", n))
	return true
}

// targetFiles lists regular files of the target tree in slash form, leaving
// out version-control metadata and a nested template tree
func (m *Materializer) targetFiles(report *Report, log *zap.Logger) []string {
	var files []string

	_ = util.Walk(m.Target, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p != "." {
				report.warn(StepSubstitute, filepath.ToSlash(p), err)
				log.Warn("cannot read target entry", zap.String("path", p), zap.Error(err))
			}
			return nil
		}
		rel := filepath.ToSlash(p)
		if info.IsDir() {
			if rel == metadataDir || (m.TemplatePath != "" && rel == m.TemplatePath) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})

	return files
}

func (m *Materializer) cleanup(ctx context.Context, report *Report, log *zap.Logger) error {
	paths := make([]string, 0, len(m.Cleanup)+1)
	if m.TemplatePath != "" {
		paths = append(paths, m.TemplatePath)
	}
	paths = append(paths, m.Cleanup...)

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := filepath.Clean(filepath.FromSlash(p))
		if filepath.IsAbs(name) || name == "." || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			report.warn(StepCleanup, p, fmt.Errorf("cleanup path must stay inside the target directory"))
			continue
		}

		if _, err := m.Target.Lstat(name); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				report.warn(StepCleanup, p, err)
				log.Warn("cannot stat cleanup path", zap.String("path", p), zap.Error(err))
			}
			continue
		}

		if err := util.RemoveAll(m.Target, name); err != nil {
			report.warn(StepCleanup, p, err)
			log.Warn("cleanup failed", zap.String("path", p), zap.Error(err))
			continue
		}

		report.Removed = append(report.Removed, filepath.ToSlash(name))
		log.Debug("removed", zap.String("path", p))
	}

	return nil
}

func (m *Materializer) resetVCS(ctx context.Context, in Input, report *Report, log *zap.Logger) error {
	if m.VCS == nil {
		return nil
	}

	hash, err := m.VCS.Reset(ctx, CommitMessage(in))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		report.warn(StepVCS, "", err)
		log.Warn("version control reset failed", zap.Error(err))
		return nil
	}

	report.Commit = hash
	log.Debug("committed", zap.String("commit", hash))
	return nil
}

func (m *Materializer) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}
