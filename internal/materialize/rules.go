package materialize

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Value names the input a rule's token is replaced with
type Value string

const (
	ValueProjectName       Value = "project_name"
	ValuePackageIdentifier Value = "package_identifier"
)

// Resolve returns the replacement text for in
func (v Value) Resolve(in Input) (string, error) {
	switch v {
	case ValueProjectName:
		return in.ProjectName, nil
	case ValuePackageIdentifier:
		return in.PackageIdentifier, nil
	default:
		return "", fmt.Errorf("unknown rule value %q", string(v))
	}
}

// Rule replaces every literal occurrence of Token with the resolved Value in
// the files selected by Files. Selectors are slash-separated paths relative
// to the target root; selectors containing glob metacharacters are matched
// with doublestar semantics.
type Rule struct {
	Token string   `mapstructure:"token" yaml:"token"`
	Value Value    `mapstructure:"value" yaml:"value"`
	Files []string `mapstructure:"files" yaml:"files"`
}

// Validate checks the rule is well formed
func (r Rule) Validate() error {
	if r.Token == "" {
		return fmt.Errorf("rule token is required")
	}
	if _, err := r.Value.Resolve(Input{}); err != nil {
		return fmt.Errorf("rule %q: %w", r.Token, err)
	}
	if len(r.Files) == 0 {
		return fmt.Errorf("rule %q must select at least one file", r.Token)
	}
	for _, sel := range r.Files {
		if err := validateSelector(sel); err != nil {
			return fmt.Errorf("rule %q: %w", r.Token, err)
		}
	}
	return nil
}

// Apply replaces Token with replacement in data and reports how many
// occurrences were replaced. data is returned untouched when nothing matched.
func (r Rule) Apply(data []byte, replacement string) ([]byte, int) {
	token := []byte(r.Token)
	n := bytes.Count(data, token)
	if n == 0 {
		return data, 0
	}
	return bytes.ReplaceAll(data, token, []byte(replacement)), n
}

// ValidateRules validates every rule in order
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return nil
}

func isPattern(selector string) bool {
	return strings.ContainsAny(selector, "*?[{")
}

func validateSelector(selector string) error {
	if selector == "" {
		return fmt.Errorf("empty file selector")
	}
	if strings.HasPrefix(selector, "/") {
		return fmt.Errorf("file selector %q must be relative", selector)
	}
	if isPattern(selector) {
		if !doublestar.ValidatePattern(selector) {
			return fmt.Errorf("file selector %q is not a valid pattern", selector)
		}
		return nil
	}
	if clean := path.Clean(selector); clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("file selector %q escapes the target directory", selector)
	}
	return nil
}

// matchSelector returns the files matching a doublestar pattern
func matchSelector(files []string, pattern string) []string {
	var out []string
	for _, f := range files {
		if ok, _ := doublestar.Match(pattern, f); ok {
			out = append(out, f)
		}
	}
	return out
}
