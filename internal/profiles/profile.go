// Package profiles holds named substitution rule sets for template trees.
package profiles

import (
	"fmt"

	"github.com/conduit-lang/materialize/internal/materialize"
)

// Profile describes how one kind of template tree is materialized
type Profile struct {
	Name        string
	Description string
	Rules       []materialize.Rule
	// Cleanup lists target-relative paths that only serve template authoring
	Cleanup []string
}

// Validate validates a profile structure
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if len(p.Rules) == 0 {
		return fmt.Errorf("profile %s must have at least one rule", p.Name)
	}
	if err := materialize.ValidateRules(p.Rules); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	for _, c := range p.Cleanup {
		if c == "" {
			return fmt.Errorf("profile %s: empty cleanup path", p.Name)
		}
	}
	return nil
}

// Extend returns a copy of p with extra rules appended after its own and
// extra cleanup paths added. p is not modified.
func (p *Profile) Extend(rules []materialize.Rule, cleanup []string) *Profile {
	out := &Profile{
		Name:        p.Name,
		Description: p.Description,
		Rules:       make([]materialize.Rule, 0, len(p.Rules)+len(rules)),
		Cleanup:     make([]string, 0, len(p.Cleanup)+len(cleanup)),
	}
	out.Rules = append(out.Rules, p.Rules...)
	out.Rules = append(out.Rules, rules...)

	seen := make(map[string]bool)
	for _, c := range append(append([]string{}, p.Cleanup...), cleanup...) {
		if seen[c] {
			continue
		}
		seen[c] = true
		out.Cleanup = append(out.Cleanup, c)
	}
	return out
}
