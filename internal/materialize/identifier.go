package materialize

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPackagePrefix is prepended to the folded project name when no
// package identifier is given
const DefaultPackagePrefix = "com.example."

var segmentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DerivePackageIdentifier returns com.example.<name> with the name folded
// to lower case. Only ASCII letters are folded; everything else is kept as is,
// so names containing spaces or punctuation yield identifiers that
// ValidatePackageIdentifier rejects.
func DerivePackageIdentifier(projectName string) string {
	return DefaultPackagePrefix + asciiLower(projectName)
}

// ValidatePackageIdentifier checks that id is a reverse-DNS identifier usable
// as an Android application id and an iOS bundle id
func ValidatePackageIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("package identifier is empty")
	}

	segments := strings.Split(id, ".")
	if len(segments) < 2 {
		return fmt.Errorf("package identifier %q needs at least two dot-separated segments", id)
	}

	for _, seg := range segments {
		if seg == "" {
			return fmt.Errorf("package identifier %q has an empty segment", id)
		}
		if !segmentPattern.MatchString(seg) {
			return fmt.Errorf("segment %q of %q must start with a letter or underscore and contain only letters, digits and underscores", seg, id)
		}
	}

	return nil
}

// SuggestPackageIdentifier derives a valid identifier from an invalid one by
// folding case and dropping offending characters. It returns "" when nothing
// usable remains.
func SuggestPackageIdentifier(id string) string {
	var segments []string
	for _, seg := range strings.Split(asciiLower(id), ".") {
		var b strings.Builder
		for i := 0; i < len(seg); i++ {
			c := seg[i]
			if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
				b.WriteByte(c)
			}
		}
		clean := b.String()
		if clean == "" {
			continue
		}
		if clean[0] >= '0' && clean[0] <= '9' {
			clean = "_" + clean
		}
		segments = append(segments, clean)
	}

	if len(segments) == 0 {
		return ""
	}
	if len(segments) == 1 {
		return DefaultPackagePrefix + segments[0]
	}
	return strings.Join(segments, ".")
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
