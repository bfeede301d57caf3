package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized message with suggestions and help lines
//
// Example output:
//
//	❌ INVALID PACKAGE IDENTIFIER: com.example.my app
//	   segment "my app" of "com.example.my app" must start with a letter ...
//
//	   Did you mean: com.example.myapp?
//
//	   → Pass one explicitly: materialize "My App" com.example.myapp
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	default:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	}

	hint := color.New(color.FgYellow)
	help := color.New(color.FgCyan)
	if opts.NoColor {
		for _, c := range []*color.Color{headerColor, bodyColor, hint, help} {
			c.DisableColor()
		}
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		hint.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			help.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted message to w
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to w
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// MissingProjectNameError explains how to pass a project name
func MissingProjectNameError(noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "MISSING PROJECT NAME",
		Problem:     "A project name is required.",
		Consequence: "Nothing was copied or changed.",
		HelpCommands: []string{
			"Usage: materialize <project_name> [package_identifier]",
			"Prompt for values: materialize --interactive",
		},
		NoColor: noColor,
	})
}

// TemplateNotFoundError reports a missing template tree
func TemplateNotFoundError(path string, cause error, noColor bool) string {
	consequence := "Nothing was copied or changed."
	if cause != nil {
		consequence = fmt.Sprintf("%v. %s", cause, consequence)
	}
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "TEMPLATE NOT FOUND",
		Problem:     path,
		Consequence: consequence,
		HelpCommands: []string{
			"Point at the template: materialize <project_name> --template-dir <dir>",
		},
		NoColor: noColor,
	})
}

// InvalidPackageError reports a package identifier that is not reverse-DNS
func InvalidPackageError(projectName, id, suggestion string, cause error, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "INVALID PACKAGE IDENTIFIER",
		Problem:     id,
		Consequence: "Nothing was copied or changed.",
		NoColor:     noColor,
	}
	if cause != nil {
		opts.Consequence = fmt.Sprintf("%v.\n   %s", cause, opts.Consequence)
	}
	if suggestion != "" {
		opts.Suggestions = []string{suggestion}
		opts.HelpCommands = []string{
			fmt.Sprintf("Pass one explicitly: materialize %q %s", projectName, suggestion),
		}
	}
	return FormatError(opts)
}

// ProfileNotFoundError reports an unknown profile name
func ProfileNotFoundError(name string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "PROFILE NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find profile '%s'.", name),
		Suggestions: suggestions,
		HelpCommands: []string{
			"See all profiles: materialize profiles",
		},
		NoColor: noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"View config: cat materialize.yaml",
			"Get help: materialize --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}
