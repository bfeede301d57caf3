package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
		excludes []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "template not found",
				Problem: "./template",
			},
			contains: []string{"❌", "TEMPLATE NOT FOUND: ./template"},
			excludes: []string{"Did you mean"},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Context:     "PROFILE NOT FOUND",
				Problem:     "Cannot find profile 'fluter'.",
				Suggestions: []string{"flutter", "flutter-web"},
			},
			contains: []string{"Did you mean: flutter, flutter-web?"},
		},
		{
			name: "help commands",
			opts: ErrorOptions{
				Problem:      "Something failed",
				Consequence:  "Nothing was copied or changed.",
				HelpCommands: []string{"Get help: materialize --help"},
			},
			contains: []string{"   Nothing was copied or changed.", "→ Get help: materialize --help"},
		},
		{
			name:     "warning without context",
			opts:     ErrorOptions{Level: ErrorLevelWarning, Problem: "copy ios/Runner: permission denied"},
			contains: []string{"⚠️ copy ios/Runner: permission denied"},
		},
		{
			name:     "info",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "nothing to do"},
			contains: []string{"ℹ️"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.opts)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestFormatErrorNoColorOption(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	got := FormatError(ErrorOptions{Problem: "boom", NoColor: true})
	assert.NotContains(t, got, "\x1b[")
}

func TestInvalidPackageError(t *testing.T) {
	got := InvalidPackageError("My App", "com.example.my app", "com.example.myapp", errors.New(`segment "my app" must start with a letter`), true)

	assert.Contains(t, got, "INVALID PACKAGE IDENTIFIER: com.example.my app")
	assert.Contains(t, got, `segment "my app" must start with a letter`)
	assert.Contains(t, got, "Did you mean: com.example.myapp?")
	assert.Contains(t, got, `materialize "My App" com.example.myapp`)

	noSuggestion := InvalidPackageError("???", "com.example.???", "", nil, true)
	assert.NotContains(t, noSuggestion, "Did you mean")
}

func TestDomainErrors(t *testing.T) {
	assert.Contains(t, MissingProjectNameError(true), "Usage: materialize <project_name> [package_identifier]")
	assert.Contains(t, TemplateNotFoundError("tpl", errors.New("no such file"), true), "no such file. Nothing was copied")
	assert.Contains(t, ProfileNotFoundError("fluter", []string{"flutter"}, true), "Did you mean: flutter?")
	assert.Contains(t, ConfigError("vcs.backend must be one of go-git, git, none", true), "CONFIGURATION ERROR")
	assert.Contains(t, Warning("vcs: git binary not available", true), "⚠️")
}

func TestWriteSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "Acme is ready", true)
	assert.Equal(t, "✓ Acme is ready\n", buf.String())
}
