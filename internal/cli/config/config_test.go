package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/materialize/internal/materialize"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "template", cfg.TemplateDir)
	assert.Equal(t, ".", cfg.TargetDir)
	assert.Equal(t, "flutter", cfg.Profile)
	assert.Equal(t, "go-git", cfg.VCS.Backend)
	assert.Empty(t, cfg.Rules)
	assert.Empty(t, cfg.Author().Name)
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
template_dir: assets/template
target_dir: out
vcs:
  backend: git
  author:
    name: Release Bot
    email: bot@acme.test
rules:
  - token: Acme Template Corp
    value: project_name
    files:
      - LICENSE
      - docs/**/*.md
cleanup:
  - tool/bootstrap.dart
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "materialize.yaml"), []byte(content), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "assets/template", cfg.TemplateDir)
	assert.Equal(t, "out", cfg.TargetDir)
	assert.Equal(t, "git", cfg.VCS.Backend)
	assert.Equal(t, "Release Bot", cfg.Author().Name)
	assert.Equal(t, "bot@acme.test", cfg.Author().Email)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, materialize.Rule{
		Token: "Acme Template Corp",
		Value: materialize.ValueProjectName,
		Files: []string{"LICENSE", "docs/**/*.md"},
	}, cfg.Rules[0])
	assert.Equal(t, []string{"tool/bootstrap.dart"}, cfg.Cleanup)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("profile: flutter\nvcs:\n  backend: none\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.VCS.Backend)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MATERIALIZE_VCS_BACKEND", "none")
	t.Setenv("MATERIALIZE_TEMPLATE_DIR", "/srv/templates/flutter")

	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.VCS.Backend)
	assert.Equal(t, "/srv/templates/flutter", cfg.TemplateDir)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown backend",
			content: "vcs:\n  backend: svn\n",
			wantErr: "vcs.backend must be one of",
		},
		{
			name:    "invalid rule",
			content: "rules:\n  - token: x\n    value: version\n    files: [a]\n",
			wantErr: "unknown rule value",
		},
		{
			name:    "empty template dir",
			content: "template_dir: \"\"\n",
			wantErr: "template_dir must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "materialize.yaml"), []byte(tt.content), 0o644))

			_, err := Load("", dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
