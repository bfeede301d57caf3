package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/conduit-lang/materialize/internal/materialize"
	"github.com/conduit-lang/materialize/internal/vcs"
)

// FileName is the config file base name looked up in the search paths
const FileName = "materialize"

// EnvPrefix prefixes environment overrides, e.g. MATERIALIZE_VCS_BACKEND
const EnvPrefix = "MATERIALIZE"

// Config represents the materialize configuration
type Config struct {
	TemplateDir string    `mapstructure:"template_dir"`
	TargetDir   string    `mapstructure:"target_dir"`
	Profile     string    `mapstructure:"profile"`
	VCS         VCSConfig `mapstructure:"vcs"`
	// Rules are appended to the profile's rules
	Rules []materialize.Rule `mapstructure:"rules"`
	// Cleanup paths are added to the profile's cleanup paths
	Cleanup []string `mapstructure:"cleanup"`
}

// VCSConfig represents version-control configuration
type VCSConfig struct {
	Backend string       `mapstructure:"backend"`
	Author  AuthorConfig `mapstructure:"author"`
}

// AuthorConfig signs the generated commit
type AuthorConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// Load reads materialize.yaml from file, or from the first search path that
// has one. A missing config is not an error unless file names it explicitly.
func Load(file string, searchPaths ...string) (*Config, error) {
	v := viper.New()

	v.SetDefault("template_dir", "template")
	v.SetDefault("target_dir", ".")
	v.SetDefault("profile", "flutter")
	v.SetDefault("vcs.backend", vcs.BackendGoGit)
	v.SetDefault("vcs.author.name", "")
	v.SetDefault("vcs.author.email", "")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Author returns the configured commit author
func (c *Config) Author() vcs.Author {
	return vcs.Author{Name: c.VCS.Author.Name, Email: c.VCS.Author.Email}
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.TemplateDir) == "" {
		return fmt.Errorf("template_dir must not be empty")
	}
	if strings.TrimSpace(cfg.TargetDir) == "" {
		return fmt.Errorf("target_dir must not be empty")
	}

	backend := strings.ToLower(cfg.VCS.Backend)
	valid := false
	for _, b := range vcs.Backends() {
		if backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("vcs.backend must be one of %s, got: %s", strings.Join(vcs.Backends(), ", "), cfg.VCS.Backend)
	}

	if err := materialize.ValidateRules(cfg.Rules); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}
