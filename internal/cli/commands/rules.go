package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/materialize/internal/cli/ui"
	"github.com/conduit-lang/materialize/internal/materialize"
	"github.com/conduit-lang/materialize/internal/profiles"
)

type rulesDocument struct {
	Profile string             `yaml:"profile"`
	Rules   []materialize.Rule `yaml:"rules"`
	Cleanup []string           `yaml:"cleanup,omitempty"`
}

func newRulesCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the effective substitution rules as YAML",
		Long: `Print the rules of the selected profile, including rules and cleanup
paths added by materialize.yaml. The output can be pasted into a config
file as a starting point.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, profile, err := loadProfile(cmd, global)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(rulesDocument{
				Profile: profile.Name,
				Rules:   profile.Rules,
				Cleanup: profile.Cleanup,
			}); err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			return enc.Close()
		},
	}
}

func newProfilesCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the available profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := profiles.DefaultRegistry()
			table := ui.NewTable(cmd.OutOrStdout(), []string{"NAME", "RULES", "DESCRIPTION"}, global.noColor)
			for _, p := range registry.List() {
				table.AddRow(p.Name, fmt.Sprint(len(p.Rules)), p.Description)
			}
			table.Render()
			return nil
		},
	}
}
