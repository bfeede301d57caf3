package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/materialize/internal/profiles"
	"github.com/conduit-lang/materialize/internal/vcs"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configFile string
	profile    string
	verbose    bool
	noColor    bool
}

// reportedError marks an error whose explanation was already written to
// stderr, so Execute only needs to set the exit status
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewRootCommand creates the root command. Running it without a subcommand
// materializes the template into the target directory.
func NewRootCommand() *cobra.Command {
	global := &globalOptions{}
	run := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "materialize <project_name> [package_identifier]",
		Short: "Turn the Flutter template into a new project",
		Long: color.CyanString(`materialize - Flutter project materializer

Copies the template tree into the target directory, replaces the template's
placeholder names with your project name and package identifier, removes
template-only files and starts a fresh git history with a single commit.

When the package identifier is omitted it is derived from the project name:
  MyApp → com.example.myapp`),
		Example: `  materialize "Acme" com.acme.app
  materialize MyApp --template-dir ./template --target-dir ./myapp
  materialize --interactive`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialize(cmd, args, global, run)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&global.configFile, "config", "", "Config file (default: ./materialize.yaml when present)")
	flags.StringVar(&global.profile, "profile", profiles.FlutterProfileName, "Substitution profile")
	flags.BoolVarP(&global.verbose, "verbose", "v", false, "Log every step and file")
	flags.BoolVar(&global.noColor, "no-color", false, "Disable colored output")

	rootCmd.Flags().StringVar(&run.templateDir, "template-dir", "template", "Template tree to copy from")
	rootCmd.Flags().StringVar(&run.targetDir, "target-dir", ".", "Directory the project is materialized into")
	rootCmd.Flags().StringVar(&run.vcs, "vcs", vcs.BackendGoGit, "Version-control backend (go-git, git, none)")
	rootCmd.Flags().BoolVarP(&run.interactive, "interactive", "i", false, "Prompt for missing values")

	_ = rootCmd.RegisterFlagCompletionFunc("profile", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return profiles.DefaultRegistry().Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("vcs", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return vcs.Backends(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newRulesCommand(global))
	rootCmd.AddCommand(newProfilesCommand(global))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the materialize version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "materialize version: ")
			fmt.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
