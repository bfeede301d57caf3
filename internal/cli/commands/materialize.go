package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/materialize/internal/cli/config"
	"github.com/conduit-lang/materialize/internal/cli/ui"
	"github.com/conduit-lang/materialize/internal/logging"
	"github.com/conduit-lang/materialize/internal/materialize"
	"github.com/conduit-lang/materialize/internal/profiles"
	"github.com/conduit-lang/materialize/internal/vcs"
)

type runOptions struct {
	templateDir string
	targetDir   string
	vcs         string
	interactive bool
}

func runMaterialize(cmd *cobra.Command, args []string, global *globalOptions, opts *runOptions) error {
	errOut := cmd.ErrOrStderr()
	out := cmd.OutOrStdout()

	cfg, profile, err := loadProfile(cmd, global)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("template-dir") {
		cfg.TemplateDir = opts.templateDir
	}
	if flags.Changed("target-dir") {
		cfg.TargetDir = opts.targetDir
	}
	if flags.Changed("vcs") {
		cfg.VCS.Backend = opts.vcs
	}

	var in materialize.Input
	if len(args) > 0 {
		in.ProjectName = args[0]
	}
	if len(args) > 1 {
		in.PackageIdentifier = args[1]
	}
	if opts.interactive {
		if err := promptInput(&in); err != nil {
			return err
		}
	}

	resetter, err := vcs.New(cfg.VCS.Backend, cfg.TargetDir, cfg.Author())
	if err != nil {
		fmt.Fprint(errOut, ui.ConfigError(err.Error(), global.noColor))
		return &reportedError{err: err}
	}

	logger := logging.New(errOut, global.verbose)
	defer func() { _ = logger.Sync() }()

	var bar *ui.ProgressBar
	var progress func(done, total int)
	if !global.verbose && isTerminal(errOut) {
		bar = ui.NewProgressBar(errOut, "copying template", global.noColor)
		progress = bar.Update
	}

	m := materialize.New(cfg.TemplateDir, cfg.TargetDir, materialize.Options{
		Rules:    profile.Rules,
		Cleanup:  profile.Cleanup,
		VCS:      resetter,
		Logger:   logger,
		Progress: progress,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := m.Materialize(ctx, in)
	if bar != nil {
		bar.Finish()
	}

	var fatal *materialize.Error
	if errors.As(err, &fatal) {
		explainFatal(errOut, fatal, in.ProjectName, cfg.TemplateDir, global.noColor)
		return &reportedError{err: err}
	}

	if report != nil {
		printReport(out, errOut, report, cfg, global)
	}
	return err
}

// loadProfile reads the configuration and resolves the effective profile,
// including rules and cleanup paths added by the config file
func loadProfile(cmd *cobra.Command, global *globalOptions) (*config.Config, *profiles.Profile, error) {
	errOut := cmd.ErrOrStderr()

	cfg, err := config.Load(global.configFile, ".")
	if err != nil {
		fmt.Fprint(errOut, ui.ConfigError(err.Error(), global.noColor))
		return nil, nil, &reportedError{err: err}
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = global.profile
	}

	registry := profiles.DefaultRegistry()
	base, err := registry.Get(cfg.Profile)
	if err != nil {
		suggestions := ui.FindSimilar(cfg.Profile, registry.Names())
		fmt.Fprint(errOut, ui.ProfileNotFoundError(cfg.Profile, suggestions, global.noColor))
		return nil, nil, &reportedError{err: err}
	}

	profile := base.Extend(cfg.Rules, cfg.Cleanup)
	if err := profile.Validate(); err != nil {
		fmt.Fprint(errOut, ui.ConfigError(err.Error(), global.noColor))
		return nil, nil, &reportedError{err: err}
	}

	return cfg, profile, nil
}

func promptInput(in *materialize.Input) error {
	if in.ProjectName == "" {
		prompt := &survey.Input{
			Message: "Project name:",
			Help:    "Used verbatim in app titles and pubspec.yaml",
		}
		if err := survey.AskOne(prompt, &in.ProjectName, survey.WithValidator(survey.Required)); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
	}

	if in.PackageIdentifier == "" {
		prompt := &survey.Input{
			Message: "Package identifier:",
			Default: materialize.DerivePackageIdentifier(in.ProjectName),
			Help:    "Reverse-DNS application id, e.g. com.acme.app",
		}
		validate := func(ans interface{}) error {
			s, _ := ans.(string)
			return materialize.ValidatePackageIdentifier(s)
		}
		if err := survey.AskOne(prompt, &in.PackageIdentifier, survey.WithValidator(validate)); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
	}

	return nil
}

func explainFatal(w io.Writer, err *materialize.Error, projectName, templateDir string, noColor bool) {
	switch err.Kind {
	case materialize.KindMissingProjectName:
		fmt.Fprint(w, ui.MissingProjectNameError(noColor))
	case materialize.KindTemplateNotFound:
		fmt.Fprint(w, ui.TemplateNotFoundError(templateDir, err.Err, noColor))
	case materialize.KindInvalidPackageIdentifier:
		fmt.Fprint(w, ui.InvalidPackageError(projectName, err.Subject, err.Suggestion, err.Err, noColor))
	default:
		fmt.Fprint(w, ui.FormatError(ui.ErrorOptions{Problem: err.Error(), NoColor: noColor}))
	}
}

func printReport(out, errOut io.Writer, report *materialize.Report, cfg *config.Config, global *globalOptions) {
	pkg := report.PackageIdentifier
	if report.PackageDerived {
		pkg += " (derived)"
	}
	commit := report.Commit
	if commit == "" {
		commit = "-"
	}

	summary := ui.NewKeyValueTable(out, global.noColor)
	summary.AddRow("Project", report.ProjectName)
	summary.AddRow("Package", pkg)
	summary.AddRow("Template", cfg.TemplateDir)
	summary.AddRow("Target", cfg.TargetDir)
	summary.AddRow("Files copied", strconv.Itoa(len(report.Copied)))
	summary.AddRow("Replacements", strconv.Itoa(report.Replacements()))
	summary.AddRow("Removed", strconv.Itoa(len(report.Removed)))
	summary.AddRow("Commit", commit)
	summary.Render()

	if len(report.Substitutions) > 0 {
		fmt.Fprintln(out)
		table := ui.NewTable(out, []string{"FILE", "TOKEN", "COUNT"}, global.noColor)
		for _, s := range report.Substitutions {
			table.AddRow(s.Path, s.Token, strconv.Itoa(s.Count))
		}
		table.Render()
	}

	if global.verbose && len(report.Skipped) > 0 {
		fmt.Fprintln(out)
		for _, s := range report.Skipped {
			fmt.Fprintf(out, "skipped %s (no matching file)\n", s)
		}
	}

	warnings := report.Warnings()
	for _, w := range warnings {
		fmt.Fprint(errOut, ui.Warning(w.String(), global.noColor))
	}

	fmt.Fprintln(out)
	msg := fmt.Sprintf("%s is ready", report.ProjectName)
	if n := len(warnings); n > 0 {
		msg = fmt.Sprintf("%s with %d warning(s)", msg, n)
	}
	ui.WriteSuccess(out, msg, global.noColor)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
