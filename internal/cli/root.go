package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"filetz/internal/app"
	"filetz/internal/config"
	"filetz/internal/domain"
	appErrors "filetz/internal/errors"
	"filetz/internal/logging"
	"filetz/internal/presentation"
	"filetz/internal/tui"
)

const BasicSyntax = "filetz --from-tz=<TZ_NAME> --to-tz=<TZ_NAME> --source-directory=<dir> --destination-directory=<dir> --mode=<copy|move> --pattern=<pattern>"

const longHelp = BasicSyntax + `

Renames and copies (or moves) files whose names are timestamps, converting the
timestamp in each file name from one timezone to another.

Only files directly inside the source directory whose names are 12 digits
followed by an extension (for example 230115120000.jpg) are processed. Other
files, and names that are not a valid date and time for the pattern, are
skipped.

In move mode the source file is removed after copying, unless both timezones
are the same.`

const example = `  filetz -s ./src/ -d ./dst/ -t Europe/Warsaw -m move
  filetz -f America/New_York -t UTC -p %y%m%d%H%M%S --dry-run`

// Streams are the writers a command reports to.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// NewRootCommand builds the filetz command. fsys is used for validation,
// planning and execution.
func NewRootCommand(fsys app.FileSystem, streams Streams) *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           "filetz",
		Short:         "Convert timestamped file names between timezones",
		Long:          longHelp,
		Example:       example,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnv(cmd.Flags()); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "env", "", err)
			}
			return run(cmd.Context(), cfg, fsys, streams)
		},
	}
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return appErrors.Wrap(appErrors.InvalidFlags, "flags", "", err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&cfg.SourceDir, "source-directory", "s", cfg.SourceDir, "source folder")
	flags.StringVarP(&cfg.DestinationDir, "destination-directory", "d", cfg.DestinationDir, "destination folder")
	flags.StringVarP(&cfg.FromTZ, "from-tz", "f", cfg.FromTZ, "timezone of source file names")
	flags.StringVarP(&cfg.ToTZ, "to-tz", "t", cfg.ToTZ, "timezone of destination file names")
	flags.VarP(&cfg.Mode, "mode", "m", "copy or move files")
	flags.StringVarP(&cfg.Pattern, "pattern", "p", cfg.Pattern, "file name pattern without extension")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "report what would be done without changing any file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output on stderr")
	flags.BoolVar(&cfg.TUI, "tui", false, "interactive preview, confirmation and progress")

	return cmd
}

var envFlags = map[string]string{
	"source-directory":      config.EnvSourceDir,
	"destination-directory": config.EnvDestinationDir,
	"from-tz":               config.EnvFromTZ,
	"to-tz":                 config.EnvToTZ,
	"mode":                  config.EnvMode,
	"pattern":               config.EnvPattern,
}

var envBoolFlags = map[string]string{
	"dry-run": config.EnvDryRun,
	"verbose": config.EnvVerbose,
}

// applyEnv fills options not given on the command line from the environment.
func applyEnv(flags *pflag.FlagSet) error {
	for name, key := range envFlags {
		if flags.Changed(name) {
			continue
		}
		if val := config.EnvOrEmpty(key); val != "" {
			if err := flags.Set(name, val); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	for name, key := range envBoolFlags {
		if !flags.Changed(name) && config.EnvTruthy(key) {
			if err := flags.Set(name, "true"); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}

func run(ctx context.Context, cfg config.Config, fsys app.FileSystem, streams Streams) error {
	printer := presentation.Printer{Writer: streams.Out}
	logger := logging.New(streams.Err, cfg.Verbose)

	resolved, msgs := config.Validate(cfg, fsys)
	if len(msgs) > 0 {
		printer.PrintValidation(msgs)
		return nil
	}

	planner := app.Planner{FS: fsys, Logger: logger}
	executor := &app.Executor{FS: fsys, Logger: logger}

	if cfg.TUI {
		result, err := tui.Run(ctx, tui.Config{
			SourceDir:      resolved.SourceDir,
			DestinationDir: resolved.DestinationDir,
			From:           resolved.From.String(),
			To:             resolved.To.String(),
			Mode:           resolved.Mode,
			DryRun:         resolved.DryRun,
			Output:         streams.Err,
			Plan: func(ctx context.Context) (domain.Plan, error) {
				return planner.Plan(ctx, resolved)
			},
			Execute: func(ctx context.Context, plan domain.Plan, progress tui.ProgressFunc) ([]string, error) {
				executor.OnProgress = app.ProgressFunc(progress)
				return executor.Execute(ctx, plan, resolved)
			},
		})
		if err != nil {
			return err
		}
		if result.Declined {
			logger.Infof("Nothing was changed.")
			return nil
		}
		printer.PrintLines(result.Lines)
		return nil
	}

	plan, err := planner.Plan(ctx, resolved)
	if err != nil {
		return err
	}
	lines, err := executor.Execute(ctx, plan, resolved)
	if err != nil {
		return err
	}
	printer.PrintLines(lines)
	return nil
}

// Execute runs the command with args.
func Execute(ctx context.Context, args []string, fsys app.FileSystem, streams Streams) error {
	cmd := NewRootCommand(fsys, streams)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case appErrors.KindOf(err) == appErrors.InvalidFlags:
		return 2
	default:
		return 1
	}
}
