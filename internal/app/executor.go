package app

import (
	"context"
	"errors"

	"filetz/internal/config"
	"filetz/internal/domain"
	appErrors "filetz/internal/errors"
	"filetz/internal/logging"
)

const NoFilesMessage = "No files to process in source folder."

// ProgressFunc is called after each operation completes.
type ProgressFunc func(current, total int, name string)

type Executor struct {
	FS         FileSystem
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// Execute reports every operation of plan and, unless cfg.DryRun is set,
// carries them out in order. In move mode the source is only removed when the
// zones differ, since equal zones can map a file onto itself.
func (e *Executor) Execute(ctx context.Context, plan domain.Plan, cfg config.Resolved) ([]string, error) {
	if e.FS == nil {
		return nil, errors.New("executor requires FS")
	}
	if plan.Empty() {
		return []string{NoFilesMessage}, nil
	}

	lines := make([]string, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		lines = append(lines, op.String())
	}
	if cfg.DryRun {
		e.Logger.Verbosef("Dry run, %d operations not executed", len(plan.Operations))
		return lines, nil
	}

	stop := e.Logger.Measure("Executing")
	defer stop()

	if err := e.FS.MkdirAll(cfg.DestinationDir, 0o755); err != nil {
		return nil, appErrors.Wrap(appErrors.IOFailure, "mkdir", cfg.DestinationDir, err)
	}

	remove := cfg.Mode == domain.ModeMove && !cfg.SameZone()
	total := len(plan.Operations)
	for i, op := range plan.Operations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := e.FS.CopyFile(op.SourcePath, op.TargetPath); err != nil {
			return nil, appErrors.Wrap(appErrors.IOFailure, "copy", op.SourcePath, err)
		}
		if remove {
			if err := e.FS.Remove(op.SourcePath); err != nil {
				return nil, appErrors.Wrap(appErrors.IOFailure, "remove", op.SourcePath, err)
			}
		}
		if e.OnProgress != nil {
			e.OnProgress(i+1, total, op.TargetName)
		}
	}
	return lines, nil
}
