package app

import (
	"context"
	"errors"

	"filetz/internal/config"
	"filetz/internal/domain"
	"filetz/internal/logging"
)

const verboseTimeLayout = "2006-01-02 15:04:05 MST"

type Planner struct {
	FS     FileSystem
	Logger logging.Logger
}

// Plan lists the source directory and converts every candidate name. Files
// that are not candidates are left out of the plan without an error.
func (p *Planner) Plan(ctx context.Context, cfg config.Resolved) (domain.Plan, error) {
	if p.FS == nil {
		return domain.Plan{}, errors.New("planner requires FS")
	}

	stop := p.Logger.Measure("Planning")
	defer stop()

	names, err := List(p.FS, cfg.SourceDir)
	if err != nil {
		return domain.Plan{}, err
	}
	p.Logger.Verbosef("Found %d files in %s", len(names), cfg.SourceDir)

	plan := domain.Plan{Listed: len(names)}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return domain.Plan{}, err
		}
		op, ok := Convert(name, cfg)
		if !ok {
			plan.Skipped++
			p.Logger.Verbosef("Skipping %s", name)
			continue
		}
		p.Logger.Verbosef("%s: %s becomes %s", name,
			op.SourceTime.Format(verboseTimeLayout), op.TargetTime.Format(verboseTimeLayout))
		plan.Operations = append(plan.Operations, op)
	}

	p.Logger.Verbosef("Planned %d operations (%d skipped), %s -> %s", len(plan.Operations), plan.Skipped, cfg.From, cfg.To)
	return plan, nil
}
