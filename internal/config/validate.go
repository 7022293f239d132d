package config

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/ncruces/go-strftime"

	"filetz/internal/domain"
)

// Resolved is a validated Config with its zones loaded and its pattern
// translated to a Go time layout.
type Resolved struct {
	SourceDir      string
	DestinationDir string
	From           *time.Location
	To             *time.Location
	Mode           domain.Mode
	Pattern        string
	Layout         string
	DryRun         bool
}

// SameZone reports whether source and target resolve to the same zone.
func (r Resolved) SameZone() bool {
	return r.From.String() == r.To.String()
}

type StatFS interface {
	Stat(path string) (fs.FileInfo, error)
}

// Validate checks cfg and returns every problem found, in a fixed order. The
// Resolved value is only meaningful when no messages are returned.
func Validate(cfg Config, fsys StatFS) (Resolved, []string) {
	var msgs []string

	if info, err := fsys.Stat(cfg.SourceDir); err != nil || !info.IsDir() {
		msgs = append(msgs, fmt.Sprintf("%s is not a valid folder", cfg.SourceDir))
	}

	from, err := LoadZone(cfg.FromTZ)
	if err != nil {
		msgs = append(msgs, fmt.Sprintf("%s is not a valid timezone", cfg.FromTZ))
	}
	to, err := LoadZone(cfg.ToTZ)
	if err != nil {
		msgs = append(msgs, fmt.Sprintf("%s is not a valid timezone", cfg.ToTZ))
	}

	layout, err := strftime.Layout(cfg.Pattern)
	if err == nil && layout == "" {
		err = fmt.Errorf("pattern is empty")
	}
	if err != nil {
		msgs = append(msgs, fmt.Sprintf("%s is not a valid pattern: %v", cfg.Pattern, err))
	}

	mode := cfg.Mode
	if mode == "" {
		mode = domain.ModeCopy
	}
	if _, err := domain.ParseMode(string(mode)); err != nil {
		msgs = append(msgs, err.Error())
	}

	if len(msgs) > 0 {
		return Resolved{}, msgs
	}

	return Resolved{
		SourceDir:      cfg.SourceDir,
		DestinationDir: cfg.DestinationDir,
		From:           from,
		To:             to,
		Mode:           mode,
		Pattern:        cfg.Pattern,
		Layout:         layout,
		DryRun:         cfg.DryRun,
	}, nil
}

// LoadZone resolves an IANA zone name. The empty name and "Local" are
// rejected even though time.LoadLocation accepts them.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("unknown time zone %q", name)
	}
	return time.LoadLocation(name)
}
