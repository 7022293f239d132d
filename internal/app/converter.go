package app

import (
	"os"
	"strings"
	"time"

	"filetz/internal/config"
	"filetz/internal/domain"
)

// Convert maps a file name to its name in the target zone. It reports false
// when name is not a candidate or its timestamp does not parse with the
// configured layout.
func Convert(name string, cfg config.Resolved) (domain.Operation, bool) {
	candidate, ok := domain.ParseCandidate(name)
	if !ok {
		return domain.Operation{}, false
	}

	// ParseInLocation settles ambiguous and skipped wall-clock times the way
	// the time package does for any zone transition.
	sourceTime, err := time.ParseInLocation(cfg.Layout, candidate.Stamp, cfg.From)
	if err != nil {
		return domain.Operation{}, false
	}
	targetTime := sourceTime.In(cfg.To)
	targetName := targetTime.Format(cfg.Layout) + candidate.Ext

	return domain.Operation{
		SourceName: name,
		TargetName: targetName,
		SourcePath: JoinPath(cfg.SourceDir, name),
		TargetPath: JoinPath(cfg.DestinationDir, targetName),
		SourceTime: sourceTime,
		TargetTime: targetTime,
	}, true
}

// JoinPath appends name to dir without cleaning dir, so paths are reported
// the way the directory was given.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
