package app

import (
	"errors"
	"io/fs"

	appErrors "filetz/internal/errors"
)

// List returns the names of the regular files directly inside dir, in the
// order the filesystem reports them. Symlinks count when they point at a
// regular file.
func List(fsys FileSystem, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Wrap(appErrors.NotFound, "list", dir, err)
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, "list", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Mode()&fs.ModeSymlink != 0 {
			target, err := fsys.Stat(JoinPath(dir, entry.Name()))
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
		} else if !entry.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
