package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// ErrSameFile is returned when a copy would read and write the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// metadataChanger is the part of billy.Change used to carry file metadata over.
type metadataChanger interface {
	Chmod(name string, mode os.FileMode) error
	Chtimes(name string, atime time.Time, mtime time.Time) error
}

// accessTimer is implemented by filesystems that can report access times.
type accessTimer interface {
	AccessTime(name string) (time.Time, error)
}

// FS adapts a go-billy filesystem to the operations the planner and executor need.
type FS struct {
	fs billy.Filesystem
}

func New(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

// NewOS returns a filesystem that resolves paths like the native one, relative
// paths included.
func NewOS() *FS {
	return &FS{fs: &nativeOS{}}
}

func NewMemory() *FS {
	return &FS{fs: memfs.New()}
}

func (f *FS) Raw() billy.Filesystem {
	return f.fs
}

func (f *FS) Stat(path string) (fs.FileInfo, error) {
	info, err := f.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("fs: stat %q: %w", path, err)
	}
	return info, nil
}

func (f *FS) ReadDir(path string) ([]fs.FileInfo, error) {
	entries, err := f.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("fs: readdir %q: %w", path, err)
	}
	return entries, nil
}

// MkdirAll creates path and any missing parents. An existing directory is not an error.
func (f *FS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("fs: mkdirall %q: %w", path, err)
	}
	return nil
}

func (f *FS) Remove(path string) error {
	if err := f.fs.Remove(path); err != nil {
		return fmt.Errorf("fs: remove %q: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst, replacing dst if it exists, and carries the
// permission bits, access and modification times over when the filesystem
// supports it.
func (f *FS) CopyFile(src, dst string) error {
	same, err := f.sameFile(src, dst)
	if err != nil {
		return err
	}
	if same {
		return fmt.Errorf("fs: copy %q: %w", src, ErrSameFile)
	}

	info, err := f.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("fs: stat %q: %w", src, err)
	}
	// read before the copy touches src
	atime := f.accessTime(src, info)

	srcFile, err := f.fs.Open(src)
	if err != nil {
		return fmt.Errorf("fs: open %q: %w", src, err)
	}
	defer srcFile.Close()

	dstFile, err := f.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("fs: create %q: %w", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("fs: copy %q: %w", src, err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("fs: close %q: %w", dst, err)
	}

	return f.copyMetadata(info, atime, dst)
}

func (f *FS) accessTime(path string, info fs.FileInfo) time.Time {
	if at, ok := f.fs.(accessTimer); ok {
		if t, err := at.AccessTime(path); err == nil {
			return t
		}
	}
	return info.ModTime()
}

func (f *FS) copyMetadata(info fs.FileInfo, atime time.Time, dst string) error {
	changer, ok := f.fs.(metadataChanger)
	if !ok {
		return nil
	}
	if err := changer.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("fs: chmod %q: %w", dst, err)
	}
	if err := changer.Chtimes(dst, atime, info.ModTime()); err != nil {
		return fmt.Errorf("fs: chtimes %q: %w", dst, err)
	}
	return nil
}

func (f *FS) sameFile(src, dst string) (bool, error) {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return true, nil
	}
	srcInfo, err := f.fs.Stat(src)
	if err != nil {
		return false, fmt.Errorf("fs: stat %q: %w", src, err)
	}
	dstInfo, err := f.fs.Stat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("fs: stat %q: %w", dst, err)
	}
	return os.SameFile(srcInfo, dstInfo), nil
}

// nativeOS is a billy.Filesystem that behaves like the host filesystem, with
// metadata changes backed by the os package.
type nativeOS struct {
	osfs.ChrootOS
}

func (n *nativeOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (n *nativeOS) Root() string {
	return "/"
}

func (n *nativeOS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (n *nativeOS) AccessTime(name string) (time.Time, error) {
	ts, err := times.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return ts.AccessTime(), nil
}

func (n *nativeOS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}
