package app

import (
	"io/fs"
)

type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
	Remove(path string) error
}
