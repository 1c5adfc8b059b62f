// Package fs provides filesystem abstractions for serving files from local disk or git refs.
package fs

import (
	iofs "io/fs"
	"time"
)

// FileInfo holds metadata for a filesystem object.
type FileInfo struct {
	Name    string
	IsDir   bool
	Mode    iofs.FileMode
	Size    int64
	ModTime time.Time
}

// IsRegular reports whether the object is a plain file (not a directory,
// symlink, socket, or any other special kind).
func (i FileInfo) IsRegular() bool {
	return i.Mode&iofs.ModeType == 0
}

// DirEntry represents a single directory entry.
type DirEntry struct {
	Name  string
	IsDir bool
	Mode  iofs.FileMode
}

// IsRegular reports whether the entry is a plain file.
func (e DirEntry) IsRegular() bool {
	return e.Mode&iofs.ModeType == 0
}

// FileSystem abstracts read operations so the HTTP layer can serve either
// the working tree or a read-only git snapshot.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]DirEntry, error)
}
