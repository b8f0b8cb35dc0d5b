package transfer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrDirectoryTraversal indicates a peer-supplied file name that would
// escape the download directory.
var ErrDirectoryTraversal = errors.New("file name contains directory traversal")

// File is an open file handle owned by the session for the session's
// lifetime. It is always closed on every terminal transition.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// Storage abstracts the host file system. The engine only ever opens one
// file per session, reads or writes it in bounded chunks, and closes it.
type Storage interface {
	// OpenRead opens an existing file for reading and reports its size.
	OpenRead(path string) (File, int64, error)

	// OpenWrite creates or truncates a file for writing.
	OpenWrite(path string) (File, error)

	// MkdirAll ensures the download directory exists.
	MkdirAll(dir string) error
}

// DiskStorage is the default Storage backed by the local file system.
type DiskStorage struct{}

// OpenRead implements Storage.OpenRead using os.Open.
func (DiskStorage) OpenRead(path string) (File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// OpenWrite implements Storage.OpenWrite using os.Create.
func (DiskStorage) OpenWrite(path string) (File, error) {
	return os.Create(path)
}

// MkdirAll implements Storage.MkdirAll using os.MkdirAll.
func (DiskStorage) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// ValidateFileName checks a peer-supplied file name before it is joined to
// the download directory. It returns the cleaned name or an error if the
// name is empty, absolute, or contains traversal components.
func ValidateFileName(name string) (string, error) {
	cleaned := filepath.Clean(name)

	if cleaned == "" || cleaned == "." {
		return "", ErrDirectoryTraversal
	}
	if filepath.IsAbs(cleaned) {
		return "", ErrDirectoryTraversal
	}
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == ".." {
			return "", ErrDirectoryTraversal
		}
	}

	return cleaned, nil
}
