// Package archive gives access to content sources packed into zip archives.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/h2non/filetype"
)

// WalkFunc is called for each file in archive visited by Walk. If an error
// is returned, processing stops.
type WalkFunc func(file *zip.File) error

// Archive is an open zip file. It implements fs.FS, so pictures referenced
// from content could be read from the same archive.
type Archive struct {
	*zip.ReadCloser
	path string
}

// IsArchive checks file signature.
func IsArchive(name string) (bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// enough for any signature filetype knows
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

func Open(name string) (*Archive, error) {
	r, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive: %w", err)
	}
	return &Archive{ReadCloser: r, path: name}, nil
}

func (a *Archive) Path() string { return a.path }

// Walk visits all files which names start with prefix in archive order.
// Entries with path traversal components or absolute paths stop the walk
// with an error.
func (a *Archive) Walk(prefix string, walkFn WalkFunc) error {
	for _, f := range a.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
