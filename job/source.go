package job

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tprint/archive"
	"tprint/content"
)

var errFound = errors.New("found")

// source is opened content together with the place its pictures are read
// from.
type source struct {
	content *content.Source
	fsys    fs.FS // nil for operating system files
	dir     string
	closer  io.Closer
	origin  string
}

func (s *source) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// openSource opens content. Empty path selects demo text, path may lead into
// zip archive: "[path_to_archive]archive.zip[path_in_archive]".
func openSource(ctx context.Context, src, demo string, format content.Format, log *zap.Logger) (*source, error) {
	if len(src) == 0 {
		log.Debug("No source specified, using demo text")
		return &source{content: content.NewSource("", demo, format), dir: ".", origin: "demo"}, nil
	}

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if fi.Mode().IsDir() {
			return nil, fmt.Errorf("input source is a directory (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		packed, err := archive.IsArchive(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if packed {
			inner := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return openArchived(ctx, head, filepath.ToSlash(inner), format, log)
		}
		if len(tail) != 0 {
			// plain file cannot have tail
			break
		}

		c, err := content.ReadFile(head, format, log)
		if err != nil {
			return nil, err
		}
		return &source{content: c, dir: c.Dir, origin: head}, nil
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

// openArchived selects entry inner or, when inner is a directory (or empty),
// the first text or xml file under it. Archive stays open as file system for
// pictures.
func openArchived(ctx context.Context, name, inner string, format content.Format, log *zap.Logger) (_ *source, err error) {
	a, err := archive.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	dir := strings.TrimSuffix(inner, "/")
	var entry *zip.File
	err = a.Walk(dir, func(f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.Name == dir || (isContentFile(f.Name) && (len(dir) == 0 || strings.HasPrefix(f.Name, dir+"/"))) {
			entry = f
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, fmt.Errorf("unable to look into archive %s: %w", name, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("no content found in archive (%s) => (%s)", name, inner)
	}

	r, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open %s in archive %s: %w", entry.Name, name, err)
	}
	defer r.Close()

	c, err := content.Load(r, strings.TrimSuffix(path.Base(entry.Name), path.Ext(entry.Name)), format, log)
	if err != nil {
		return nil, err
	}
	c.Dir = path.Dir(entry.Name)
	log.Debug("Content selected in archive", zap.String("archive", name), zap.String("entry", entry.Name))
	return &source{content: c, fsys: a, dir: c.Dir, closer: a, origin: name + "/" + entry.Name}, nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".txt", ".xml":
		return true
	}
	return false
}
