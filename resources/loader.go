// Package resources loads pictures placed on pages in background.
//
// Every image is read relative to content directory, recognized by its
// signature, decoded and handed to the page visual on the render thread.
// Decoded pictures are cached by content hash, so the same picture referenced
// from several places or sessions is decoded once.
package resources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/h2non/filetype"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"tprint/config"
	"tprint/content"
	"tprint/metrics"
	"tprint/paginate"
)

const maxResourceSize = 32 * 1024 * 1024

// Attacher is implemented by page visuals able to show pictures.
type Attacher interface {
	AttachImage(id string, img image.Image)
}

// Poster queues functions to the render thread.
type Poster interface {
	Post(fn func())
}

// Loader implements paginate.ResourceLoader.
type Loader struct {
	ctx    context.Context
	log    *zap.Logger
	cfg    *config.ResourcesConfig
	fsys   fs.FS
	dir    string
	render Poster

	cache     *ttlcache.Cache[uint64, image.Image]
	workers   errgroup.Group
	scheduled sync.WaitGroup
}

// NewLoader creates loader for pictures of content located in dir of fsys,
// nil fsys means operating system file system. Loader has to be closed to
// release cache.
func NewLoader(ctx context.Context, cfg *config.ResourcesConfig, fsys fs.FS, dir string, render Poster, log *zap.Logger) *Loader {
	l := &Loader{
		ctx:    ctx,
		log:    log.Named("resources"),
		cfg:    cfg,
		fsys:   fsys,
		dir:    dir,
		render: render,
		cache: ttlcache.New(
			ttlcache.WithTTL[uint64, image.Image](cfg.CacheTTL),
			ttlcache.WithDisableTouchOnHit[uint64, image.Image](),
		),
	}
	l.workers.SetLimit(max(cfg.Workers, 1))
	go l.cache.Start()
	return l
}

// Load schedules pictures of the page and returns immediately.
func (l *Loader) Load(page *paginate.Page, images []*content.Image) {
	l.scheduled.Go(func() {
		for _, im := range images {
			l.workers.Go(func() error {
				l.load(page, im)
				return nil
			})
		}
	})
}

// Close waits for all scheduled loads to finish.
func (l *Loader) Close() {
	l.scheduled.Wait()
	_ = l.workers.Wait()
	l.cache.Stop()
}

// CacheLen is number of decoded pictures currently cached.
func (l *Loader) CacheLen() int {
	return l.cache.Len()
}

func (l *Loader) load(page *paginate.Page, im *content.Image) {
	img, source, err := l.fetch(im)
	if err != nil {
		l.log.Warn("Unable to load image", zap.String("id", im.ID), zap.String("src", im.Src), zap.Int("page", page.Number), zap.Error(err))
		source = metrics.ResourceBroken
		img = nil
		if !l.cfg.UseBroken {
			l.log.Debug("Substituting image with broken placeholder", zap.String("id", im.ID))
			img = Broken()
		}
	}
	metrics.RecordResource(source)
	if img == nil {
		page.Tracker.ResourceCompleted()
		return
	}

	// completion is signaled from render thread after picture is attached,
	// so page observed ready there always shows it
	id := im.ID
	l.render.Post(func() {
		if a, ok := page.Visual.(Attacher); ok {
			a.AttachImage(id, img)
		}
		page.Tracker.ResourceCompleted()
	})
}

func (l *Loader) fetch(im *content.Image) (image.Image, string, error) {
	if err := l.ctx.Err(); err != nil {
		return nil, "", err
	}
	data, err := l.read(im.Src)
	if err != nil {
		return nil, "", err
	}

	key := xxhash.Sum64(data)
	if item := l.cache.Get(key); item != nil {
		return item.Value(), metrics.ResourceCached, nil
	}
	img, err := l.decode(data)
	if err != nil {
		return nil, "", err
	}
	l.cache.Set(key, img, ttlcache.DefaultTTL)
	return img, metrics.ResourceLoaded, nil
}

func (l *Loader) read(src string) ([]byte, error) {
	if len(src) == 0 {
		return nil, errors.New("image source is empty")
	}
	if l.fsys != nil {
		name := path.Join(l.dir, filepath.ToSlash(src))
		fi, err := fs.Stat(l.fsys, name)
		if err != nil {
			return nil, err
		}
		if fi.Size() > maxResourceSize {
			return nil, fmt.Errorf("image %s is too large (%d bytes)", name, fi.Size())
		}
		return fs.ReadFile(l.fsys, name)
	}

	name := filepath.FromSlash(src)
	if !filepath.IsAbs(name) {
		name = filepath.Join(l.dir, name)
	}
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if fi.Size() > maxResourceSize {
		return nil, fmt.Errorf("image %s is too large (%d bytes)", name, fi.Size())
	}
	return os.ReadFile(name)
}

func (l *Loader) decode(data []byte) (image.Image, error) {
	if isSVG(data) {
		size := l.cfg.SVGSize
		img, err := RasterizeSVG(data, size, size, size)
		if err != nil {
			return nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return img, nil
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("unsupported resource type %q", kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %w", err)
	}
	return img, nil
}
