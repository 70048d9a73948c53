package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"mailgen/internal/common/fsutil"
)

// ErrNotCached is returned when a model is absent from the cache and no source is configured.
var ErrNotCached = errors.New("model not in cache and no source configured")

// Fetcher streams a model artifact from a remote location.
type Fetcher interface {
	Fetch(ctx context.Context, src *url.URL, w io.Writer) error
}

// Cache resolves pretrained model identifiers to files under a local cache directory,
// downloading them on first use.
type Cache struct {
	dir      string
	fetchers map[string]Fetcher // key: URL scheme
}

// NewCache creates (if needed) dir and returns a cache rooted there.
func NewCache(dir string) (*Cache, error) {
	abs, err := fsutil.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("model cache: %w", err)
	}
	return &Cache{dir: abs, fetchers: make(map[string]Fetcher)}, nil
}

// Dir returns the absolute cache directory.
func (c *Cache) Dir() string { return c.dir }

// Register installs a fetcher for the given URL schemes.
func (c *Cache) Register(f Fetcher, schemes ...string) {
	for _, s := range schemes {
		c.fetchers[strings.ToLower(s)] = f
	}
}

// Path returns where id is stored in the cache.
func (c *Cache) Path(id string) string {
	return filepath.Join(c.dir, fsutil.SafeName(id))
}

// Resolve returns a local path for id. An id that already names an existing file is
// used as is; otherwise the cached copy is returned, fetching it from source when missing.
func (c *Cache) Resolve(ctx context.Context, id, source string) (string, error) {
	if p, err := fsutil.ExpandHome(id); err == nil && isFile(p) {
		return filepath.Abs(p)
	}
	dst := c.Path(id)
	if isFile(dst) {
		return dst, nil
	}
	if strings.TrimSpace(source) == "" {
		return "", fmt.Errorf("%w: %s", ErrNotCached, id)
	}
	u, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse model source: %w", err)
	}
	f, ok := c.fetchers[strings.ToLower(u.Scheme)]
	if !ok {
		return "", fmt.Errorf("no fetcher for scheme %q", u.Scheme)
	}
	if err := c.download(ctx, f, u, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// download writes into a temp file next to dst and renames it into place so a
// partial download never looks cached.
func (c *Cache) download(ctx context.Context, f Fetcher, src *url.URL, dst string) error {
	tmp, err := os.CreateTemp(c.dir, ".fetch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Fetch(ctx, src, tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fetch %s: %w", src.Redacted(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("move into cache: %w", err)
	}
	return nil
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}
