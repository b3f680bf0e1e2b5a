// Package cache keeps downloaded remote images on disk so repeated runs
// against the same URL do not fetch it again.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/autobase16/internal/util/http"
)

// Options configures cache behaviour.
type Options struct {
	// Dir is where downloads are stored.
	// If empty, defaults to $XDG_CACHE_HOME/autobase16/images.
	Dir string

	// Refresh downloads the URL again even when a cached copy exists.
	Refresh bool

	// Fetch configures the download.
	Fetch httputil.FetchOptions
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "autobase16", "images"), nil
	}
	return filepath.Join(cacheDir, "autobase16", "images"), nil
}

// Filename derives a stable file name from a URL: a hash of the URL plus the
// original extension, so image decoders can still sniff by name.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.Contains(ext, "/") {
		ext = ".img"
	}
	return name + strings.ToLower(ext)
}

// Download returns the local path of url, fetching it into the cache when no
// copy exists yet (or when opts.Refresh is set).
func Download(ctx context.Context, url string, opts Options) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, Filename(url))
	if !opts.Refresh {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	// A partial download must never be visible under the cached name.
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}
	return path, nil
}
