// Package image loads images used as colour pool sources.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/autobase16/internal/security"
	"github.com/jmylchreest/autobase16/internal/util/cache"
	httputil "github.com/jmylchreest/autobase16/internal/util/http"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path or URL.
	Load(ctx context.Context, path string) (image.Image, error)
}

// SmartLoader loads images from local files and HTTPS URLs.
type SmartLoader struct {
	fetch     httputil.FetchOptions
	cacheOpts *cache.Options
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{}
}

// WithCache makes the loader keep downloaded images on disk and reuse them
// on later loads of the same URL.
func (l *SmartLoader) WithCache(opts cache.Options) *SmartLoader {
	opts.Fetch = l.fetch
	l.cacheOpts = &opts
	return l
}

// Load loads an image from either a local file path or an HTTPS URL.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return l.loadFromURL(ctx, path)
	}
	return loadFile(path)
}

func loadFile(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := security.ValidateHTTPURL(url); err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	if l.cacheOpts != nil {
		path, err := cache.Download(ctx, url, *l.cacheOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		return loadFile(path)
	}

	data, err := httputil.Fetch(ctx, url, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

func isImageFile(path string) bool {
	return slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(path)))
}

// ScanDirectoryForImages returns the supported image files directly inside
// dirPath, sorted by name. Symlinks are followed; subdirectories are not.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	sort.Strings(imageFiles)
	return imageFiles, nil
}

// ResolveImagePath resolves a path that could be a file, a directory or a URL.
// For a directory, pick chooses one of its images by index.
func ResolveImagePath(path string, pick func(n int) int) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return imageFiles[pick(len(imageFiles))], nil
}
