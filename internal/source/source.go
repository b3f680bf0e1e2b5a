// Package source reads raw colour pool lines from files, stdin or HTTPS.
//
// A pool file holds one hex colour per line. Lines beginning with "//" or ";"
// are comments. Blank lines and duplicates are left in place; the selection
// engine normalises the pool itself.
package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/autobase16/internal/compression"
	"github.com/jmylchreest/autobase16/internal/security"
	httputil "github.com/jmylchreest/autobase16/internal/util/http"
)

// Stdin is the source name that reads from standard input.
const Stdin = "-"

// Options configures where a pool is read from.
type Options struct {
	// Stdin replaces os.Stdin when the source is "-".
	Stdin io.Reader
	// Fetch configures HTTPS downloads.
	Fetch httputil.FetchOptions
	// AllowInsecureURL skips the HTTPS and private host checks. Tests only.
	AllowInsecureURL bool
}

// IsURL reports whether src names an HTTP(S) resource.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Read loads raw pool lines from src: a file path, "-" for stdin, or an
// https:// URL. Compressed content (gzip, xz, bzip2) is decompressed.
func Read(ctx context.Context, src string, opts Options) ([]string, error) {
	switch {
	case src == "":
		return nil, fmt.Errorf("pool source cannot be empty")

	case src == Stdin:
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		return Parse(in, src)

	case IsURL(src):
		if !opts.AllowInsecureURL {
			if err := security.ValidateHTTPURL(src); err != nil {
				return nil, fmt.Errorf("invalid pool URL: %w", err)
			}
		}
		data, err := httputil.Fetch(ctx, src, opts.Fetch)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pool: %w", err)
		}
		return Parse(bytes.NewReader(data), src)

	default:
		info, err := os.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("pool file not found: %s", src)
			}
			return nil, fmt.Errorf("failed to stat pool file: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory, not a file: %s", src)
		}

		f, err := os.Open(src) // #nosec G304 - User-specified pool path, intended to be read
		if err != nil {
			return nil, fmt.Errorf("failed to open pool file: %w", err)
		}
		defer f.Close()
		return Parse(f, src)
	}
}

// Parse splits r into raw pool lines, dropping comments. name is used to
// detect compression by extension when the content has no magic header.
func Parse(r io.Reader, name string) ([]string, error) {
	dr, _, err := compression.NewReader(r, name)
	if err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(dr)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pool %s: %w", name, err)
	}
	return lines, nil
}
