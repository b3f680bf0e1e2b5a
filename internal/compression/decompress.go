// Package compression transparently decompresses pool files.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/autobase16/internal/security"
)

// MaxDecompressedSize bounds how much data a compressed pool may expand to.
const MaxDecompressedSize = 16 * 1024 * 1024

// Format identifies a compression format.
type Format string

const (
	FormatNone  Format = "none"
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicXz    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicBzip2 = []byte("BZh")
)

// Detect returns the compression format from the leading bytes of data,
// falling back to the file extension of name.
func Detect(head []byte, name string) Format {
	switch {
	case bytes.HasPrefix(head, magicXz):
		return FormatXz
	case bytes.HasPrefix(head, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(head, magicBzip2) && len(head) > 3 && head[3] >= '1' && head[3] <= '9':
		return FormatBzip2
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xz":
		return FormatXz
	case ".gz", ".gzip":
		return FormatGzip
	case ".bz2":
		return FormatBzip2
	}
	return FormatNone
}

// NewReader wraps r with a decompressor when its content (or name) indicates
// a compressed stream. The result is size-limited.
func NewReader(r io.Reader, name string) (io.Reader, Format, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(magicXz))

	format := Detect(head, name)
	var out io.Reader
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		out = gzr
	case FormatXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		out = xzr
	case FormatBzip2:
		out = bzip2.NewReader(br)
	default:
		out = br
	}

	return security.NewLimitedReader(out, MaxDecompressedSize), format, nil
}
