package colour

import (
	"fmt"
	"image"
)

// Extractor defines the interface for color extraction algorithms.
type Extractor interface {
	// Extract extracts a color palette from an image.
	// The count parameter specifies the number of colors to extract.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the color extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses k-means clustering for color extraction.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans}
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm, seed uint64) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(seed), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for color extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
// A base16 pool wants more candidates than slots, so the default is 32.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmKMeans,
		ColorCount: 32,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if c.Algorithm != AlgorithmKMeans {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("color count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > 256 {
		return fmt.Errorf("color count too large: %d (maximum: 256)", c.ColorCount)
	}
	return nil
}
