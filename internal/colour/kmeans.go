package colour

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
)

// KMeansExtractor builds a colour pool from an image using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	rng           *rand.Rand
}

// NewKMeansExtractor creates a new KMeansExtractor. The same seed and image
// always produce the same pool.
func NewKMeansExtractor(seed uint64) *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Extract extracts colors from an image using k-means clustering.
// Returns colors with their relative weights (cluster sizes).
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("color count too large: %d (maximum: 256)", count)
	}

	pixels := e.samplePixels(img)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	uniqueColors := make([]color.Color, 0, len(pixels))
	seen := make(map[RGB]bool)
	for _, p := range pixels {
		rgb := FromColor(p)
		if !seen[rgb] {
			uniqueColors = append(uniqueColors, rgb.Color())
			seen[rgb] = true
		}
	}

	// Fewer distinct colours than requested: the image is the pool.
	if count >= len(uniqueColors) {
		return NewPalette(uniqueColors), nil
	}

	centroids, weights := e.kmeans(pixels, count)

	colors := make([]color.Color, len(centroids))
	for i, c := range centroids {
		colors[i] = color.RGBA{
			R: uint8(math.Round(c.R)),
			G: uint8(math.Round(c.G)),
			B: uint8(math.Round(c.B)),
			A: 255,
		}
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels samples pixels from the image, grid sampling large images.
func (e *KMeansExtractor) samplePixels(img image.Image) []color.Color {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	if totalPixels <= e.maxSamples {
		pixels := make([]color.Color, 0, totalPixels)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, img.At(x, y))
			}
		}
		return pixels
	}

	step := max(int(math.Sqrt(float64(totalPixels)/float64(e.maxSamples))), 1)

	pixels := make([]color.Color, 0, e.maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, img.At(x, y))
			if len(pixels) >= e.maxSamples {
				return pixels
			}
		}
	}

	return pixels
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(pixels []color.Color, k int) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		rgb := FromColor(c)
		points[i] = point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
	}

	centroids := e.initializeCentroids(points, k)
	assignments := make([]int, len(points))

	for range e.maxIterations {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of points moved.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := e.recalculateCentroids(points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}

	return centroids, weights
}

// initializeCentroids picks starting centroids with k-means++.
func (e *KMeansExtractor) initializeCentroids(points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[e.rng.IntN(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				minDist = math.Min(minDist, point.distance(centroid))
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := e.rng.Float64() * totalDistance
		cumulative := 0.0
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

func (e *KMeansExtractor) recalculateCentroids(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			// Empty cluster, reseed from a random point.
			centroids[i] = points[e.rng.IntN(len(points))]
		}
	}

	return centroids
}
