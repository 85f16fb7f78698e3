package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"
)

// Quantizer reduces an image to an ordered candidate colour set. The first
// element is the most visually dominant colour in the source image; the
// rest follow in decreasing dominance. Given the same image and parameters
// the output is deterministic.
type Quantizer interface {
	Quantize(img image.Image, count int) ([]RGB, error)
}

// DefaultCandidateCount is how many candidate colours quantization asks
// for before distinctness filtering.
const DefaultCandidateCount = 50

// KMeansQuantizer implements quantization with k-means clustering over
// sampled pixels, seeded with k-means++.
type KMeansQuantizer struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	seed          int64
}

// NewKMeansQuantizer creates a KMeansQuantizer with default settings.
func NewKMeansQuantizer() *KMeansQuantizer {
	return &KMeansQuantizer{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    5000,
		seed:          1,
	}
}

// Quantize extracts up to count candidate colours from an image, ordered
// by dominance (cluster weight, descending).
func (q *KMeansQuantizer) Quantize(img image.Image, count int) ([]RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("candidate count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("candidate count too large: %d (maximum: 256)", count)
	}

	pixels := samplePixels(img, q.maxSamples)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// With few unique colours there is nothing to cluster: count frequency
	// directly so dominance order still holds.
	unique, frequency := uniqueColours(pixels)
	if count >= len(unique) {
		sortByWeight(unique, frequency)
		return unique, nil
	}

	// A fixed seed keeps quantization deterministic for identical input.
	rng := rand.New(rand.NewSource(q.seed))
	centroids, weights := q.kmeans(rng, pixels, count)

	colours := make([]RGB, len(centroids))
	for i, c := range centroids {
		colours[i] = RGB{R: uint8(c.r), G: uint8(c.g), B: uint8(c.b)}
	}
	sortByWeight(colours, weights)
	return colours, nil
}

// uniqueColours deduplicates pixels, preserving first-seen order, and
// returns each colour's share of the total.
func uniqueColours(pixels []RGB) ([]RGB, []float64) {
	seen := make(map[RGB]int, len(pixels))
	unique := make([]RGB, 0, len(pixels))
	counts := make([]float64, 0, len(pixels))
	for _, p := range pixels {
		if i, ok := seen[p]; ok {
			counts[i]++
			continue
		}
		seen[p] = len(unique)
		unique = append(unique, p)
		counts = append(counts, 1)
	}
	total := float64(len(pixels))
	for i := range counts {
		counts[i] /= total
	}
	return unique, counts
}

// sortByWeight orders colours by weight descending; stable, so equal
// weights keep their existing order.
func sortByWeight(colours []RGB, weights []float64) {
	indices := make([]int, len(colours))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return weights[indices[a]] > weights[indices[b]]
	})
	sorted := make([]RGB, len(colours))
	for i, idx := range indices {
		sorted[i] = colours[idx]
	}
	copy(colours, sorted)
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	r, g, b float64
}

// distance calculates the Euclidean distance between two points.
func (p point3D) distance(other point3D) float64 {
	dr := p.r - other.r
	dg := p.g - other.g
	db := p.b - other.b
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels samples pixels from the image. Large images are grid
// sampled for performance.
func samplePixels(img image.Image, maxSamples int) []RGB {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	if totalPixels <= maxSamples {
		pixels := make([]RGB, 0, totalPixels)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, ToRGB(img.At(x, y)))
			}
		}
		return pixels
	}

	step := max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)

	pixels := make([]RGB, 0, maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, ToRGB(img.At(x, y)))
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}
	return pixels
}

// kmeans clusters the pixel data into k centroids and returns them with
// their normalised cluster weights.
func (q *KMeansQuantizer) kmeans(rng *rand.Rand, pixels []RGB, k int) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		points[i] = point3D{r: float64(c.R), g: float64(c.G), b: float64(c.B)}
	}

	centroids := initializeCentroids(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < q.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Under 1% reassignment counts as converged.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculateCentroids(rng, points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < q.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	total := float64(len(assignments))
	for i := range weights {
		weights[i] /= total
	}

	return centroids, weights
}

// initializeCentroids seeds centroids with the k-means++ scheme: each new
// centroid is drawn with probability proportional to its squared distance
// from the nearest existing one.
func initializeCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return nil
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				if d := point.distance(centroid); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			// Remaining points coincide with existing centroids; perturb
			// the last one instead of looping forever.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{r: last.r + 0.1, g: last.g + 0.1, b: last.b + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
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

// nearestCentroid finds the index of the centroid closest to a point.
func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if d := point.distance(centroid); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its assigned
// points. Empty clusters are reseeded from a random point.
func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].r += point.r
		sums[cluster].g += point.g
		sums[cluster].b += point.b
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			centroids[i] = point3D{
				r: sums[i].r / float64(counts[i]),
				g: sums[i].g / float64(counts[i]),
				b: sums[i].b / float64(counts[i]),
			}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
