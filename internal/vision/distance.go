package vision

import "math"

// DefaultThreshold is the acceptance threshold for the sign-in decision:
// similarities at or above it count as the same identity.
const DefaultThreshold = 0.6

// EuclideanDistance returns the L2 distance between two descriptors.
// Lower distance means more similar faces.
func EuclideanDistance(a, b Descriptor) float64 {
	var sum float64
	for i := 0; i < DescriptorSize; i++ {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// Similarity converts descriptor distance into a score in [0,1]: 1 - distance,
// clamped. Same identity scores near 1.0. A nil input is treated as "no
// match" and yields 0.0 so missing data never aborts a scan.
func Similarity(a, b *Descriptor) float64 {
	if a == nil || b == nil {
		return 0.0
	}

	s := 1 - EuclideanDistance(*a, *b)
	if s < 0 {
		return 0.0
	}
	if s > 1 {
		return 1.0
	}
	return s
}
