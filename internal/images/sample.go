package images

import (
	"fmt"
	"slices"
	"strings"
)

// SampleStrategy selects how an oversized image list is reduced.
type SampleStrategy string

const (
	// SampleAll keeps every image regardless of the maximum.
	SampleAll SampleStrategy = "all"
	// SampleHead keeps the first images in sorted order.
	SampleHead SampleStrategy = "head"
	// SampleSpread keeps images evenly spaced across the sorted list.
	SampleSpread SampleStrategy = "spread"
)

// ParseSampleStrategy converts a configured strategy name.
func ParseSampleStrategy(value string) (SampleStrategy, error) {
	switch s := SampleStrategy(strings.ToLower(strings.TrimSpace(value))); s {
	case SampleAll, SampleHead, SampleSpread:
		return s, nil
	default:
		return "", fmt.Errorf("unknown image sample strategy %q", value)
	}
}

// Sample returns at most maxImages entries of paths, sorted lexicographically.
// The input slice is not modified. A maxImages of zero or less yields an
// empty list; unknown strategies behave like SampleAll.
func Sample(paths []string, maxImages int, strategy SampleStrategy) []string {
	if maxImages <= 0 {
		return []string{}
	}
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	if sorted == nil {
		sorted = []string{}
	}
	if len(sorted) <= maxImages {
		return sorted
	}

	switch strategy {
	case SampleHead:
		return sorted[:maxImages]
	case SampleSpread:
		step := float64(len(sorted)) / float64(maxImages)
		out := make([]string, 0, maxImages)
		for i := 0; i < maxImages; i++ {
			out = append(out, sorted[int(float64(i)*step)])
		}
		return out
	default:
		return sorted
	}
}
