package engine

import (
	"fmt"
	"math"
)

// SamplePlan computes which pages of a document to render.
//
// percent=100 keeps every page and percent=0 keeps none. Anything in
// between selects round(totalPages*percent/100) pages, at least one,
// spread evenly from the first page: plan[i] = floor(i * totalPages/count).
// The result is strictly increasing, unique, within [0, totalPages), and
// the same inputs always produce the same plan.
func SamplePlan(totalPages, percent int) ([]int, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSamplePercent, percent)
	}
	if totalPages <= 0 || percent == 0 {
		return nil, nil
	}

	count := int(math.Round(float64(totalPages) * float64(percent) / 100))
	if count < 1 {
		count = 1
	}
	if count > totalPages {
		count = totalPages
	}

	// count <= totalPages keeps the stride >= 1, so floors never collide
	stride := float64(totalPages) / float64(count)
	pages := make([]int, count)
	for i := range pages {
		pages[i] = int(float64(i) * stride)
	}
	return pages, nil
}
