package gate

import (
	"sync"

	"github.com/nicksukie/livesub/internal/core"
)

const (
	regionWarmupMin = 5
	regionWarmupMax = 8
	regionPadding   = 15
)

// RegionEstimator accumulates bounding-box y-extents over the first
// warmup recognitions and, once stable, crops subsequent frames to a tight
// band around the observed text (spec §4.3's dynamic text-region
// estimator).
type RegionEstimator struct {
	mu sync.Mutex

	samples int
	minY    int
	maxY    int
	stable  bool
}

func NewRegionEstimator() *RegionEstimator {
	return &RegionEstimator{}
}

// Observe feeds the y-extents of one recognition's detected boxes.
func (e *RegionEstimator) Observe(boxes []core.TextBox) {
	if len(boxes) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stable {
		return
	}
	for _, b := range boxes {
		if e.samples == 0 {
			e.minY, e.maxY = b.YTop, b.YBottom
		} else {
			if b.YTop < e.minY {
				e.minY = b.YTop
			}
			if b.YBottom > e.maxY {
				e.maxY = b.YBottom
			}
		}
	}
	e.samples++
	if e.samples >= regionWarmupMin {
		e.stable = true
	}
}

// Crop returns the estimated crop of full, or full unchanged if the
// estimate has not stabilized yet.
func (e *RegionEstimator) Crop(full core.Region) core.Region {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.stable {
		return full
	}
	top := e.minY - regionPadding
	if top < 0 {
		top = 0
	}
	bottom := e.maxY + regionPadding
	height := bottom - top
	if height <= 0 || height > full.Height {
		return full
	}
	return core.Region{Left: full.Left, Top: full.Top + top, Width: full.Width, Height: height}
}

// Reset clears the accumulated estimate, e.g. on region change or an
// explicit resume.
func (e *RegionEstimator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.samples = 0
	e.minY, e.maxY = 0, 0
	e.stable = false
}
