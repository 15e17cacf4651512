package gate

import (
	"testing"

	"github.com/nicksukie/livesub/internal/core"
)

func TestRegionEstimatorNotStableReturnsFull(t *testing.T) {
	e := NewRegionEstimator()
	full := core.Region{Left: 0, Top: 0, Width: 1920, Height: 1080}
	e.Observe([]core.TextBox{{YTop: 900, YBottom: 950}})
	if got := e.Crop(full); got != full {
		t.Fatalf("expected the full region before stabilizing, got %+v", got)
	}
}

func TestRegionEstimatorStabilizesAndCrops(t *testing.T) {
	e := NewRegionEstimator()
	full := core.Region{Left: 0, Top: 0, Width: 1920, Height: 1080}
	for i := 0; i < regionWarmupMin; i++ {
		e.Observe([]core.TextBox{{YTop: 900, YBottom: 950}})
	}
	got := e.Crop(full)
	wantTop := 900 - regionPadding
	wantHeight := (950 + regionPadding) - wantTop
	if got.Top != full.Top+wantTop || got.Height != wantHeight {
		t.Fatalf("expected crop top=%d height=%d, got %+v", wantTop, wantHeight, got)
	}
	if got.Left != full.Left || got.Width != full.Width {
		t.Fatalf("expected crop to keep full horizontal extent, got %+v", got)
	}
}

func TestRegionEstimatorWidensToCoverAllObservations(t *testing.T) {
	e := NewRegionEstimator()
	full := core.Region{Left: 0, Top: 0, Width: 1920, Height: 1080}
	e.Observe([]core.TextBox{{YTop: 900, YBottom: 920}})
	e.Observe([]core.TextBox{{YTop: 850, YBottom: 930}})
	for i := 0; i < regionWarmupMin-2; i++ {
		e.Observe([]core.TextBox{{YTop: 870, YBottom: 910}})
	}
	got := e.Crop(full)
	if got.Top != full.Top+(850-regionPadding) {
		t.Fatalf("expected crop to extend up to the earliest top observed, got %+v", got)
	}
}

func TestRegionEstimatorResetClearsEstimate(t *testing.T) {
	e := NewRegionEstimator()
	full := core.Region{Left: 0, Top: 0, Width: 1920, Height: 1080}
	for i := 0; i < regionWarmupMin; i++ {
		e.Observe([]core.TextBox{{YTop: 900, YBottom: 950}})
	}
	e.Reset()
	if got := e.Crop(full); got != full {
		t.Fatalf("expected the full region again after reset, got %+v", got)
	}
}

func TestRegionEstimatorIgnoresEmptyBoxes(t *testing.T) {
	e := NewRegionEstimator()
	e.Observe(nil)
	full := core.Region{Left: 0, Top: 0, Width: 1920, Height: 1080}
	if got := e.Crop(full); got != full {
		t.Fatalf("expected empty observations to have no effect, got %+v", got)
	}
}
