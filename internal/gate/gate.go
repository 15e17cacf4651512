// Package gate implements the obstruction/overlap/mixed-content/
// language-mismatch gate that decides whether a recognition result is
// allowed to reach a reconciler, and whether the capture stage itself
// should pause (spec §4.3).
package gate

import (
	"sync"
	"time"

	"github.com/nicksukie/livesub/internal/core"
	"github.com/nicksukie/livesub/internal/reconcile"
)

// Decision is the outcome of evaluating one recognition result.
type Decision struct {
	Allow bool

	// Pause requests the capture stage stop producing frames until resumed.
	Pause bool
	// StatusMessage explains a pause or skip to the user, when non-empty.
	StatusMessage string
	StatusExpiry  time.Duration

	// SnapAway requests the overlay animate away from the OCR region.
	SnapAway     bool
	SnapRegion   core.Region
	SnapGapAbove bool // true = snap above, false = snap below

	// HideAndCapture requests the overlay hide, a single capture happen,
	// then the overlay re-show — the allow_overlap alternative to snapping.
	HideAndCapture bool
}

const (
	overlapInsetMax   = 30
	overlapMinFraction = 0.10
	overlapThrottle    = 500 * time.Millisecond // 2Hz

	wordCapDefault = 0 // 0 means disabled unless MaxWordsEnabled is set

	gateTripStatusExpiry = 10 * time.Second
)

// Config holds the gate's tunables, all of which map to settings-store keys
// listed in spec §6.
type Config struct {
	DetectMixedContent    bool
	MaxWordsEnabled       bool
	MaxWordsForTranslation int
	AllowOverlap          bool
	AutoDetectTextRegion  bool
}

func DefaultConfig() Config {
	return Config{
		DetectMixedContent:     true,
		MaxWordsEnabled:        false,
		MaxWordsForTranslation: 40,
		AllowOverlap:           false,
		AutoDetectTextRegion:   true,
	}
}

// Gate is the stateful obstruction/overlap/mixed-content/language-mismatch
// decision point sitting between the recognizer and the reconcilers.
type Gate struct {
	mu sync.Mutex

	cfg Config
	log core.Logger

	paused      bool
	overlayRect core.Region
	learnRect   *core.Region

	lastOverlapCapture time.Time

	bands  *BandDetector
	region *RegionEstimator
	echo   *EchoFilter
}

func New(cfg Config, logger core.Logger) *Gate {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Gate{
		cfg:    cfg,
		log:    logger,
		bands:  NewBandDetector(),
		region: NewRegionEstimator(),
		echo:   NewEchoFilter(),
	}
}

func (g *Gate) SetPaused(p bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = p
}

func (g *Gate) SetOverlayRect(r core.Region) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.overlayRect = r
}

func (g *Gate) SetLearnRect(r *core.Region) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.learnRect = r
}

// RecordDisplayed feeds text the overlay is currently showing into the
// self-echo/UI-echo filters (rule 6, rule 7).
func (g *Gate) RecordDisplayed(text string) {
	g.echo.RecordDisplayed(text)
}

// RecordLearnPanel feeds text from the learn panel into the self-echo
// filter (rule 7).
func (g *Gate) RecordLearnPanel(text string) {
	g.echo.RecordLearnPanel(text)
}

// CropRegion returns the currently-estimated dynamic crop, if stable.
func (g *Gate) CropRegion(full core.Region) core.Region {
	if !g.cfg.AutoDetectTextRegion {
		return full
	}
	return g.region.Crop(full)
}

// ObserveBoxes feeds the dynamic text-region estimator (outside the main
// rule chain, since it runs unconditionally on every accepted result).
func (g *Gate) ObserveBoxes(boxes []core.TextBox) {
	g.region.Observe(boxes)
}

// ResetRegionEstimate clears the dynamic crop, e.g. on an explicit region
// change or resume.
func (g *Gate) ResetRegionEstimate() {
	g.region.Reset()
}

// Evaluate runs the seven ordered rules against one recognition result.
func (g *Gate) Evaluate(result core.RecognitionResult, ocrRegion core.Region, sourceIsCJK bool, now time.Time) Decision {
	g.mu.Lock()
	paused := g.paused
	overlay := g.overlayRect
	allowOverlap := g.cfg.AllowOverlap
	g.mu.Unlock()

	// Rule 1: explicit pause.
	if paused {
		return Decision{Allow: false}
	}

	// Rule 2: overlay overlap.
	if overlay != (core.Region{}) {
		if overlapIsSignificant(ocrRegion, overlay, overlapInsetMax, overlapMinFraction) {
			if allowOverlap {
				g.mu.Lock()
				throttled := now.Sub(g.lastOverlapCapture) < overlapThrottle
				if !throttled {
					g.lastOverlapCapture = now
				}
				g.mu.Unlock()
				if throttled {
					return Decision{Allow: false}
				}
				return Decision{Allow: true, HideAndCapture: true}
			}
			above := ocrRegion.Top < overlay.Top
			return Decision{
				Allow:        false,
				SnapAway:     true,
				SnapRegion:   ocrRegion,
				SnapGapAbove: above,
			}
		}
	}

	// Rule 3: temporal mixed-content detector. The band detector itself is
	// fed frame pixels separately via ObserveFrame; here we only consult
	// its running conclusion.
	if g.cfg.DetectMixedContent && g.bands.IsMixedContent() {
		return Decision{
			Allow:         false,
			Pause:         true,
			StatusMessage: "text obstructed: mixed static and dynamic content detected",
			StatusExpiry:  gateTripStatusExpiry,
		}
	}

	// Rule 4: language-mismatch detector.
	if mismatch, reason := languageMismatch(result.Text, sourceIsCJK); mismatch {
		g.log.Warn("gate: language mismatch", "reason", reason)
		return Decision{
			Allow:         false,
			Pause:         true,
			StatusMessage: "text obstructed",
			StatusExpiry:  gateTripStatusExpiry,
		}
	}

	// Rule 5: word-count cap.
	if g.cfg.MaxWordsEnabled && g.cfg.MaxWordsForTranslation > 0 {
		if reconcile.CountWords(result.Text) > g.cfg.MaxWordsForTranslation {
			return Decision{Allow: false}
		}
	}

	// Rule 6: UI-echo filter.
	if g.echo.IsUIEcho(result.Text) {
		return Decision{Allow: false}
	}

	// Rule 7: self-echo filter.
	if g.echo.IsSelfEcho(result.Text) {
		return Decision{Allow: false}
	}

	return Decision{Allow: true}
}

// ObserveFrame feeds the mixed-content band detector a new frame. Called
// once per captured frame, independent of Evaluate.
func (g *Gate) ObserveFrame(pixels []byte, width, height int) {
	g.bands.Observe(pixels, width, height)
}

func overlapIsSignificant(region, overlay core.Region, inset int, minFraction float64) bool {
	if region == (core.Region{}) || overlay == (core.Region{}) {
		return false
	}
	margin := inset
	if overlay.Width/3 < margin {
		margin = overlay.Width / 3
	}
	if overlay.Height/3 < margin {
		margin = overlay.Height / 3
	}
	innerW := overlay.Width - 2*margin
	if innerW < 10 {
		innerW = 10
	}
	innerH := overlay.Height - 2*margin
	if innerH < 10 {
		innerH = 10
	}
	inner := core.Region{
		Left:   overlay.Left + margin,
		Top:    overlay.Top + margin,
		Width:  innerW,
		Height: innerH,
	}
	overlapRegion, ok := region.Intersect(inner)
	if !ok {
		return false
	}
	capture := region.Area()
	if capture == 0 {
		return false
	}
	return float64(overlapRegion.Area()) >= float64(capture)*minFraction
}
