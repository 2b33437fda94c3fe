// Package rules classifies a single detection against the classroom policy.
// Evaluation is pure: no I/O, no state, at most one finding per detection
// per frame in a fixed precedence order
package rules

import (
	"fmt"

	"classwatch/internal/core/violation"
	"classwatch/internal/core/vision"
)

// Config holds the tunable policy thresholds
type Config struct {
	// HeadTurnRatio flags a head turn when |noseX - eyeMidX| / eyeDist exceeds it
	HeadTurnRatio float64

	// AspectMin and AspectMax bound the acceptable box width/height band for the
	// landmark-free fallback; outside the band counts as a (degraded) head turn
	AspectMin float64
	AspectMax float64

	// DrowsyFrac flags drowsiness when the box top passes this fraction of frame height
	DrowsyFrac float64

	// RegionDepth is how many pixels below the face box the uniform sample covers
	RegionDepth int

	// DefaultUniform is the expected color when a subject has no override
	DefaultUniform vision.ColorLabel
}

// DefaultConfig returns the stock policy thresholds
func DefaultConfig() Config {
	return Config{
		HeadTurnRatio:  0.45,
		AspectMin:      0.65,
		AspectMax:      1.55,
		DrowsyFrac:     0.6,
		RegionDepth:    60,
		DefaultUniform: vision.ColorWhite,
	}
}

// Finding is the outcome of evaluating one detection
type Finding struct {
	Kind   violation.Kind
	Detail string

	// Degraded marks the landmark-free aspect-ratio fallback, which is a
	// materially lower-precision proxy and should be surfaced in diagnostics
	Degraded bool
}

// Uniforms resolves a subject's expected uniform color; a zero return means
// no override is stored and the default applies
type Uniforms interface {
	ExpectedUniform(subject string) vision.ColorLabel
}

// Evaluator applies the policy to detections
type Evaluator struct {
	cfg      Config
	colors   vision.Classifier
	uniforms Uniforms
}

// New builds an Evaluator; classifier and uniforms may be nil, which disables
// the uniform check
func New(cfg Config, colors vision.Classifier, uniforms Uniforms) *Evaluator {
	return &Evaluator{cfg: cfg, colors: colors, uniforms: uniforms}
}

// Evaluate classifies one detection against the full frame.
// Precedence: head turn, then drowsy, then uniform mismatch; first match wins
// so a subject reports at most one violation per frame
func (e *Evaluator) Evaluate(det vision.Detection, frame vision.Frame) (Finding, bool) {
	if det.Box.Empty() {
		return Finding{}, false
	}

	if turned, degraded := e.headTurned(det); turned {
		detail := "head turned"
		if degraded {
			detail = "head turned (aspect fallback)"
		}
		return Finding{Kind: violation.KindInattentive, Detail: detail, Degraded: degraded}, true
	}

	if frame.Height > 0 && float64(det.Box.Y) > e.cfg.DrowsyFrac*float64(frame.Height) {
		return Finding{Kind: violation.KindDrowsy, Detail: "head dropped low in frame"}, true
	}

	if f, ok := e.uniformMismatch(det, frame); ok {
		return f, true
	}

	return Finding{}, false
}

// headTurned applies the landmark ratio method, falling back to the
// aspect-ratio band when landmarks are unavailable
func (e *Evaluator) headTurned(det vision.Detection) (turned, degraded bool) {
	if lm := det.Landmarks; lm != nil {
		eyeDist := abs(lm.LeftEye.X - lm.RightEye.X)
		if eyeDist > 0 {
			mid := (lm.LeftEye.X + lm.RightEye.X) / 2
			offset := abs(lm.NoseTip.X - mid)
			return offset/eyeDist > e.cfg.HeadTurnRatio, false
		}
		// degenerate landmarks fall through to the box heuristic
	}
	a := det.Box.Aspect()
	if a == 0 {
		return false, false
	}
	return a < e.cfg.AspectMin || a > e.cfg.AspectMax, true
}

// uniformMismatch samples the band beneath the face box and compares the
// classifier label to the subject's expected color. Only evaluated for
// resolved identities; degenerate regions yield no classification
func (e *Evaluator) uniformMismatch(det vision.Detection, frame vision.Frame) (Finding, bool) {
	if !det.Known() || e.colors == nil {
		return Finding{}, false
	}
	region := vision.Box{
		X: det.Box.X,
		Y: det.Box.Y + det.Box.H,
		W: det.Box.W,
		H: e.cfg.RegionDepth,
	}.Clip(frame.Width, frame.Height)
	if region.Empty() {
		return Finding{}, false
	}

	label := e.colors.Classify(frame, region)
	if label == vision.ColorUnknown {
		return Finding{}, false
	}

	expected := e.cfg.DefaultUniform
	if e.uniforms != nil {
		if u := e.uniforms.ExpectedUniform(det.Identity); u != "" {
			expected = u
		}
	}
	if label == expected {
		return Finding{}, false
	}
	return Finding{
		Kind:   violation.KindUniformMismatch,
		Detail: fmt.Sprintf("uniform %s, expected %s", label, expected),
	}, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
