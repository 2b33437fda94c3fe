package rules

import (
	"testing"

	"classwatch/internal/core/violation"
	"classwatch/internal/core/vision"
)

// fakeColors always returns a fixed label
type fakeColors struct{ label vision.ColorLabel }

func (f fakeColors) Classify(vision.Frame, vision.Box) vision.ColorLabel { return f.label }

// fakeUniforms is a map-backed expectation lookup
type fakeUniforms map[string]vision.ColorLabel

func (f fakeUniforms) ExpectedUniform(subject string) vision.ColorLabel { return f[subject] }

func centeredLandmarks() *vision.Landmarks {
	return &vision.Landmarks{
		RightEye: vision.Point{X: 100, Y: 50},
		LeftEye:  vision.Point{X: 140, Y: 50},
		NoseTip:  vision.Point{X: 120, Y: 70},
	}
}

func turnedLandmarks() *vision.Landmarks {
	lm := centeredLandmarks()
	// offset 20 over eye distance 40 is ratio 0.5, past the 0.45 threshold
	lm.NoseTip.X = 140
	return lm
}

func baseDetection() vision.Detection {
	return vision.Detection{
		Box:       vision.Box{X: 100, Y: 40, W: 50, H: 60},
		Landmarks: centeredLandmarks(),
		Identity:  "alice",
	}
}

func baseFrame() vision.Frame { return vision.Frame{Width: 640, Height: 480} }

func TestEvaluateCompliantDetection(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), nil, nil)
	if f, ok := e.Evaluate(baseDetection(), baseFrame()); ok {
		t.Fatalf("compliant detection produced finding: %+v", f)
	}
}

func TestEvaluateEmptyBox(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), nil, nil)
	det := baseDetection()
	det.Box = vision.Box{}
	if _, ok := e.Evaluate(det, baseFrame()); ok {
		t.Fatal("empty box must never produce a finding")
	}
}

func TestHeadTurnLandmarkRatio(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), nil, nil)
	det := baseDetection()
	det.Landmarks = turnedLandmarks()

	f, ok := e.Evaluate(det, baseFrame())
	if !ok || f.Kind != violation.KindInattentive {
		t.Fatalf("want inattentive, got ok=%v finding=%+v", ok, f)
	}
	if f.Degraded {
		t.Fatal("landmark method must not be flagged degraded")
	}
}

func TestHeadTurnAspectFallback(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), nil, nil)
	det := baseDetection()
	det.Landmarks = nil
	det.Box = vision.Box{X: 10, Y: 40, W: 100, H: 50} // aspect 2.0, past the band

	f, ok := e.Evaluate(det, baseFrame())
	if !ok || f.Kind != violation.KindInattentive {
		t.Fatalf("want inattentive via fallback, got ok=%v finding=%+v", ok, f)
	}
	if !f.Degraded {
		t.Fatal("aspect fallback must be flagged degraded")
	}
}

func TestHeadTurnFallbackInsideBand(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), nil, nil)
	det := baseDetection()
	det.Landmarks = nil // aspect 50/60 sits inside the band

	if f, ok := e.Evaluate(det, baseFrame()); ok {
		t.Fatalf("in-band aspect produced finding: %+v", f)
	}
}

func TestDrowsyLowInFrame(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), nil, nil)
	det := baseDetection()
	det.Box.Y = 300 // past 0.6 * 480

	f, ok := e.Evaluate(det, baseFrame())
	if !ok || f.Kind != violation.KindDrowsy {
		t.Fatalf("want drowsy, got ok=%v finding=%+v", ok, f)
	}
}

func TestHeadTurnWinsOverDrowsy(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), nil, nil)
	det := baseDetection()
	det.Landmarks = turnedLandmarks()
	det.Box.Y = 300

	f, ok := e.Evaluate(det, baseFrame())
	if !ok || f.Kind != violation.KindInattentive {
		t.Fatalf("head turn must take precedence, got ok=%v finding=%+v", ok, f)
	}
}

func TestUniformMismatch(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), fakeColors{label: vision.ColorOther}, fakeUniforms{})
	f, ok := e.Evaluate(baseDetection(), baseFrame())
	if !ok || f.Kind != violation.KindUniformMismatch {
		t.Fatalf("want uniform mismatch, got ok=%v finding=%+v", ok, f)
	}
}

func TestUniformOverrideMatches(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), fakeColors{label: vision.ColorOther}, fakeUniforms{"alice": vision.ColorOther})
	if f, ok := e.Evaluate(baseDetection(), baseFrame()); ok {
		t.Fatalf("matching override produced finding: %+v", f)
	}
}

func TestUniformUnknownLabelIsNoFinding(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), fakeColors{label: vision.ColorUnknown}, fakeUniforms{})
	if f, ok := e.Evaluate(baseDetection(), baseFrame()); ok {
		t.Fatalf("unclassifiable region produced finding: %+v", f)
	}
}

func TestUniformSkippedForUnknownIdentity(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), fakeColors{label: vision.ColorOther}, fakeUniforms{})
	det := baseDetection()
	det.Identity = vision.Unknown
	if f, ok := e.Evaluate(det, baseFrame()); ok {
		t.Fatalf("unknown identity must skip uniform check, got %+v", f)
	}
}

func TestUniformRegionBelowFrameIsNoFinding(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig(), fakeColors{label: vision.ColorOther}, fakeUniforms{})
	det := baseDetection()
	det.Box.Y = 50 // under the drowsy line while the sample region falls off-frame
	frame := vision.Frame{Width: 640, Height: 110}
	if f, ok := e.Evaluate(det, frame); ok {
		t.Fatalf("off-frame sample region produced finding: %+v", f)
	}
}
