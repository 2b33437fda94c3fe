// Package vision holds the per-frame perception types shared by the pipeline.
// Detections are ephemeral: produced by the perception capability, consumed
// within one frame cycle, never persisted
package vision

import "image"

// Unknown is the identity label for an unresolved face
const Unknown = "Unknown"

// Box is a pixel-space bounding box
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Empty reports whether the box has zero area
func (b Box) Empty() bool { return b.W <= 0 || b.H <= 0 }

// Aspect returns width/height, or 0 for a degenerate box
func (b Box) Aspect() float64 {
	if b.H <= 0 {
		return 0
	}
	return float64(b.W) / float64(b.H)
}

// Clip returns the box intersected with a w x h frame
func (b Box) Clip(w, h int) Box {
	x0, y0 := max(b.X, 0), max(b.Y, 0)
	x1, y1 := min(b.X+b.W, w), min(b.Y+b.H, h)
	if x1 <= x0 || y1 <= y0 {
		return Box{}
	}
	return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Point is a sub-pixel landmark coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmarks is the optional 5-point set produced by the face detector
type Landmarks struct {
	RightEye   Point `json:"right_eye"`
	LeftEye    Point `json:"left_eye"`
	NoseTip    Point `json:"nose_tip"`
	RightMouth Point `json:"right_mouth"`
	LeftMouth  Point `json:"left_mouth"`
}

// Detection is one frame's localization and identity guess for one face
type Detection struct {
	Box        Box        `json:"box"`
	Landmarks  *Landmarks `json:"landmarks,omitempty"`
	Identity   string     `json:"identity"`
	Confidence float64    `json:"confidence"`
}

// Known reports whether the identity resolved to a registered subject
func (d Detection) Known() bool { return d.Identity != "" && d.Identity != Unknown }

// Frame is one decoded video frame plus its dimensions
type Frame struct {
	Image  image.Image
	Width  int
	Height int
}

// FrameOf wraps a decoded image as a Frame
func FrameOf(img image.Image) Frame {
	if img == nil {
		return Frame{}
	}
	b := img.Bounds()
	return Frame{Image: img, Width: b.Dx(), Height: b.Dy()}
}
