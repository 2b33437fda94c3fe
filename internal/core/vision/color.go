package vision

import "image"

// ColorLabel is the coarse classification returned by a color classifier
type ColorLabel string

const (
	// ColorUnknown means the region could not be classified (degenerate crop etc)
	ColorUnknown ColorLabel = "unknown"

	// ColorWhite is the default expected uniform color
	ColorWhite ColorLabel = "white"

	// ColorOther is anything that is not predominantly white
	ColorOther ColorLabel = "other"
)

// Classifier returns a dominant-color label for a frame sub-region
type Classifier interface {
	Classify(frame Frame, region Box) ColorLabel
}

// WhiteBandClassifier is the default classifier: a pixel counts as white when
// its value is high and its saturation low (the HSV band (0,0,200)..(180,40,255)),
// and the region is white when enough of its pixels qualify
type WhiteBandClassifier struct {
	// MinValue is the minimum channel max (0..255) for a white pixel
	MinValue uint32
	// MaxSaturation is the maximum saturation (0..255 scale) for a white pixel
	MaxSaturation uint32
	// MinRatio is the white-pixel fraction at which the region is labeled white
	MinRatio float64
}

// NewWhiteBandClassifier returns a classifier with the stock thresholds
func NewWhiteBandClassifier() *WhiteBandClassifier {
	return &WhiteBandClassifier{MinValue: 200, MaxSaturation: 40, MinRatio: 0.3}
}

// Classify samples every pixel of region and returns white, other, or unknown
// for a degenerate or out-of-frame region
func (c *WhiteBandClassifier) Classify(frame Frame, region Box) ColorLabel {
	if frame.Image == nil {
		return ColorUnknown
	}
	r := region.Clip(frame.Width, frame.Height)
	if r.Empty() {
		return ColorUnknown
	}

	base := frame.Image.Bounds().Min
	rect := image.Rect(base.X+r.X, base.Y+r.Y, base.X+r.X+r.W, base.Y+r.Y+r.H)

	var white, total int
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			pr, pg, pb, _ := frame.Image.At(x, y).RGBA()
			// scale 16-bit channels down to 8-bit
			r8, g8, b8 := pr>>8, pg>>8, pb>>8
			v := max(r8, max(g8, b8))
			m := min(r8, min(g8, b8))
			total++
			if v < c.MinValue {
				continue
			}
			// saturation on the 0..255 scale, guarded for black
			var sat uint32
			if v > 0 {
				sat = (v - m) * 255 / v
			}
			if sat <= c.MaxSaturation {
				white++
			}
		}
	}
	if total == 0 {
		return ColorUnknown
	}
	if float64(white)/float64(total) > c.MinRatio {
		return ColorWhite
	}
	return ColorOther
}
