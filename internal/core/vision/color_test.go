package vision

import (
	"image"
	"image/color"
	"testing"
)

func solidFrame(w, h int, c color.Color) Frame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return FrameOf(img)
}

func TestClassifyWhiteRegion(t *testing.T) {
	t.Parallel()

	f := solidFrame(20, 20, color.RGBA{R: 245, G: 245, B: 245, A: 255})
	c := NewWhiteBandClassifier()
	if got := c.Classify(f, Box{X: 0, Y: 0, W: 20, H: 20}); got != ColorWhite {
		t.Fatalf("white region classified as %q", got)
	}
}

func TestClassifySaturatedRegion(t *testing.T) {
	t.Parallel()

	f := solidFrame(20, 20, color.RGBA{R: 200, G: 30, B: 30, A: 255})
	c := NewWhiteBandClassifier()
	if got := c.Classify(f, Box{X: 0, Y: 0, W: 20, H: 20}); got != ColorOther {
		t.Fatalf("saturated region classified as %q", got)
	}
}

func TestClassifyDarkRegion(t *testing.T) {
	t.Parallel()

	// low value keeps pixels out of the white band even with zero saturation
	f := solidFrame(20, 20, color.RGBA{R: 40, G: 40, B: 40, A: 255})
	c := NewWhiteBandClassifier()
	if got := c.Classify(f, Box{X: 0, Y: 0, W: 20, H: 20}); got != ColorOther {
		t.Fatalf("dark region classified as %q", got)
	}
}

func TestClassifyMixedRegionCrossesRatio(t *testing.T) {
	t.Parallel()

	// 40% white pixels clears the 0.3 ratio
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if y < 4 {
				img.Set(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 20, G: 100, B: 180, A: 255})
			}
		}
	}
	c := NewWhiteBandClassifier()
	if got := c.Classify(FrameOf(img), Box{X: 0, Y: 0, W: 10, H: 10}); got != ColorWhite {
		t.Fatalf("40%% white region classified as %q", got)
	}
}

func TestClassifyDegenerateRegion(t *testing.T) {
	t.Parallel()

	f := solidFrame(10, 10, color.White)
	c := NewWhiteBandClassifier()

	if got := c.Classify(f, Box{}); got != ColorUnknown {
		t.Fatalf("zero box classified as %q", got)
	}
	if got := c.Classify(f, Box{X: 50, Y: 50, W: 10, H: 10}); got != ColorUnknown {
		t.Fatalf("out-of-frame box classified as %q", got)
	}
	if got := c.Classify(Frame{}, Box{X: 0, Y: 0, W: 5, H: 5}); got != ColorUnknown {
		t.Fatalf("nil image classified as %q", got)
	}
}

func TestBoxClip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Box
		want Box
	}{
		{Box{X: -5, Y: -5, W: 20, H: 20}, Box{X: 0, Y: 0, W: 15, H: 15}},
		{Box{X: 90, Y: 90, W: 20, H: 20}, Box{X: 90, Y: 90, W: 10, H: 10}},
		{Box{X: 200, Y: 0, W: 10, H: 10}, Box{}},
		{Box{X: 10, Y: 10, W: 0, H: 5}, Box{}},
	}
	for _, c := range cases {
		if got := c.in.Clip(100, 100); got != c.want {
			t.Errorf("Clip(%+v)=%+v want %+v", c.in, got, c.want)
		}
	}
}
