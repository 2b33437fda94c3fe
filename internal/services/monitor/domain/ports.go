// Package domain defines the monitor loop's upstream capability seams
package domain

import (
	"context"

	"classwatch/internal/core/vision"
)

// FrameSource yields the latest camera frame
type FrameSource interface {
	Frame(ctx context.Context) (vision.Frame, error)
}

// Perception localizes and identifies faces in a frame
type Perception interface {
	Detect(ctx context.Context, f vision.Frame) ([]vision.Detection, error)
}
