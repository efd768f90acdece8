// Package vision abstracts the camera into a frame source the
// processing loop can pull from, with a simulated fallback for hosts
// without a usable capture device.
package vision

import (
	"errors"
	"image"
	"time"
)

// ErrUnavailable is returned when no frame could be produced within the
// source's time budget.
var ErrUnavailable = errors.New("frame source unavailable")

// Frame is a single captured (or synthesized) image.
//
// Frames are immutable once returned from a source: downstream stages
// read but never modify them.
type Frame struct {
	// JPEG is the encoded snapshot handed to event consumers.
	JPEG []byte
	// Gray is the decoded grayscale image used for analysis. Nil when
	// no decodable signal exists.
	Gray   *image.Gray
	Width  int
	Height int
	// CapturedAt carries both wall-clock and monotonic readings.
	CapturedAt time.Time
	// Placeholder is true for synthesized demo frames.
	Placeholder bool
	// SimulatedPresence drives the is_present flag for placeholder
	// frames. Meaningless for real captures.
	SimulatedPresence bool
}

// FrameSource produces a sequence of frames. Next must not hang:
// implementations convert timeouts into ErrUnavailable.
type FrameSource interface {
	Next() (*Frame, error)
	// Close releases any underlying device handle. Idempotent.
	Close() error
}
