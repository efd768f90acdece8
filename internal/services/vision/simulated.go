package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"sync"
	"time"
)

const (
	simWidth  = 640
	simHeight = 480
)

// SimulatedSource synthesizes placeholder frames when no capture device
// is usable, so live consumers stay exercised in demo mode. Presence is
// drawn at random with the configured ratio.
type SimulatedSource struct {
	mu            sync.Mutex
	rng           *rand.Rand
	presenceRatio float64
	closed        bool
}

// NewSimulatedSource creates a simulated source. presenceRatio is the
// probability that a given frame reports someone present.
func NewSimulatedSource(presenceRatio float64) *SimulatedSource {
	return &SimulatedSource{
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		presenceRatio: presenceRatio,
	}
}

// Next renders a placeholder frame. It never blocks.
func (s *SimulatedSource) Next() (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrUnavailable
	}
	present := s.rng.Float64() < s.presenceRatio

	gray := renderPlaceholder(present)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gray, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder frame: %w", err)
	}

	return &Frame{
		JPEG:              buf.Bytes(),
		Gray:              gray,
		Width:             simWidth,
		Height:            simHeight,
		CapturedAt:        time.Now(),
		Placeholder:       true,
		SimulatedPresence: present,
	}, nil
}

// Close marks the source stopped.
func (s *SimulatedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// renderPlaceholder draws a flat demo frame: a header band, and a mock
// face box when presence is simulated.
func renderPlaceholder(present bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, simWidth, simHeight))

	fillRect(img, img.Bounds(), 100)
	fillRect(img, image.Rect(0, 0, simWidth, 60), 60)

	if present {
		drawRect(img, image.Rect(200, 150, 440, 390), 255, 2)
	}

	return img
}

func fillRect(img *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func drawRect(img *image.Gray, r image.Rectangle, v uint8, thickness int) {
	for t := 0; t < thickness; t++ {
		inner := image.Rect(r.Min.X+t, r.Min.Y+t, r.Max.X-t, r.Max.Y-t)
		for x := inner.Min.X; x < inner.Max.X; x++ {
			img.SetGray(x, inner.Min.Y, color.Gray{Y: v})
			img.SetGray(x, inner.Max.Y-1, color.Gray{Y: v})
		}
		for y := inner.Min.Y; y < inner.Max.Y; y++ {
			img.SetGray(inner.Min.X, y, color.Gray{Y: v})
			img.SetGray(inner.Max.X-1, y, color.Gray{Y: v})
		}
	}
}
