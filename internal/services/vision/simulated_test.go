package vision

import (
	"bytes"
	"image/jpeg"
	"testing"
)

func TestSimulatedSource_FrameShape(t *testing.T) {
	source := NewSimulatedSource(1.0)
	defer source.Close()

	frame, err := source.Next()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !frame.Placeholder {
		t.Error("Expected a placeholder frame")
	}
	if frame.Width != simWidth || frame.Height != simHeight {
		t.Errorf("Expected %dx%d, got %dx%d", simWidth, simHeight, frame.Width, frame.Height)
	}
	if frame.Gray == nil {
		t.Fatal("Expected a grayscale image for analysis")
	}
	if frame.CapturedAt.IsZero() {
		t.Error("Expected a capture timestamp")
	}

	img, err := jpeg.Decode(bytes.NewReader(frame.JPEG))
	if err != nil {
		t.Fatalf("Placeholder snapshot is not a decodable JPEG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != simWidth || b.Dy() != simHeight {
		t.Errorf("Decoded snapshot is %dx%d, expected %dx%d", b.Dx(), b.Dy(), simWidth, simHeight)
	}
}

func TestSimulatedSource_PresenceRatio(t *testing.T) {
	always := NewSimulatedSource(1.0)
	defer always.Close()
	for i := 0; i < 20; i++ {
		frame, err := always.Next()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !frame.SimulatedPresence {
			t.Fatal("Ratio 1.0 must always simulate presence")
		}
	}

	never := NewSimulatedSource(0)
	defer never.Close()
	for i := 0; i < 20; i++ {
		frame, err := never.Next()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if frame.SimulatedPresence {
			t.Fatal("Ratio 0 must never simulate presence")
		}
	}
}

func TestSimulatedSource_MockFaceBoxTracksPresence(t *testing.T) {
	present := renderPlaceholder(true)
	absent := renderPlaceholder(false)

	// Top edge of the mock face box.
	if present.GrayAt(320, 150).Y != 255 {
		t.Error("Expected the face box drawn on present frames")
	}
	if absent.GrayAt(320, 150).Y == 255 {
		t.Error("Expected no face box on absent frames")
	}
}

func TestSimulatedSource_CloseIsTerminal(t *testing.T) {
	source := NewSimulatedSource(1.0)

	if err := source.Close(); err != nil {
		t.Fatalf("Unexpected close error: %v", err)
	}
	if err := source.Close(); err != nil {
		t.Fatalf("Close must be idempotent: %v", err)
	}
	if _, err := source.Next(); err != ErrUnavailable {
		t.Errorf("Expected ErrUnavailable after close, got %v", err)
	}
}
