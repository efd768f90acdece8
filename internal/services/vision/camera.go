package vision

import (
	"fmt"
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// CameraSource captures frames from a local video device through OpenCV.
// It holds an exclusive OS-level device handle until Close is called.
type CameraSource struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	mat     gocv.Mat
	gray    gocv.Mat
	timeout time.Duration
	closed  bool
}

// OpenCamera opens the capture device and applies the requested
// resolution. The returned source must be closed by the caller.
func OpenCamera(device, width, height int, timeout time.Duration) (*CameraSource, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera device %d: %w", device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera device %d: %w", device, ErrUnavailable)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(height))

	return &CameraSource{
		capture: capture,
		mat:     gocv.NewMat(),
		gray:    gocv.NewMat(),
		timeout: timeout,
	}, nil
}

// Next captures one frame. A capture that does not complete within the
// configured timeout is reported as ErrUnavailable.
func (s *CameraSource) Next() (*Frame, error) {
	type result struct {
		frame *Frame
		err   error
	}

	ch := make(chan result, 1)
	go func() {
		frame, err := s.read()
		ch <- result{frame, err}
	}()

	select {
	case r := <-ch:
		return r.frame, r.err
	case <-time.After(s.timeout):
		return nil, fmt.Errorf("capture timed out after %s: %w", s.timeout, ErrUnavailable)
	}
}

func (s *CameraSource) read() (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrUnavailable
	}
	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, fmt.Errorf("failed to read frame: %w", ErrUnavailable)
	}

	buf, err := gocv.IMEncode(".jpg", s.mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	jpeg := make([]byte, len(buf.GetBytes()))
	copy(jpeg, buf.GetBytes())
	buf.Close()

	if err := gocv.CvtColor(s.mat, &s.gray, gocv.ColorBGRToGray); err != nil {
		return nil, fmt.Errorf("failed to convert frame to grayscale: %w", err)
	}
	img, err := s.gray.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to export frame: %w", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected frame format %T: %w", img, ErrUnavailable)
	}

	return &Frame{
		JPEG:       jpeg,
		Gray:       gray,
		Width:      s.mat.Cols(),
		Height:     s.mat.Rows(),
		CapturedAt: time.Now(),
	}, nil
}

// Close releases the device handle. Safe to call more than once.
func (s *CameraSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.mat.Close()
	s.gray.Close()
	return s.capture.Close()
}
