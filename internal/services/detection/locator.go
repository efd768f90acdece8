// Package detection implements the emotion detection core: face
// location, the tiered classifier cascade, and the temporal stability
// filter that keeps the reported emotion from flickering.
package detection

import (
	"image"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/vision"
)

// Region is a located face: its bounding box in frame coordinates and
// the grayscale crop handed to the classifier cascade.
type Region struct {
	Rect image.Rectangle
	Crop *image.Gray
}

// FaceLocator finds face regions in a frame. Runs on every frame, so
// implementations must stay cheap.
type FaceLocator interface {
	Locate(frame *vision.Frame) ([]Region, error)
}

// copyCrop extracts r from src into a tightly packed grayscale image:
// origin (0,0), stride equal to the crop width. A SubImage view shares
// the parent's backing array and stride, which the model tiers read as
// a contiguous buffer, so crops must always be copied out.
func copyCrop(src *image.Gray, r image.Rectangle) *image.Gray {
	crop := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		srcOff := src.PixOffset(r.Min.X, r.Min.Y+y)
		copy(crop.Pix[y*crop.Stride:y*crop.Stride+r.Dx()], src.Pix[srcOff:srcOff+r.Dx()])
	}
	return crop
}

// LargestRegion picks the biggest face by area. Only the primary
// subject is classified; the rest count toward presence only.
func LargestRegion(regions []Region) (Region, bool) {
	if len(regions) == 0 {
		return Region{}, false
	}
	best := regions[0]
	for _, r := range regions[1:] {
		if area(r.Rect) > area(best.Rect) {
			best = r
		}
	}
	return best, true
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
