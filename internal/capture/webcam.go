package capture

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// WebcamSource grabs frames from a locally attached camera via OpenCV.
// Each Acquire opens the device, grabs a small burst to let auto-exposure
// settle, and closes it again; the reader takes a measurement at most
// every few minutes, so holding the device open buys nothing.
type WebcamSource struct {
	DeviceID int

	// WarmupFrames is the number of frames discarded before the one that
	// is returned. Zero means 5.
	WarmupFrames int
}

// Acquire implements Source.
func (s WebcamSource) Acquire(ctx context.Context) (image.Image, error) {
	cam, err := gocv.OpenVideoCapture(s.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: opening device %d: %w", ErrAcquisition, s.DeviceID, err)
	}
	defer cam.Close()

	warmup := s.WarmupFrames
	if warmup <= 0 {
		warmup = 5
	}

	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i <= warmup; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
		}
		if ok := cam.Read(&frame); !ok || frame.Empty() {
			return nil, fmt.Errorf("%w: device %d returned no frame", ErrAcquisition, s.DeviceID)
		}
	}

	// The captured mat is BGR; ToImage performs the BGR to RGBA
	// conversion itself, so no explicit CvtColor here.
	img, err := frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: converting frame: %w", ErrAcquisition, err)
	}
	return img, nil
}
