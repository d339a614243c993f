// Package capture acquires frames from the measurement camera. Acquisition
// is the pipeline's only I/O-bound step; every Source honors context
// cancellation and deadlines.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"

	_ "golang.org/x/image/tiff"
)

// ErrAcquisition indicates the source image could not be obtained or
// decoded. The core never retries; re-capturing is the caller's call.
var ErrAcquisition = errors.New("image acquisition failed")

// Source produces one decoded frame per Acquire call.
type Source interface {
	Acquire(ctx context.Context) (image.Image, error)
}

// FileSource decodes a frame from a file on disk (PNG, JPEG, or TIFF).
type FileSource struct {
	Path string
}

// Acquire implements Source.
func (s FileSource) Acquire(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrAcquisition, s.Path, err)
	}
	return img, nil
}

// HTTPSource fetches a snapshot from a network camera endpoint.
type HTTPSource struct {
	URL string

	// Client defaults to http.DefaultClient. Deadlines come from the
	// Acquire context.
	Client *http.Client
}

// Acquire implements Source.
func (s HTTPSource) Acquire(ctx context.Context) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: camera returned %s", ErrAcquisition, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding snapshot: %w", ErrAcquisition, err)
	}
	return img, nil
}

// StaticSource returns a pre-decoded frame. Used by tests and by the UI
// when re-analyzing the last captured frame.
type StaticSource struct {
	Image image.Image
}

// Acquire implements Source.
func (s StaticSource) Acquire(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	if s.Image == nil {
		return nil, fmt.Errorf("%w: no frame", ErrAcquisition)
	}
	return s.Image, nil
}
