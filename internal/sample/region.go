// Package sample extracts a representative reagent color from a region of
// a captured frame using outlier-trimmed averaging.
package sample

import (
	"errors"

	"reagent-reader/pkg/geometry"
)

var (
	// ErrInvalidRegion indicates a sampling rectangle with non-positive
	// size or one that falls entirely outside the image bounds.
	ErrInvalidRegion = errors.New("invalid sampling region")

	// ErrInsufficientSample indicates the trimmed pixel set was empty.
	ErrInsufficientSample = errors.New("insufficient pixels in sample region")
)

const (
	// DefaultROIFraction is the fraction of each image dimension covered
	// by the centered region of interest.
	DefaultROIFraction = 0.25

	// referencePatchFraction is the reference patch side length as a
	// fraction of the smaller image dimension.
	referencePatchFraction = 0.10

	// referencePatchInset is the fixed inset of the reference patch from
	// the bottom-right image corner, in pixels.
	referencePatchInset = 10
)

// CenterRegion returns a centered box covering the given fraction of each
// image dimension, rounded down.
func CenterRegion(width, height int, fraction float64) geometry.RectInt {
	roiW := int(float64(width) * fraction)
	roiH := int(float64(height) * fraction)
	return geometry.RectInt{
		X:      (width - roiW) / 2,
		Y:      (height - roiH) / 2,
		Width:  roiW,
		Height: roiH,
	}
}

// ReferencePatchRegion returns the square over the neutral reference
// sticker: side floor(min(width,height)*0.10), anchored at the
// bottom-right corner with a fixed 10 px inset from both edges.
func ReferencePatchRegion(width, height int) geometry.RectInt {
	side := int(float64(min(width, height)) * referencePatchFraction)
	return geometry.RectInt{
		X:      width - referencePatchInset - side,
		Y:      height - referencePatchInset - side,
		Width:  side,
		Height: side,
	}.ClampTo(width, height)
}
