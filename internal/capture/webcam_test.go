package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// Captured mats are BGR and ToImage performs the reorder itself. A pure
// red pixel that comes back blue means the frame was converted twice.
func TestCapturedFrameChannelOrder(t *testing.T) {
	mat := gocv.NewMatWithSize(1, 1, gocv.MatTypeCV8UC3)
	defer mat.Close()

	// BGR bytes for pure red.
	mat.SetUCharAt(0, 0, 0)
	mat.SetUCharAt(0, 1, 0)
	mat.SetUCharAt(0, 2, 255)

	img, err := mat.ToImage()
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(255), r>>8)
	assert.Equal(t, uint32(0), g>>8)
	assert.Equal(t, uint32(0), b>>8)
}
