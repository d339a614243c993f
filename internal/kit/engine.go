package kit

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// labelChars is the character set for kit label OCR. Labels carry only
// digits, uppercase letters, and date separators; restricting the set
// avoids 0/O and 1/I confusion.
const labelChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-/."

// Engine performs OCR on kit label photos using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Lot and expiry codes are not English words; disable dictionary
	// correction so Tesseract doesn't "fix" them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ScanImage runs OCR over a label photo and decodes the lot and expiry.
func (e *Engine) ScanImage(img gocv.Mat) (Label, error) {
	if img.Empty() {
		return Label{}, fmt.Errorf("empty image")
	}

	processed := preprocessLabel(img)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return Label{}, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return Label{}, fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetWhitelist(labelChars + " "); err != nil {
		return Label{}, fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return Label{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return Label{}, fmt.Errorf("OCR failed: %w", err)
	}

	return ParseFields(strings.Fields(strings.ToUpper(text))), nil
}

// ScanFile runs OCR over a label photo loaded from disk.
func (e *Engine) ScanFile(path string) (Label, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return Label{}, fmt.Errorf("failed to read image %s", path)
	}
	defer img.Close()

	return e.ScanImage(img)
}

// preprocessLabel prepares a label photo for OCR: upscale small crops,
// flatten to grayscale, boost local contrast, and binarize.
func preprocessLabel(region gocv.Mat) gocv.Mat {
	h, w := region.Rows(), region.Cols()

	var scaled gocv.Mat
	if minDim := min(h, w); minDim < 150 {
		scale := 150.0 / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = region.Clone()
	}

	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{8, 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	gray.Close()

	binary := gocv.NewMat()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	enhanced.Close()

	// Tesseract expects dark text on a light background. Label text is a
	// small share of the crop, so a mostly-dark binary means the photo
	// was light-on-dark; invert it.
	whiteCount := gocv.CountNonZero(binary)
	if float64(whiteCount) < 0.5*float64(binary.Rows()*binary.Cols()) {
		gocv.BitwiseNot(binary, &binary)
	}

	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
}
