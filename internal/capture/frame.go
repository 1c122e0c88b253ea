// Package capture turns camera snapshots and photo files into compact JPEG
// frames ready to attach to a draft or send for appraisal.
package capture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register the PNG decoder
	"io"
	"net/http"
	"os"

	"github.com/Veraticus/ledgerlens/internal/common"
	"golang.org/x/image/draw"
)

// MaxDimension is the largest width or height a frame keeps.
const MaxDimension = 1024

// JPEGQuality is the re-encode quality for every frame.
const JPEGQuality = 80

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Frame is one captured still, always JPEG encoded.
type Frame struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// DataURL renders the frame as a data: URL.
func (f Frame) DataURL() string {
	return "data:" + f.MIME + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// IsZero reports whether the frame carries no image.
func (f Frame) IsZero() bool {
	return len(f.Data) == 0
}

// Process sniffs the image format, downscales anything larger than
// MaxDimension and re-encodes as JPEG.
func Process(r io.Reader) (Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: reading image data: %w", common.ErrCaptureFailed, err)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return Frame{}, fmt.Errorf("%w: unsupported image format %s (only JPEG and PNG accepted)", common.ErrCaptureFailed, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Frame{}, fmt.Errorf("%w: decoding image: %w", common.ErrCaptureFailed, err)
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return Frame{}, fmt.Errorf("%w: encoding JPEG: %w", common.ErrCaptureFailed, err)
	}

	b := img.Bounds()
	return Frame{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// FromFile runs a photo on disk through Process.
func FromFile(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %w", common.ErrCaptureFailed, err)
	}
	defer func() { _ = f.Close() }()

	return Process(f)
}

// downscale keeps the aspect ratio and returns img as-is when it already fits.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW = max(newW, 1)
	newH = max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
