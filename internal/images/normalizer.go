package images

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

var (
	ErrDecode = errors.New("payload is not a decodable image")
)

// Defaults mirror the client-side pipeline: longest side capped at 800,
// re-encoded as JPEG at 70% quality, at most 3 images per listing.
const (
	DefaultMaxDimension  = 800
	DefaultJPEGQuality   = 70
	DefaultMaxPerListing = 3
)

// Normalizer re-encodes raw uploads into bounded JPEG payloads before they
// are persisted.
type Normalizer struct {
	maxDimension  int
	quality       int
	maxPerListing int
}

// NewNormalizer creates a Normalizer; non-positive arguments fall back to
// the defaults.
func NewNormalizer(maxDimension, quality, maxPerListing int) *Normalizer {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	if maxPerListing <= 0 {
		maxPerListing = DefaultMaxPerListing
	}
	return &Normalizer{
		maxDimension:  maxDimension,
		quality:       quality,
		maxPerListing: maxPerListing,
	}
}

// Normalize decodes the payload, scales it down so the longer dimension
// does not exceed the configured bound while preserving aspect ratio, and
// re-encodes the raster as JPEG. Images already inside the bound are never
// upscaled.
func (n *Normalizer) Normalize(payload []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(payload), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > n.maxDimension || height > n.maxDimension {
		if width >= height {
			img = imaging.Resize(img, n.maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, n.maxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(n.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// NormalizeAll normalizes up to the per-listing cap. Payloads beyond the
// cap are dropped silently; the form enforces the same limit on selection.
func (n *Normalizer) NormalizeAll(payloads [][]byte) ([][]byte, error) {
	if len(payloads) > n.maxPerListing {
		payloads = payloads[:n.maxPerListing]
	}

	out := make([][]byte, 0, len(payloads))
	for _, p := range payloads {
		normalized, err := n.Normalize(p)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}
