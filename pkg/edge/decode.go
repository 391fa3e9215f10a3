package edge

import (
	"bytes"
	"context"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension caps decoded width and height unless overridden.
const DefaultMaxDimension = 8192

// DecodeOptions configure Decode. The zero value applies the default
// dimension cap and fixes JPEG orientation.
type DecodeOptions struct {
	// MaxDimension rejects images wider or taller than this before the
	// full pixel decode runs; 0 means DefaultMaxDimension, negative
	// disables the cap.
	MaxDimension int
	// KeepOrientation leaves JPEG pixels exactly as stored instead of
	// applying the EXIF orientation.
	KeepOrientation bool
}

// Decode turns encoded bytes into a RasterImage. PNG, JPEG, GIF, BMP,
// TIFF, and WebP containers are registered. Dimensions are checked from
// the header alone before any pixel data is parsed, so an oversized input
// fails cheaply. The context is consulted before each parse step; a
// cancelled context surfaces as the context's own error, everything else
// as a DecodeError.
func Decode(ctx context.Context, data []byte, opts DecodeOptions) (*RasterImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &DecodeError{Reason: "empty input"}
	}

	maxDim := opts.MaxDimension
	if maxDim == 0 {
		maxDim = DefaultMaxDimension
	}

	cfg, cfgFormat, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, decodeErrorf(err, "unrecognized image data")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, decodeErrorf(nil, "degenerate dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if maxDim > 0 && (cfg.Width > maxDim || cfg.Height > maxDim) {
		return nil, decodeErrorf(nil, "dimensions %dx%d exceed limit %d", cfg.Width, cfg.Height, maxDim)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeErrorf(err, "decoding %s data", cfgFormat)
	}

	pix := toNRGBA(img)
	if format == "jpeg" && !opts.KeepOrientation {
		if o, err := jpegOrientation(data); err == nil && o > 1 {
			pix = autoOrient(pix, o)
		}
	}
	return newRaster(pix, format), nil
}
