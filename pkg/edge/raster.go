package edge

import (
	"image"
)

// RasterImage is a decoded frame held in non-premultiplied RGBA order with
// 8-bit channels. Pixel data is owned by the RasterImage and is not mutated
// after construction, so one instance can back any number of detection runs.
type RasterImage struct {
	pix    *image.NRGBA
	width  int
	height int
	format string
}

// NewRasterImage canonicalizes src into a RasterImage. The source pixels are
// copied, so callers may keep mutating src afterwards.
func NewRasterImage(src image.Image) (*RasterImage, error) {
	if src == nil {
		return nil, processingErrorf("raster", "nil source image")
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, processingErrorf("raster", "empty source image %dx%d", b.Dx(), b.Dy())
	}
	return newRaster(toNRGBA(src), ""), nil
}

func newRaster(pix *image.NRGBA, format string) *RasterImage {
	return &RasterImage{
		pix:    pix,
		width:  pix.Rect.Dx(),
		height: pix.Rect.Dy(),
		format: format,
	}
}

func (r *RasterImage) Width() int  { return r.width }
func (r *RasterImage) Height() int { return r.height }

// Format returns the sniffed container format ("png", "jpeg", ...) when the
// raster came from Decode, or "" for rasters built from an in-memory image.
func (r *RasterImage) Format() string { return r.format }

// NRGBA returns a copy of the pixel data. The internal buffer stays private
// so cached intensity and gradient planes remain valid.
func (r *RasterImage) NRGBA() *image.NRGBA {
	return cloneNRGBA(r.pix)
}

// toNRGBA converts any image.Image to *image.NRGBA with a zero-based Rect.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min.X == 0 && n.Rect.Min.Y == 0 && n.Stride == 4*w {
		copy(out.Pix, n.Pix)
		return out
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b_, a := src.At(x, y).RGBA()
			// 16-bit [0,65535] channels down to 8-bit
			out.Pix[idx+0] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(b_ >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return out
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloatToUint8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
