package edge

import "image"

// transformNRGBA builds a dw x dh image by pulling each destination pixel
// from the source coordinate srcAt returns.
func transformNRGBA(src *image.NRGBA, dw, dh int, srcAt func(x, y int) (int, int)) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			sx, sy := srcAt(x, y)
			si := src.PixOffset(sx, sy)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

// autoOrient maps a stored image with the given EXIF orientation back to an
// upright one. Orientation 1 and unknown values return src untouched.
func autoOrient(src *image.NRGBA, orientation int) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	switch orientation {
	case 2: // mirrored horizontally
		return transformNRGBA(src, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
	case 3: // rotated 180
		return transformNRGBA(src, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4: // mirrored vertically
		return transformNRGBA(src, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
	case 5: // transposed
		return transformNRGBA(src, h, w, func(x, y int) (int, int) { return y, x })
	case 6: // rotated 90 CW
		return transformNRGBA(src, h, w, func(x, y int) (int, int) { return y, h - 1 - x })
	case 7: // transverse
		return transformNRGBA(src, h, w, func(x, y int) (int, int) { return w - 1 - y, h - 1 - x })
	case 8: // rotated 90 CCW
		return transformNRGBA(src, h, w, func(x, y int) (int, int) { return w - 1 - y, x })
	}
	return src
}
