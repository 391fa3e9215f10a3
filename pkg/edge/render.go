package edge

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Image renders the edge map as an opaque grayscale frame.
func (m *EdgeMap) Image() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			v := uint8(clampFloatToUint8(m.Pix[y*m.W+x]))
			i := out.PixOffset(x, y)
			out.Pix[i+0] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
			out.Pix[i+3] = 255
		}
	}
	return out
}

// LabelStyle selects the face and color for panel labels. The zero value
// draws white text with the built-in bitmap face.
type LabelStyle struct {
	// FontPath names a TTF/OTF file; empty uses basicfont.Face7x13.
	FontPath string
	// Size is the point size for a TTF face, ignored for the built-in.
	Size  float64
	Color color.Color
}

// Label draws text near the top left corner of img, in place. A font that
// fails to load falls back to the built-in face rather than failing the
// render.
func Label(img *image.NRGBA, text string, style LabelStyle) {
	col := style.Color
	if col == nil {
		col = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: labelFace(style),
		Dot:  fixed.Point26_6{X: fixed.I(6), Y: fixed.I(16)},
	}
	d.DrawString(text)
}

func labelFace(style LabelStyle) font.Face {
	if style.FontPath == "" {
		return basicfont.Face7x13
	}
	data, err := os.ReadFile(style.FontPath)
	if err != nil {
		return basicfont.Face7x13
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return basicfont.Face7x13
	}
	size := style.Size
	if size <= 0 {
		size = 13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

const sheetGutter = 8

// ComparisonSheet lays the result's edge maps side by side in the given
// order, each panel labeled with its algorithm name. A nil order means
// canonical order. Algorithms missing from the result are skipped; nil is
// returned when nothing matches.
func ComparisonSheet(result *DetectionResult, order []Algorithm, style LabelStyle) *image.NRGBA {
	if result == nil {
		return nil
	}
	if order == nil {
		order = AllAlgorithms()
	}
	var maps []*EdgeMap
	var names []string
	for _, a := range order {
		if em := result.EdgeMaps[a]; em != nil {
			maps = append(maps, em)
			names = append(names, a.String())
		}
	}
	if len(maps) == 0 {
		return nil
	}

	width := sheetGutter * (len(maps) - 1)
	height := 0
	for _, em := range maps {
		width += em.W
		if em.H > height {
			height = em.H
		}
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, width, height))
	// opaque black background behind gutters and short panels
	for i := 3; i < len(sheet.Pix); i += 4 {
		sheet.Pix[i] = 255
	}
	x0 := 0
	for i, em := range maps {
		panel := em.Image()
		Label(panel, names[i], style)
		draw.Draw(sheet, image.Rect(x0, 0, x0+em.W, em.H), panel, image.Point{}, draw.Src)
		x0 += em.W + sheetGutter
	}
	return sheet
}

// ParseHexColor parses #rgb, #rgba, #rrggbb, and #rrggbbaa color forms.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] != '#' {
		return color.NRGBA{}, configErrorf("color %q is not a hex color", s)
	}
	expand := func(c byte) string { return string(c) + string(c) }
	hex := s[1:]
	switch len(hex) {
	case 3: // #rgb
		hex = expand(hex[0]) + expand(hex[1]) + expand(hex[2]) + "ff"
	case 4: // #rgba
		hex = expand(hex[0]) + expand(hex[1]) + expand(hex[2]) + expand(hex[3])
	case 6: // #rrggbb
		hex += "ff"
	case 8: // #rrggbbaa
	default:
		return color.NRGBA{}, configErrorf("hex color %q has unsupported length", s)
	}
	var ch [4]uint8
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, configErrorf("hex color %q: invalid digit", s)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
