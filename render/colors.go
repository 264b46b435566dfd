package render

import (
	"encoding/hex"
	"fmt"
	"golang.org/x/image/colornames"
	"image/color"
	"strings"
)

var (
	// postPalette are the colors used for the skeleton/pose
	posePalette = []color.RGBA{
		{R: 255, G: 128, B: 0, A: 255},
		{R: 255, G: 153, B: 51, A: 255},
		{R: 255, G: 178, B: 102, A: 255},
		{R: 230, G: 230, B: 0, A: 255},
		{R: 255, G: 153, B: 255, A: 255},
		{R: 153, G: 204, B: 255, A: 255},
		{R: 255, G: 102, B: 255, A: 255},
		{R: 255, G: 51, B: 255, A: 255},
		{R: 102, G: 178, B: 255, A: 255},
		{R: 51, G: 153, B: 255, A: 255},
		{R: 255, G: 153, B: 153, A: 255},
		{R: 255, G: 102, B: 102, A: 255},
		{R: 255, G: 51, B: 51, A: 255},
		{R: 153, G: 255, B: 153, A: 255},
		{R: 102, G: 255, B: 102, A: 255},
		{R: 51, G: 255, B: 51, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}

	// keyPointColors correspond to the COCO keypoints, head in green,
	// arms in blue and legs in orange.  require 17 colors
	keyPointColors = []color.RGBA{
		posePalette[16], posePalette[16], posePalette[16], posePalette[16], posePalette[16],
		posePalette[9], posePalette[9], posePalette[9], posePalette[9], posePalette[9],
		posePalette[9], posePalette[0], posePalette[0], posePalette[0], posePalette[0],
		posePalette[0], posePalette[0],
	}

	// limbColors correspond to the bone links of topology.COCO17().
	// require 19 colors
	limbColors = []color.RGBA{
		posePalette[0], posePalette[0], posePalette[0], posePalette[0], posePalette[7],
		posePalette[7], posePalette[7], posePalette[9], posePalette[9], posePalette[9],
		posePalette[9], posePalette[9], posePalette[16], posePalette[16], posePalette[16],
		posePalette[16], posePalette[16], posePalette[16], posePalette[16],
	}
)

// KeyPointColors returns the joint palette for COCO keypoints
func KeyPointColors() []color.Color {
	return palette(keyPointColors)
}

// LimbColors returns the bone palette for the COCO skeleton
func LimbColors() []color.Color {
	return palette(limbColors)
}

func palette(clrs []color.RGBA) []color.Color {
	out := make([]color.Color, len(clrs))
	for i, c := range clrs {
		out[i] = c
	}
	return out
}

// ParseColor returns the color for a CSS/SVG color name (eg: "green") or a
// hex value in the form #rgb, #rrggbb or #rrggbbaa
func ParseColor(s string) (color.RGBA, error) {

	s = strings.ToLower(strings.TrimSpace(s))

	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[s]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color name %q", s)
	}

	h := s[1:]

	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}

	if len(h) == 6 {
		h += "ff"
	}

	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	b, err := hex.DecodeString(h)

	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	// hex values are not alpha premultiplied
	nrgba := color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}

	return color.RGBAModel.Convert(nrgba).(color.RGBA), nil
}
