// Package chart renders scatter matrices of sampled design tables, as PNG with
// gonum/plot and as an interactive page with go-echarts.
package chart

import (
	"fmt"
	"image/color"
	"sort"
)

// DefaultPalette is the warm scheme used for previews and archived plots
const DefaultPalette = "autumn"

// Palette is a named list of colours; the first is used for markers, the
// second for histogram bars.
type Palette struct {
	Name   string
	Colors []color.RGBA
}

var palettes = map[string]Palette{
	"autumn": {Name: "autumn", Colors: []color.RGBA{
		{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
		{R: 0xff, G: 0x80, B: 0x00, A: 0xff},
		{R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	}},
	"deep": {Name: "deep", Colors: []color.RGBA{
		{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff},
		{R: 0xdd, G: 0x84, B: 0x52, A: 0xff},
		{R: 0x55, G: 0xa8, B: 0x68, A: 0xff},
	}},
	"viridis": {Name: "viridis", Colors: []color.RGBA{
		{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
		{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
		{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
	}},
}

// LookupPalette returns the named palette, falling back to autumn
func LookupPalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultPalette]
}

// PaletteNames lists the known palettes
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marker is the scatter colour
func (p Palette) Marker() color.RGBA { return p.at(0) }

// Bar is the histogram colour
func (p Palette) Bar() color.RGBA { return p.at(1) }

func (p Palette) at(i int) color.RGBA {
	if len(p.Colors) == 0 {
		return color.RGBA{A: 0xff}
	}
	return p.Colors[i%len(p.Colors)]
}

// Hex formats a colour as #rrggbb for HTML charts
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
