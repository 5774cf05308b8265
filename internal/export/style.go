// Package export renders playback frames as SVG, PNG and animated GIF.
package export

import (
	"fmt"
	"image/color"

	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/playback"
)

// Style controls image size and the bar colour for each highlight role.
type Style struct {
	Width      int
	Height     int
	Padding    int
	Caption    bool
	Background color.RGBA
	Text       color.RGBA
	Bar        color.RGBA
	Compared   color.RGBA
	Swapped    color.RGBA
	Written    color.RGBA
	Sorted     color.RGBA
}

func DefaultStyle() Style {
	return Style{
		Width:      640,
		Height:     360,
		Padding:    12,
		Caption:    true,
		Background: color.RGBA{0x0f, 0x17, 0x2a, 0xff},
		Text:       color.RGBA{0xcb, 0xd5, 0xe1, 0xff},
		Bar:        color.RGBA{0x00, 0xf2, 0xff, 0xff},
		Compared:   color.RGBA{0xfa, 0xcc, 0x15, 0xff},
		Swapped:    color.RGBA{0xef, 0x44, 0x44, 0xff},
		Written:    color.RGBA{0xc0, 0x84, 0xfc, 0xff},
		Sorted:     color.RGBA{0x4a, 0xde, 0x80, 0xff},
	}
}

func (s Style) color(r ops.Role) color.RGBA {
	switch r {
	case ops.RoleCompared:
		return s.Compared
	case ops.RoleSwapped:
		return s.Swapped
	case ops.RoleWritten:
		return s.Written
	case ops.RoleSorted:
		return s.Sorted
	}
	return s.Bar
}

func (s Style) palette() color.Palette {
	return color.Palette{s.Background, s.Text, s.Bar, s.Compared, s.Swapped, s.Written, s.Sorted}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// bar is one rectangle in image coordinates.
type bar struct {
	x, y, w, h float64
	fill       color.RGBA
}

// layout places one bar per value inside the padded area. The top band is
// left free for the caption.
func layout(f playback.Frame, s Style) []bar {
	n := len(f.Values)
	if n == 0 {
		return nil
	}

	top := float64(s.Padding)
	if s.Caption {
		top += captionHeight
	}
	areaW := float64(s.Width - 2*s.Padding)
	areaH := float64(s.Height-s.Padding) - top
	if areaW <= 0 || areaH <= 0 {
		return nil
	}

	lo, hi := f.Values[0], f.Values[0]
	for _, v := range f.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	lo = min(lo, 0)

	slot := areaW / float64(n)
	gap := 0.0
	if slot >= 4 {
		gap = slot * 0.15
	}

	bars := make([]bar, n)
	for i, v := range f.Values {
		frac := 1.0
		if hi > lo {
			frac = (v - lo) / (hi - lo)
		}
		h := max(frac*areaH, 1)
		bars[i] = bar{
			x:    float64(s.Padding) + float64(i)*slot + gap/2,
			y:    top + areaH - h,
			w:    slot - gap,
			h:    h,
			fill: s.color(f.Role(i)),
		}
	}
	return bars
}

const captionHeight = 20

func caption(f playback.Frame) string {
	text := fmt.Sprintf("%s  %s  step %d", f.Algorithm, f.State, f.Step)
	if f.HasLast() {
		text += "  " + f.Last.String()
	}
	return text
}
