package export

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/san-kum/sortsim/internal/playback"
)

var (
	fontOnce sync.Once
	monoFont *truetype.Font
	fontErr  error
)

func captionFace() (font.Face, error) {
	fontOnce.Do(func() {
		monoFont, fontErr = truetype.Parse(gomono.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", fontErr)
	}
	return truetype.NewFace(monoFont, &truetype.Options{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// RenderPNG draws f into an image of the style's size.
func RenderPNG(f playback.Frame, s Style) (image.Image, error) {
	dc, err := draw(f, s)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func WritePNG(w io.Writer, f playback.Frame, s Style) error {
	dc, err := draw(f, s)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func SavePNG(path string, f playback.Frame, s Style) error {
	return writeFile(path, func(w io.Writer) error {
		return WritePNG(w, f, s)
	})
}

func draw(f playback.Frame, s Style) (*gg.Context, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", s.Width, s.Height)
	}

	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(s.Background)
	dc.Clear()

	for _, b := range layout(f, s) {
		dc.DrawRectangle(b.x, b.y, b.w, b.h)
		dc.SetColor(b.fill)
		dc.Fill()
	}

	if s.Caption {
		face, err := captionFace()
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(s.Text)
		dc.DrawString(caption(f), float64(s.Padding), float64(s.Padding+captionHeight-6))
	}
	return dc, nil
}
