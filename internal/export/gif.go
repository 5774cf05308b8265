package export

import (
	"errors"
	"image"
	imagedraw "image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/playback"
)

// RecordGIF encodes frames as a looping animation, delay apart. The final
// frame is held for one second.
func RecordGIF(w io.Writer, frames []playback.Frame, s Style, delay time.Duration) error {
	if len(frames) == 0 {
		return errors.New("nothing to export")
	}

	pal := s.palette()
	centis := max(int(delay/(10*time.Millisecond)), 1)

	anim := gif.GIF{LoopCount: 0}
	for i, f := range frames {
		img, err := RenderPNG(f, s)
		if err != nil {
			return err
		}
		p := image.NewPaletted(img.Bounds(), pal)
		imagedraw.Draw(p, p.Bounds(), img, image.Point{}, imagedraw.Src)

		d := centis
		if i == len(frames)-1 {
			d = max(d, 100)
		}
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, d)
	}
	return gif.EncodeAll(w, &anim)
}

func SaveGIF(path string, frames []playback.Frame, s Style, delay time.Duration) error {
	return writeFile(path, func(w io.Writer) error {
		return RecordGIF(w, frames, s, delay)
	})
}

// Frames single-steps alg over input and keeps every nth frame plus the
// first and last.
func Frames(input []float64, alg algorithms.Algorithm, every int) ([]playback.Frame, error) {
	every = max(every, 1)
	c := playback.New(playback.WithClock(playback.HeldClock()), playback.WithID(alg.Name))
	defer c.Close()

	if err := c.Start(input, alg); err != nil {
		return nil, err
	}
	c.Pause()

	frames := []playback.Frame{c.Frame()}
	for c.State() != playback.Completed {
		if err := c.Step(); err != nil {
			return nil, err
		}
		f := c.Frame()
		if f.State == playback.Completed || f.Step%every == 0 {
			frames = append(frames, f)
		}
	}
	return frames, nil
}
