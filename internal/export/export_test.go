package export

import (
	"bytes"
	"errors"
	"image/gif"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/playback"
)

func sampleFrame() playback.Frame {
	return playback.Frame{
		Algorithm: "bubble",
		State:     playback.Paused,
		Values:    []float64{3, 1, 2},
		Active:    []ops.Highlight{{Index: 0, Role: ops.RoleSwapped}, {Index: 1, Role: ops.RoleSwapped}},
		Sorted:    []bool{false, false, true},
		Step:      2,
		Last:      ops.Swap(0, 1),
	}
}

func TestFrameToSVG(t *testing.T) {
	s := DefaultStyle()
	svg := FrameToSVG(sampleFrame(), s)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("not an svg document")
	}
	if got := strings.Count(svg, "<title>"); got != 3 {
		t.Errorf("expected 3 bars, got %d", got)
	}
	for _, c := range []string{hex(s.Swapped), hex(s.Sorted)} {
		if !strings.Contains(svg, c) {
			t.Errorf("missing colour %s", c)
		}
	}
	if !strings.Contains(svg, "swap(0, 1)") {
		t.Error("missing caption")
	}
}

func TestLayoutScalesToTallest(t *testing.T) {
	s := DefaultStyle()
	s.Caption = false
	bars := layout(playback.Frame{Values: []float64{1, 4, 2}}, s)
	if len(bars) != 3 {
		t.Fatalf("got %d bars", len(bars))
	}
	full := float64(s.Height - 2*s.Padding)
	if bars[1].h != full {
		t.Errorf("tallest bar height %v, want %v", bars[1].h, full)
	}
	if !(bars[0].h < bars[2].h && bars[2].h < bars[1].h) {
		t.Errorf("bar heights not ordered: %v %v %v", bars[0].h, bars[2].h, bars[1].h)
	}
	if layout(playback.Frame{}, s) != nil {
		t.Error("empty frame produced bars")
	}
}

func TestWritePNG(t *testing.T) {
	s := DefaultStyle()
	s.Width, s.Height = 120, 80

	var buf bytes.Buffer
	if err := WritePNG(&buf, sampleFrame(), s); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("size %v", b)
	}

	s.Width = 0
	if _, err := RenderPNG(sampleFrame(), s); err == nil {
		t.Error("zero width accepted")
	}
}

func TestFramesAndGIF(t *testing.T) {
	in := []float64{4, 3, 2, 1}
	alg := algorithms.Algorithm{Name: "insertion", Produce: algorithms.Insertion}
	frames, err := Frames(in, alg, 3)
	if err != nil {
		t.Fatal(err)
	}
	first, last := frames[0], frames[len(frames)-1]
	if first.Step != 0 || first.Values[0] != 4 {
		t.Errorf("first frame %+v", first)
	}
	if last.State != playback.Completed || !ops.IsSorted(last.Values) {
		t.Errorf("last frame %+v", last)
	}

	s := DefaultStyle()
	s.Width, s.Height = 64, 48
	var buf bytes.Buffer
	if err := RecordGIF(&buf, frames, s, 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != len(frames) {
		t.Errorf("gif has %d frames, want %d", len(g.Image), len(frames))
	}
	if g.Delay[0] != 5 || g.Delay[len(g.Delay)-1] != 100 {
		t.Errorf("delays %v", g.Delay)
	}

	if err := RecordGIF(&buf, nil, s, time.Second); err == nil {
		t.Error("empty frame list accepted")
	}
}

type closeFailer struct {
	bytes.Buffer
}

var errDiskFull = errors.New("disk full")

func (*closeFailer) Close() error { return errDiskFull }

func TestSaveReportsCloseError(t *testing.T) {
	orig := createFile
	t.Cleanup(func() { createFile = orig })

	var last *closeFailer
	createFile = func(string) (io.WriteCloser, error) {
		last = &closeFailer{}
		return last, nil
	}

	if err := SavePNG("out.png", sampleFrame(), DefaultStyle()); !errors.Is(err, errDiskFull) {
		t.Errorf("SavePNG = %v, want close error", err)
	}
	if last.Len() == 0 {
		t.Error("png not written before close")
	}

	frames := []playback.Frame{sampleFrame()}
	if err := SaveGIF("out.gif", frames, DefaultStyle(), 50*time.Millisecond); !errors.Is(err, errDiskFull) {
		t.Errorf("SaveGIF = %v, want close error", err)
	}

	// a write error wins over the close error
	if err := SaveGIF("out.gif", nil, DefaultStyle(), time.Second); err == nil || errors.Is(err, errDiskFull) {
		t.Errorf("SaveGIF with no frames = %v", err)
	}
}
