package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/sortsim/internal/playback"
)

// FrameToSVG renders f as a standalone SVG document.
func FrameToSVG(f playback.Frame, s Style) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, hex(s.Background))

	if s.Caption {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-family="monospace" font-size="13" fill="%s">%s</text>
`, s.Padding, s.Padding+captionHeight-6, hex(s.Text), html.EscapeString(caption(f)))
	}

	for i, b := range layout(f, s) {
		fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"><title>%d: %g</title></rect>
`, b.x, b.y, b.w, b.h, hex(b.fill), i, f.Values[i])
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
