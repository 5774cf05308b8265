package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortsim/internal/ops"
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderBars draws one vertical bar per value, height rows tall, coloured
// by the role reported for each index.
func renderBars(values []float64, role func(int) ops.Role, height, width int, th Theme) string {
	n := len(values)
	if n == 0 || height < 1 || width < 1 {
		return ""
	}

	colW := 1
	if n*2 <= width {
		colW = 2
	}
	if n*4 <= width {
		colW = 3
	}
	shown := min(n, width/colW)

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo = math.Min(lo, 0)

	levels := make([]int, shown)
	styles := make([]lipgloss.Style, shown)
	for i := 0; i < shown; i++ {
		frac := 1.0
		if hi > lo {
			frac = (values[i] - lo) / (hi - lo)
		}
		levels[i] = max(int(math.Round(frac*float64(height*8))), 1)
		styles[i] = lipgloss.NewStyle().Foreground(roleColor(role(i), th))
	}

	gap := ""
	if colW > 1 {
		gap = " "
	}

	var b strings.Builder
	for row := height - 1; row >= 0; row-- {
		b.WriteString("   ")
		for i := 0; i < shown; i++ {
			fill := levels[i] - row*8
			var r rune
			switch {
			case fill >= 8:
				r = '█'
			case fill > 0:
				r = eighths[fill]
			default:
				r = ' '
			}
			cell := strings.Repeat(string(r), colW-len(gap))
			b.WriteString(styles[i].Render(cell) + gap)
		}
		b.WriteString("\n")
	}
	if shown < n {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Muted).Render("   … widen the terminal to see all bars") + "\n")
	}
	return b.String()
}

func roleColor(r ops.Role, th Theme) lipgloss.Color {
	switch r {
	case ops.RoleCompared:
		return th.Compared
	case ops.RoleSwapped:
		return th.Swapped
	case ops.RoleWritten:
		return th.Written
	case ops.RoleSorted:
		return th.Sorted
	}
	return th.Bar
}
