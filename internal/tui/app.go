package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortsim/internal/completion"
	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/registry"
)

const (
	minInterval = 5 * time.Millisecond
	maxInterval = 2 * time.Second
	historyCap  = 240
	sortedNote  = "sorted ✓"
)

// Options configures the interactive app.
type Options struct {
	Registry *registry.Registry
	// Algorithm is the entry the menu opens on; unknown ids fall back to
	// the first entry.
	Algorithm string
	Input    []float64
	Compare  []string
	Interval time.Duration
	Theme    string
	Logger   *slog.Logger
	Clock    playback.Clock
}

type view int

const (
	viewMenu view = iota
	viewRun
)

type run struct {
	entry    registry.Entry
	ctrl     *playback.Controller
	history  []float64
	lastStep int
}

type model struct {
	view   view
	reg    *registry.Registry
	input  []float64
	cursor int
	picked map[string]bool

	runs     []*run
	tracker  *completion.Tracker
	doneCh   chan uint64
	group    *atomic.Uint64
	interval time.Duration
	clock    playback.Clock
	tickGen  int

	theme    Theme
	showInfo bool
	status   string
	help     help.Model
	copyText func(string) error
	logger   *slog.Logger

	width  int
	height int
}

func newModel(opts Options) model {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := opts.Clock
	if clock == nil {
		clock = playback.RealClock()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = playback.DefaultInterval
	}

	// completion signals carry the group they belong to
	group := new(atomic.Uint64)
	doneCh := make(chan uint64, 1)
	tracker, _ := completion.New(1, func() {
		select {
		case doneCh <- group.Load():
		default:
		}
	})

	m := model{
		view:     viewMenu,
		reg:      reg,
		input:    ops.Clone(opts.Input),
		picked:   make(map[string]bool),
		tracker:  tracker,
		doneCh:   doneCh,
		group:    group,
		interval: interval,
		clock:    clock,
		theme:    GetTheme(opts.Theme),
		help:     help.New(),
		copyText: clipboard.WriteAll,
		logger:   logger,
		width:    80,
		height:   24,
	}
	if _, ok := reg.Lookup(opts.Algorithm); !ok && opts.Algorithm != "" {
		logger.Warn("unknown algorithm, using default", "algorithm", opts.Algorithm)
	}
	chosen := reg.Resolve(opts.Algorithm)
	for i, e := range reg.Entries() {
		if e.Name == chosen.Name {
			m.cursor = i
			break
		}
	}
	for _, id := range opts.Compare {
		if e, ok := reg.Lookup(id); ok {
			m.picked[e.Name] = true
		}
	}
	return m
}

// Run starts the full-screen app and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.closeRuns()
	}
	return err
}

type tickMsg struct{ gen int }

type doneMsg struct{ gen uint64 }

func tick(gen int) tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func waitDone(ch <-chan uint64) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{gen: <-ch}
	}
}

func (m model) Init() tea.Cmd { return waitDone(m.doneCh) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.view == viewMenu {
			return m.menuKey(msg)
		}
		return m.runKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.view != viewRun || msg.gen != m.tickGen {
			return m, nil
		}
		m.sample()
		return m, tick(m.tickGen)
	case doneMsg:
		if m.view == viewRun && msg.gen == m.group.Load() {
			m.status = sortedNote
		}
		return m, waitDone(m.doneCh)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	entries := m.reg.Entries()
	switch {
	case key.Matches(msg, menuKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, menuKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, menuKeys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, menuKeys.Toggle):
		name := entries[m.cursor].Name
		m.picked[name] = !m.picked[name]
	case key.Matches(msg, menuKeys.Open):
		var chosen []registry.Entry
		for _, e := range entries {
			if m.picked[e.Name] {
				chosen = append(chosen, e)
			}
		}
		if len(chosen) == 0 {
			chosen = []registry.Entry{entries[m.cursor]}
		}
		m.openRuns(chosen)
		m.view = viewRun
		m.tickGen++
		return m, tea.Batch(tea.ClearScreen, tick(m.tickGen))
	}
	return m, nil
}

func (m model) runKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, runKeys.Quit):
		m.closeRuns()
		return m, tea.Quit
	case key.Matches(msg, runKeys.Back):
		m.closeRuns()
		m.runs = nil
		m.status = ""
		m.view = viewMenu
		return m, tea.ClearScreen
	case key.Matches(msg, runKeys.Play):
		m.togglePlay()
	case key.Matches(msg, runKeys.Step):
		if m.allIn(playback.Idle, playback.Completed) {
			if !m.startAll() {
				break
			}
			m.each(func(r *run) { r.ctrl.Pause() })
		}
		m.each(func(r *run) {
			if err := r.ctrl.Step(); err != nil {
				m.status = "cannot visualize this input"
			}
		})
	case key.Matches(msg, runKeys.StepBack):
		m.each(func(r *run) {
			if err := r.ctrl.StepBack(); err != nil {
				m.status = "cannot visualize this input"
			}
		})
		m.trimHistory()
	case key.Matches(msg, runKeys.Faster):
		m.setInterval(m.interval / 2)
	case key.Matches(msg, runKeys.Slower):
		m.setInterval(m.interval * 2)
	case key.Matches(msg, runKeys.Reset):
		m.each(func(r *run) {
			r.ctrl.Reset()
			r.history = nil
			r.lastStep = 0
		})
		m.newGroup()
		m.status = ""
	case key.Matches(msg, runKeys.Copy):
		e := m.runs[0].entry
		if err := m.copyText(e.Metadata.Code); err != nil {
			m.logger.Warn("clipboard write failed", "err", err)
			m.status = "clipboard unavailable"
		} else {
			m.status = fmt.Sprintf("copied %s code to clipboard", e.Name)
		}
	case key.Matches(msg, runKeys.Theme):
		m.theme = NextTheme(m.theme.Name)
	case key.Matches(msg, runKeys.Info):
		m.showInfo = !m.showInfo
	}
	m.sample()
	return m, nil
}

func (m *model) openRuns(entries []registry.Entry) {
	m.closeRuns()
	m.runs = make([]*run, 0, len(entries))
	if err := m.tracker.Retarget(len(entries)); err != nil {
		m.logger.Error("retarget tracker", "err", err)
	}
	m.group.Add(1)
	m.drainDone()
	for _, e := range entries {
		ctrl := playback.New(
			playback.WithInterval(m.interval),
			playback.WithClock(m.clock),
			playback.WithLogger(m.logger.With("algorithm", e.Name)),
			playback.WithCompletionHook(m.tracker.NotifyDone),
		)
		m.runs = append(m.runs, &run{entry: e, ctrl: ctrl})
	}
	m.status = ""
}

func (m model) closeRuns() {
	for _, r := range m.runs {
		r.ctrl.Close()
	}
}

func (m model) each(fn func(*run)) {
	for _, r := range m.runs {
		fn(r)
	}
}

func (m model) allIn(states ...playback.State) bool {
	for _, r := range m.runs {
		s := r.ctrl.State()
		ok := false
		for _, want := range states {
			if s == want {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// startAll begins a new run group over the shared input.
func (m *model) startAll() bool {
	m.newGroup()
	m.status = ""
	for _, r := range m.runs {
		r.history = nil
		r.lastStep = 0
		if err := r.ctrl.Start(m.input, r.entry.Algorithm()); err != nil {
			if len(m.input) == 0 {
				m.status = "no input: pass --values or --size"
			} else {
				m.status = "cannot visualize this input"
			}
			m.logger.Error("start run", "algorithm", r.entry.Name, "err", err)
			return false
		}
	}
	return true
}

func (m *model) togglePlay() {
	switch {
	case m.allIn(playback.Idle, playback.Completed):
		m.startAll()
	case !m.allIn(playback.Paused, playback.Completed, playback.Idle):
		m.each(func(r *run) { r.ctrl.Pause() })
	default:
		m.each(func(r *run) { r.ctrl.Play() })
	}
}

func (m *model) setInterval(d time.Duration) {
	d = min(max(d, minInterval), maxInterval)
	m.interval = d
	m.each(func(r *run) {
		if err := r.ctrl.SetSpeed(d); err != nil {
			m.logger.Error("set speed", "err", err)
		}
	})
}

// newGroup rearms the tracker. A completion signal already in flight for
// the previous group carries the old generation and is ignored.
func (m model) newGroup() {
	m.group.Add(1)
	m.tracker.Reset()
	m.drainDone()
}

// drainDone drops a completion signal left over from the previous group.
func (m model) drainDone() {
	select {
	case <-m.doneCh:
	default:
	}
}

// sample appends the inversion count of every new step to each run's
// history.
func (m model) sample() {
	for _, r := range m.runs {
		f := r.ctrl.Frame()
		if f.Step == r.lastStep && len(r.history) > 0 {
			continue
		}
		r.lastStep = f.Step
		r.history = append(r.history, f.Stats["inversions"])
		if len(r.history) > historyCap {
			r.history = r.history[len(r.history)-historyCap:]
		}
	}
}

func (m model) trimHistory() {
	for _, r := range m.runs {
		step := r.ctrl.Frame().Step
		if step+1 < len(r.history) {
			r.history = r.history[:step+1]
		}
		r.lastStep = step
	}
}

func (m model) View() string {
	if m.view == viewMenu {
		return m.viewMenu()
	}
	return m.viewRun()
}

func (m model) styles() (title, text, muted, dim, accent lipgloss.Style) {
	th := m.theme
	return lipgloss.NewStyle().Foreground(th.Primary).Bold(true),
		lipgloss.NewStyle().Foreground(th.Text),
		lipgloss.NewStyle().Foreground(th.Muted),
		lipgloss.NewStyle().Foreground(th.Dim),
		lipgloss.NewStyle().Foreground(th.Accent)
}

func (m model) viewMenu() string {
	title, text, muted, dim, accent := m.styles()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dim.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + title.Render("s o r t s i m") + "\n")
	b.WriteString(dim.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, e := range m.reg.Entries() {
		mark := "  "
		if m.picked[e.Name] {
			mark = accent.Render("◆ ")
		}
		desc := e.Metadata.Time.Average + "  " + e.Metadata.Description
		if w := m.width - 34; w > 10 && len([]rune(desc)) > w {
			desc = string([]rune(desc)[:w-1]) + "…"
		}
		if i == m.cursor {
			b.WriteString("    " + title.Render("▸ ") + mark + text.Render(fmt.Sprintf("%-12s", e.Name)) + muted.Render(desc) + "\n")
		} else {
			b.WriteString("      " + mark + muted.Render(fmt.Sprintf("%-12s", e.Name)) + dim.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("    %d values", len(m.input))) + "\n\n")
	b.WriteString("    " + m.help.View(menuKeys) + "\n")
	return b.String()
}

func (m model) viewRun() string {
	title, text, muted, dim, accent := m.styles()
	var b strings.Builder

	reserved := 8
	if m.showInfo {
		reserved += 14
	}
	barH := max((m.height-reserved)/max(len(m.runs), 1)-3, 3)

	b.WriteString("\n")
	for _, r := range m.runs {
		f := r.ctrl.Frame()
		values := f.Values
		if values == nil {
			values = m.input
		}

		icon, label := stateBadge(f.State, m.theme)
		b.WriteString(fmt.Sprintf("   %s %s  %s  %s\n",
			icon, title.Render(r.entry.Name), label,
			dim.Render(fmt.Sprintf("step %d", f.Step))))

		b.WriteString(renderBars(values, f.Role, barH, m.width-6, m.theme))

		stats := fmt.Sprintf("cmp %.0f  swp %.0f  wr %.0f  inv %.0f",
			f.Stats["comparisons"], f.Stats["swaps"], f.Stats["writes"], f.Stats["inversions"])
		last := ""
		if f.HasLast() {
			last = "  " + accent.Render(f.Last.String())
		}
		b.WriteString("   " + muted.Render(stats) + last + "\n\n")
	}

	if m.showInfo && len(m.runs) > 0 {
		b.WriteString(m.viewInfo(m.runs[0], text, muted, dim))
	}

	status := dim.Render(fmt.Sprintf("%s/step", m.interval))
	if m.status != "" {
		style := lipgloss.NewStyle().Foreground(m.theme.Sorted).Bold(true)
		if m.status != sortedNote && !strings.HasPrefix(m.status, "copied") {
			style = muted
		}
		status += "  " + style.Render(m.status)
	}
	b.WriteString("   " + status + "\n")
	b.WriteString("   " + m.help.View(runKeys) + "\n")
	return b.String()
}

func (m model) viewInfo(r *run, text, muted, dim lipgloss.Style) string {
	md := r.entry.Metadata
	var b strings.Builder

	good := lipgloss.NewStyle().Foreground(m.theme.Sorted)
	mid := lipgloss.NewStyle().Foreground(m.theme.Compared)
	bad := lipgloss.NewStyle().Foreground(m.theme.Swapped)

	stable := "no"
	if md.Stable {
		stable = "yes"
	}
	b.WriteString(fmt.Sprintf("   %s %s  %s %s  %s %s  %s %s  %s %s\n",
		muted.Render("best"), good.Render(md.Time.Best),
		muted.Render("avg"), mid.Render(md.Time.Average),
		muted.Render("worst"), bad.Render(md.Time.Worst),
		muted.Render("space"), text.Render(md.Space),
		muted.Render("stable"), text.Render(stable)))
	b.WriteString("   " + dim.Render(md.Description) + "\n\n")

	if len(r.history) > 1 {
		graph := asciigraph.Plot(r.history,
			asciigraph.Height(4),
			asciigraph.Width(min(60, max(m.width-20, 20))),
			asciigraph.Caption("inversions"))
		for _, line := range strings.Split(graph, "\n") {
			b.WriteString("   " + dim.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	code := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Dim).
		Padding(0, 1)
	for _, line := range strings.Split(code.Render(md.Code), "\n") {
		b.WriteString("   " + line + "\n")
	}
	return b.String()
}

func stateBadge(s playback.State, th Theme) (string, string) {
	var c lipgloss.Color
	icon := "○"
	switch s {
	case playback.Running:
		c, icon = th.Sorted, "●"
	case playback.Paused:
		c = th.Compared
	case playback.Completed:
		c, icon = th.Primary, "✓"
	default:
		c = th.Muted
	}
	style := lipgloss.NewStyle().Foreground(c)
	return style.Render(icon), style.Render(s.String())
}
