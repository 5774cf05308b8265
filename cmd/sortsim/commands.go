package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortsim/internal/algorithms"
	"github.com/san-kum/sortsim/internal/completion"
	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/ensemble"
	"github.com/san-kum/sortsim/internal/export"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/registry"
	"github.com/san-kum/sortsim/internal/trace"
	"github.com/san-kum/sortsim/internal/tui"
)

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBEST\tAVERAGE\tWORST\tSPACE\tSTABLE")
	for _, e := range registry.Default().Entries() {
		m := e.Metadata
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\n",
			e.Name, m.Time.Best, m.Time.Average, m.Time.Worst, m.Space, m.Stable)
	}
	return w.Flush()
}

func showAlgorithm(cmd *cobra.Command, args []string) error {
	e, err := registry.Default().Get(args[0])
	if err != nil {
		return err
	}
	m := e.Metadata
	fmt.Printf("%s sort\n\n", e.Name)
	fmt.Println(m.Description)
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "best\t%s\n", m.Time.Best)
	fmt.Fprintf(w, "average\t%s\n", m.Time.Average)
	fmt.Fprintf(w, "worst\t%s\n", m.Time.Worst)
	fmt.Fprintf(w, "space\t%s\n", m.Space)
	fmt.Fprintf(w, "stable\t%v\n", m.Stable)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(m.Code)
	return nil
}

// runAlgorithm plays one run on the real clock and waits for the tracker,
// printing each operation as its frame arrives.
func runAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, entry, input, err := setup(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracker, err := completion.New(1, func() {
		logger.Debug("run complete", "algorithm", entry.Name)
	})
	if err != nil {
		return err
	}

	// frames also arrive for state changes; print each step once
	var (
		mu      sync.Mutex
		printed int
	)
	errCh := make(chan error, 1)
	c := playback.New(
		playback.WithInterval(cfg.Interval()),
		playback.WithLogger(logger),
		playback.WithFrameHook(func(f playback.Frame) {
			mu.Lock()
			defer mu.Unlock()
			if quiet || f.Step <= printed {
				return
			}
			printed = f.Step
			fmt.Printf("%5d  %-18s %s\n", f.Step, f.Last, formatValues(f.Values))
		}),
		playback.WithCompletionHook(tracker.NotifyDone),
		playback.WithErrorHook(func(err error) {
			select {
			case errCh <- err:
			default:
			}
		}),
	)
	defer c.Close()

	if !quiet {
		fmt.Printf("%5d  %-18s %s\n", 0, "start", formatValues(input))
	}
	if err := c.Start(input, entry.Algorithm()); err != nil {
		return visualizeErr(err)
	}

	select {
	case <-tracker.Done():
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Pause()
		fmt.Fprintln(os.Stderr, "interrupted")
	}

	printSummary(c.Frame())
	return nil
}

func recordTrace(cmd *cobra.Command, args []string) error {
	_, entry, input, err := setup(cmd, args)
	if err != nil {
		return err
	}
	t := trace.Record(entry.Algorithm(), input)
	logger.Info("trace recorded", "algorithm", t.Algorithm, "operations", len(t.Operations), "id", t.ID)

	if traceOut == "" {
		return trace.WriteJSON(os.Stdout, t)
	}
	if err := trace.Save(traceOut, t); err != nil {
		return err
	}
	fmt.Printf("saved %s trace (%d operations) to %s\n", t.Algorithm, len(t.Operations), traceOut)
	return nil
}

// replayTrace verifies a recorded trace and then drives it through a
// controller, so the replay is subject to the same bounds checks as a live
// run.
func replayTrace(cmd *cobra.Command, args []string) error {
	t, err := trace.Load(args[0])
	if err != nil {
		return err
	}
	if err := t.Verify(); err != nil {
		return fmt.Errorf("trace %s: %w", t.ID, err)
	}
	player, err := t.Player()
	if err != nil {
		return err
	}

	frames, err := export.Frames(t.Input, player, 1)
	if err != nil {
		return err
	}
	if !quiet {
		printed := 0
		for _, f := range frames {
			if f.Step > printed {
				printed = f.Step
				fmt.Printf("%5d  %-18s %s\n", f.Step, f.Last, formatValues(f.Values))
			}
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tCOUNT")
	counts := t.Counts()
	for _, k := range []string{"compare", "swap", "overwrite", "mark"} {
		fmt.Fprintf(w, "%s\t%d\n", k, counts[k])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printSummary(frames[len(frames)-1])
	return nil
}

// compareAlgorithms runs each algorithm over the same input and plots the
// inversion count against step number.
func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	input, err := cfg.BuildInput()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = cfg.Compare
	}
	if len(names) == 0 {
		names = registry.Default().Names()
	}

	algs := make([]algorithms.Algorithm, 0, len(names))
	for _, name := range names {
		e, err := registry.Default().Get(name)
		if err != nil {
			return err
		}
		algs = append(algs, e.Algorithm())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := ensemble.New(algs, ensemble.WithLogger(logger)).Run(ctx, input)
	if err != nil {
		return visualizeErr(err)
	}

	var (
		series [][]float64
		legend []string
	)
	for _, r := range results {
		series = append(series, r.Series("inversions"))
		legend = append(legend, r.Algorithm)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tCOMPARISONS\tSWAPS\tWRITES")
	for _, r := range results {
		f := r.Final
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.0f\n",
			f.Algorithm, f.Step, f.Stats["comparisons"], f.Stats["swaps"], f.Stats["writes"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany(padSeries(series),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(seriesColors(len(series))...),
		asciigraph.SeriesLegends(legend...),
		asciigraph.Caption(fmt.Sprintf("inversions per step (n=%d)", len(input))),
	))
	return nil
}

func plotAlgorithm(cmd *cobra.Command, args []string) error {
	_, entry, input, err := setup(cmd, args)
	if err != nil {
		return err
	}
	frames, err := export.Frames(input, entry.Algorithm(), 1)
	if err != nil {
		return err
	}

	for _, stat := range []string{"inversions", "comparisons"} {
		data := statSeries(frames, stat)
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s: %s", entry.Name, stat)),
		))
		fmt.Println()
	}
	printSummary(frames[len(frames)-1])
	return nil
}

func renderAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, entry, input, err := setup(cmd, args)
	if err != nil {
		return err
	}

	style := tui.GetTheme(cfg.Theme).ExportStyle()
	style.Width = width
	style.Height = height

	ext := strings.ToLower(filepath.Ext(renderOut))
	keep := every
	if ext != ".gif" {
		keep = 1
	}
	frames, err := export.Frames(input, entry.Algorithm(), keep)
	if err != nil {
		return visualizeErr(err)
	}

	pick := frames[len(frames)-1]
	if atStep >= 0 {
		for _, f := range frames {
			if f.Step == atStep {
				pick = f
				break
			}
		}
	}

	switch ext {
	case ".svg":
		err = os.WriteFile(renderOut, []byte(export.FrameToSVG(pick, style)), 0644)
	case ".png":
		err = export.SavePNG(renderOut, pick, style)
	case ".gif":
		err = export.SaveGIF(renderOut, frames, style, cfg.Interval())
	default:
		return fmt.Errorf("unsupported output format %q (use .svg, .png or .gif)", ext)
	}
	if err != nil {
		return err
	}
	logger.Info("rendered", "algorithm", entry.Name, "path", renderOut, "frames", len(frames))
	fmt.Printf("wrote %s\n", renderOut)
	return nil
}

// benchAlgorithms times operation generation for every algorithm over a few
// sizes of the configured preset.
func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sizes := []int{16, 64, 256}
	if cmd.Flags().Changed("size") {
		sizes = []int{cfg.Input.Size}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tN\tOPERATIONS\tCOMPARISONS\tSWAPS\tWRITES\tTIME")
	for _, e := range registry.Default().Entries() {
		for _, n := range sizes {
			input, err := config.Generate(cfg.Input.Preset, n, cfg.Input.Seed)
			if err != nil {
				return err
			}

			set := metrics.DefaultSet()
			start := time.Now()
			steps := 0
			for op := range e.Produce(input) {
				set.Observe(op, nil)
				steps++
			}
			elapsed := time.Since(start)

			stats := set.Values()
			fmt.Fprintf(w, "%s\t%d\t%d\t%.0f\t%.0f\t%.0f\t%v\n",
				e.Name, n, steps, stats["comparisons"], stats["swaps"], stats["writes"],
				elapsed.Round(time.Microsecond))
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
	}
	return w.Flush()
}

func printSchema(cmd *cobra.Command, args []string) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(trace.Schema())
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

// visualizeErr gives invalid-input errors the message users see in the TUI.
func visualizeErr(err error) error {
	if errors.Is(err, ops.ErrInvalidInput) {
		return fmt.Errorf("cannot visualize this input: %w", err)
	}
	return err
}

func printSummary(f playback.Frame) {
	fmt.Printf("\n%s: %s after %d steps\n", f.Algorithm, f.State, f.Step)
	fmt.Printf("result: %s\n", formatValues(f.Values))
	for _, k := range metrics.SortedKeys(f.Stats) {
		fmt.Printf("  %-12s %.0f\n", k, f.Stats[k])
	}
}

func formatValues(v []float64) string {
	const limit = 16
	parts := make([]string, 0, min(len(v), limit)+1)
	for i, x := range v {
		if i == limit {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(v)-limit))
			break
		}
		parts = append(parts, fmt.Sprintf("%g", x))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func statSeries(frames []playback.Frame, stat string) []float64 {
	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = f.Stats[stat]
	}
	return data
}

// padSeries extends shorter series with their final value so every line
// spans the plot.
func padSeries(series [][]float64) [][]float64 {
	longest := 0
	for _, s := range series {
		longest = max(longest, len(s))
	}
	out := make([][]float64, len(series))
	for i, s := range series {
		p := make([]float64, longest)
		copy(p, s)
		for j := len(s); j < longest; j++ {
			p[j] = s[len(s)-1]
		}
		out[i] = p
	}
	return out
}

func seriesColors(n int) []asciigraph.AnsiColor {
	palette := []asciigraph.AnsiColor{
		asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue, asciigraph.Magenta, asciigraph.Cyan,
	}
	out := make([]asciigraph.AnsiColor, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}
