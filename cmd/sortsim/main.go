package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/ops"
	"github.com/san-kum/sortsim/internal/registry"
	"github.com/san-kum/sortsim/internal/tui"
)

var (
	configFile string
	debug      bool
	preset     string
	size       int
	seed       int64
	values     string
	intervalMs int
	logFile    string
	theme      string
	traceOut   string
	renderOut  string
	// render options
	every  int
	atStep int
	width  int
	height int
	quiet  bool
)

var logger = slog.New(slog.DiscardHandler)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sortsim",
		Short:         "sorting algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(os.Stderr)
		},
		RunE: runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&preset, "preset", config.DefaultPreset, "input preset")
	pf.IntVar(&size, "size", config.DefaultSize, "number of values to generate")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed for presets")
	pf.StringVar(&values, "values", "", "explicit input, e.g. \"5,1,4,2,8\"")
	pf.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "milliseconds between steps")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme")

	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the TUI runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE:  listAlgorithms,
	}

	showCmd := &cobra.Command{
		Use:   "show [algorithm]",
		Short: "show complexity and reference code",
		Args:  cobra.ExactArgs(1),
		RunE:  showAlgorithm,
	}

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "play an algorithm in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAlgorithm,
	}
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "record the operation log of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordTrace,
	}
	traceCmd.Flags().StringVarP(&traceOut, "output", "o", "", "output path (.json file or directory); stdout if empty")

	replayCmd := &cobra.Command{
		Use:   "replay [trace]",
		Short: "verify and play back a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE:  replayTrace,
	}
	replayCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "compare algorithms on the same input",
		RunE:  compareAlgorithms,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "plot disorder and work over a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotAlgorithm,
	}

	renderCmd := &cobra.Command{
		Use:   "render [algorithm]",
		Short: "render a run as svg, png or gif",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderAlgorithm,
	}
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "sortsim.gif", "output file (.svg, .png or .gif)")
	renderCmd.Flags().IntVar(&every, "every", 1, "keep every nth frame in a gif")
	renderCmd.Flags().IntVar(&atStep, "step", -1, "frame to render for svg/png (default: final)")
	renderCmd.Flags().IntVar(&width, "width", 640, "image width")
	renderCmd.Flags().IntVar(&height, "height", 360, "image height")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "count operations and time every algorithm",
		RunE:  benchAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list input presets",
		RunE:  listPresets,
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "print the trace JSON schema",
		RunE:  printSchema,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(listCmd, showCmd, runCmd, traceCmd, replayCmd, compareCmd,
		plotCmd, renderCmd, benchCmd, presetsCmd, schemaCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("component", "sortsim")
}

// loadConfig reads --config when given and applies explicitly set flags on
// top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Input.Preset = preset
	}
	if flags.Changed("size") {
		cfg.Input.Size = size
	}
	if flags.Changed("seed") {
		cfg.Input.Seed = seed
	}
	if flags.Changed("values") {
		v, err := config.ParseValues(values)
		if err != nil {
			return nil, visualizeErr(err)
		}
		if len(v) == 0 {
			return nil, visualizeErr(ops.ErrInvalidInput)
		}
		cfg.Input.Values = v
	}
	if flags.Changed("interval") {
		cfg.Playback.IntervalMs = intervalMs
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, visualizeErr(err)
	}
	logger.Debug("config loaded", "algorithm", cfg.Algorithm, "preset", cfg.Input.Preset,
		"size", cfg.Input.Size, "seed", cfg.Input.Seed, "interval", cfg.Interval())
	return cfg, nil
}

// setup resolves the algorithm named in args (or the config) and builds the
// input array.
func setup(cmd *cobra.Command, args []string) (*config.Config, registry.Entry, []float64, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, registry.Entry{}, nil, err
	}
	entry, err := resolveAlgorithm(cfg, args)
	if err != nil {
		return nil, registry.Entry{}, nil, err
	}
	input, err := cfg.BuildInput()
	if err != nil {
		return nil, registry.Entry{}, nil, err
	}
	if err := ops.ValidateInput(input); err != nil {
		return nil, registry.Entry{}, nil, visualizeErr(err)
	}
	return cfg, entry, input, nil
}

// resolveAlgorithm looks up an explicit argument strictly. The config's
// algorithm falls back to the first registry entry when unknown.
func resolveAlgorithm(cfg *config.Config, args []string) (registry.Entry, error) {
	reg := registry.Default()
	if len(args) > 0 {
		return reg.Get(args[0])
	}
	if _, ok := reg.Lookup(cfg.Algorithm); !ok && cfg.Algorithm != "" {
		logger.Warn("unknown algorithm in config, using default", "algorithm", cfg.Algorithm)
	}
	return reg.Resolve(cfg.Algorithm), nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	input, err := cfg.BuildInput()
	if err != nil {
		return err
	}

	// the TUI owns the terminal, so logs go to a file or nowhere
	tuiLogger := slog.New(slog.DiscardHandler)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		tuiLogger = newLogger(f)
	}

	return tui.Run(tui.Options{
		Registry:  registry.Default(),
		Algorithm: cfg.Algorithm,
		Input:     input,
		Compare:   cfg.Compare,
		Interval:  cfg.Interval(),
		Theme:     cfg.Theme,
		Logger:    tuiLogger,
	})
}
