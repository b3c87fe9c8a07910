package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sourcespace/internal/config"
	"github.com/san-kum/sourcespace/internal/export"
	"github.com/san-kum/sourcespace/internal/metrics"
	"github.com/san-kum/sourcespace/internal/palette"
	"github.com/san-kum/sourcespace/internal/sim"
	"github.com/san-kum/sourcespace/internal/storage"
	"github.com/san-kum/sourcespace/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	logFile string
	debug   bool

	configFile string
	preset     string
	theme      string
	fps        int
	seed       uint64
	particles  int
	threshold  float64

	gifPath string

	frames int
	cols   int
	rows   int
	runs   int

	outFile string
	metric  string
	braille bool
	scale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sourcespace",
		Short:        "ambient constellation backdrop for the terminal",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sourcespace", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (live view logs nowhere without it)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	addSceneFlags(rootCmd)
	rootCmd.Flags().StringVar(&gifPath, "gif", "sourcespace.gif", "GIF recording path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the backdrop in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().StringVar(&gifPath, "gif", "sourcespace.gif", "GIF recording path")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list themes",
		Args:  cobra.NoArgs,
		RunE:  listThemes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "run a headless simulation and record metrics",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSceneFlags(simCmd)
	addSurfaceFlags(simCmd)
	simCmd.Flags().IntVar(&runs, "runs", 1, "number of runs with consecutive seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metric, "metric", "all", "energy, edges, speed, escapes or all")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout if empty)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a simulated frame to SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addSceneFlags(snapshotCmd)
	addSurfaceFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "sourcespace.svg", "output SVG file")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "render the Braille canvas dot by dot instead of vector shapes")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "pixels per Braille dot (with --braille)")

	rootCmd.AddCommand(liveCmd, themesCmd, presetsCmd, simCmd, listCmd, plotCmd, exportJSONCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&theme, "theme", palette.DefaultKey, "theme key")
	cmd.Flags().IntVar(&fps, "fps", 60, "frame rate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 for fresh randomness)")
	cmd.Flags().IntVar(&particles, "particles", 30, "particle count")
	cmd.Flags().Float64Var(&threshold, "threshold", 100, "connection distance in pixels")
}

func addSurfaceFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	cmd.Flags().IntVar(&cols, "cols", 120, "surface width in cells")
	cmd.Flags().IntVar(&rows, "rows", 40, "surface height in cells")
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if !cfg.Apply(preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("particles") {
		cfg.Particles.Count = particles
	}
	if flags.Changed("threshold") {
		cfg.Particles.Threshold = threshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to --log when set, otherwise to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closer := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "sourcespace",
	})
	return logger, closer, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	m := viz.NewModel(viz.Options{Config: cfg, Logger: logger, GIFPath: gifPath})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tDESCRIPTION")
	for _, key := range palette.Keys() {
		t := palette.Lookup(key)
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", t.Key, t.Emoji, t.Name, t.Description)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tTHRESHOLD\tSPEED\tSTARS\tFPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.1f\t%d\t%d\n",
			name,
			p.Particles.Count,
			p.Particles.Threshold,
			p.Particles.Speed,
			p.Stars.Count,
			p.FPS,
		)
	}
	return w.Flush()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := sim.Options{Frames: frames, Cols: cols, Rows: rows}
	var results []*sim.Result
	if runs > 1 {
		results, err = sim.NewEnsemble(cfg, logger, runs, cfg.Seed).Run(ctx, opts)
	} else {
		var res *sim.Result
		res, err = sim.New(cfg, logger).Run(ctx, opts)
		results = []*sim.Result{res}
	}
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	for _, res := range results {
		runID, err := st.Save(storage.RunMetadata{
			Theme:     res.Theme.Key,
			Seed:      res.Seed,
			FPS:       cfg.FPS,
			Particles: res.Field.Len(),
			Threshold: cfg.Particles.Threshold,
			Width:     res.Width,
			Height:    res.Height,
			Metrics:   res.Summary,
		}, res.Points)
		if err != nil {
			return err
		}
		logger.Info("run saved", "id", runID, "frames", len(res.Points))

		fmt.Printf("run: %s\n", runID)
		for _, m := range metrics.Defaults() {
			fmt.Printf("  %s: %.4f\n", m.Name(), res.Summary[m.Name()])
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTHEME\tTIME\tFRAMES\tPARTICLES\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Theme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Particles,
			run.Seed,
		)
	}
	return w.Flush()
}

// resolveRun returns the run named by args, or the latest run.
func resolveRun(st *storage.Store, args []string) (*storage.RunMetadata, error) {
	if len(args) > 0 {
		return st.Load(args[0])
	}
	return st.Latest()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	points, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data for run: %s", meta.ID)
	}

	series := map[string]func(metrics.Point) float64{
		"energy":  func(p metrics.Point) float64 { return p.Energy },
		"edges":   func(p metrics.Point) float64 { return float64(p.Edges) },
		"speed":   func(p metrics.Point) float64 { return p.MeanSpeed },
		"escapes": func(p metrics.Point) float64 { return float64(p.Escapes) },
	}
	order := []string{"energy", "edges", "speed", "escapes"}
	if metric != "all" {
		if _, ok := series[metric]; !ok {
			return fmt.Errorf("unknown metric: %s (available: %v)", metric, order)
		}
		order = []string{metric}
	}

	fmt.Printf("run: %s (%s, %d frames)\n\n", meta.ID, meta.Theme, meta.Frames)
	for _, name := range order {
		get := series[name]
		data := make([]float64, len(points))
		for i, p := range points {
			data[i] = get(p)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	if outFile == "" {
		return st.ExportJSON(os.Stdout, meta.ID)
	}
	if err := st.ExportJSONFile(outFile, meta.ID); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", meta.ID, outFile)
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	res, err := sim.New(cfg, logger).Run(cmd.Context(), sim.Options{Frames: frames, Cols: cols, Rows: rows})
	if err != nil {
		return err
	}

	svg := export.FieldToSVG(res.Field, res.Theme, res.Width, res.Height)
	if braille {
		if res.Canvas == nil {
			return fmt.Errorf("no canvas for a %dx%d surface", cols, rows)
		}
		svg = export.CanvasToSVG(res.Canvas, scale)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, frame %d)\n", outFile, res.Theme.Key, frames)
	return nil
}
