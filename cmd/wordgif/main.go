package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/wordgif/internal/config"
	"github.com/san-kum/wordgif/internal/logging"
	"github.com/san-kum/wordgif/internal/storage"
	"github.com/san-kum/wordgif/internal/timing"
)

var (
	dataDir  string
	logLevel string

	input         string
	output        string
	columns       int
	rows          int
	delay         int
	fill          string
	background    string
	cellSize      int
	margin        int
	alternate     bool
	alternateMode string
	trim          bool
	speed         bool
	seed          uint64
	font          string
	rasterizer    string
	workers       int
	quality       int
	configFile    string
	preset        string
	noRecord      bool
	quiet         bool

	exportPath string

	scheduleFrames int
	scheduleDelay  int
	scheduleSpeed  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wordgif",
		Short:        "turn text into word-by-word animated gifs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, os.Stderr)
			if err != nil {
				return err
			}
			logging.SetLogger(l)
			gg.SetLogger(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wordgif", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "off", "log level (debug, info, warn, error, off)")

	def := config.DefaultConfig()

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the input text into one gif per grid cell",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	f := renderCmd.Flags()
	f.StringVarP(&input, "input", "i", def.Input, "input text file")
	f.StringVarP(&output, "output", "o", def.Output, "output path prefix")
	f.IntVarP(&columns, "columns", "c", def.Columns, "grid columns")
	f.IntVarP(&rows, "rows", "r", def.Rows, "grid rows")
	f.IntVarP(&delay, "delay", "d", def.Delay, "frame delay in ms")
	f.StringVarP(&fill, "fill", "f", def.Colors.Fill, "text color")
	f.StringVarP(&background, "background", "b", def.Colors.Background, "background color")
	f.IntVarP(&cellSize, "size", "s", def.Cell.Size, "cell size in px")
	f.IntVarP(&margin, "margin", "m", def.Cell.Margin, "margin between cells in px")
	f.BoolVar(&alternate, "alternate", false, "swap fill and background every frame")
	f.StringVar(&alternateMode, "alternate-mode", "", "alternation mode (off, frame, word)")
	f.BoolVar(&trim, "trim", false, "randomly drop words, keeping more near the edges")
	f.BoolVar(&speed, "speed", false, "speed up toward the middle of the text")
	f.Uint64Var(&seed, "seed", 0, "trim seed, 0 for random")
	f.StringVar(&font, "font", "", "TTF/OTF font file")
	f.StringVar(&rasterizer, "rasterizer", def.Render.Rasterizer, "rasterizer (canvas, magick)")
	f.IntVar(&workers, "workers", def.Render.Workers, "concurrent rasterizations")
	f.IntVar(&quality, "quality", def.Render.Quality, "palette quality, 1 is best")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.BoolVar(&noRecord, "no-record", false, "do not record the run")
	f.BoolVarP(&quiet, "quiet", "q", false, "no progress output")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "plot the frame delays of a run",
		Args:  cobra.NoArgs,
		RunE:  plotSchedule,
	}
	scheduleCmd.Flags().IntVarP(&scheduleFrames, "frames", "n", 40, "number of frames")
	scheduleCmd.Flags().IntVarP(&scheduleDelay, "delay", "d", def.Delay, "frame delay in ms")
	scheduleCmd.Flags().BoolVar(&scheduleSpeed, "speed", true, "apply the speed ramp")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(renderCmd, scheduleCmd, presetsCmd, listCmd, showCmd, exportCmd)
	return rootCmd
}

func plotSchedule(cmd *cobra.Command, args []string) error {
	p := timing.Policy{BaseDelayMs: scheduleDelay, SpeedRamp: scheduleSpeed}
	if err := p.Validate(); err != nil {
		return err
	}
	if scheduleFrames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", scheduleFrames)
	}

	sched := timing.NewScheduler(p).Schedule(scheduleFrames)
	data := make([]float64, len(sched))
	for i, d := range sched {
		data[i] = float64(d)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("delay ms over %d frames (min %d, max %d)", scheduleFrames, p.MinDelayMs(), p.MaxDelayMs())),
	))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tDELAY\tSPEED\tTRIM\tALTERNATE\tCOLORS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%dms\t%v\t%v\t%s\t%s/%s\n",
			name, p.Columns, p.Rows, p.Delay, p.Speed, p.Trim, p.Colors.Alternate, p.Colors.Fill, p.Colors.Background)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINPUT\tGRID\tFRAMES\tDROPPED\tDELAY\tRASTER")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%dms\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Input,
			run.Columns, run.Rows,
			run.Frames,
			run.Dropped,
			run.DelayMs,
			run.Rasterizer,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s (%s)\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  input: %s  grid: %dx%d  frames: %d  dropped: %d  elapsed: %dms\n",
		meta.Input, meta.Columns, meta.Rows, meta.Frames, meta.Dropped, meta.ElapsedMs)
	fmt.Fprintf(out, "  files: %s\n", strings.Join(meta.Files, ", "))

	if len(frames) < 2 {
		return nil
	}
	fmt.Fprintln(out, asciigraph.Plot(storage.Delays(frames),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame delay (ms)"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}
	if exportPath == "" {
		return storage.WriteJSON(cmd.OutOrStdout(), data)
	}
	if err := storage.ExportJSON(exportPath, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", exportPath)
	return nil
}
