package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/experiment"
	"github.com/san-kum/projsim/internal/export"
	"github.com/san-kum/projsim/internal/logger"
	"github.com/san-kum/projsim/internal/optim"
	"github.com/san-kum/projsim/internal/storage"
	"github.com/san-kum/projsim/internal/viz"
)

const (
	anglesName     = "projectile_motion_with_various_angles_no_air_resistance"
	velocitiesName = "projectile_motion_with_various_velocities_no_air_resistance"
	resultsFile    = "projectile_experiment_results.csv"
	optimalFile    = "optimal_angle_vs_drag_coefficient.svg"
)

var (
	configFile string
	preset     string
	outputDir  string
	dataDir    string
	integrator string
	dt         float64
	workers    int
	view       bool
	quiet      bool
	width      int
	height     int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "projsim",
		Short:        "projectile motion with linear air resistance",
		Long:         "Runs the angle and velocity sweeps without drag, then finds the optimal launch angle for each drag coefficient.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runAll,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&outputDir, "out", config.DefaultOutputDir, "directory for images and the results table")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	pf.Float64Var(&dt, "dt", 0.01, "timestep")
	pf.IntVar(&workers, "workers", 1, "concurrent angle sweeps in the optimal search")
	pf.BoolVar(&quiet, "quiet", false, "suppress progress logging")
	pf.IntVar(&width, "width", 80, "terminal plot width")
	pf.IntVar(&height, "height", 20, "terminal plot height")
	rootCmd.Flags().BoolVar(&view, "view", false, "browse the angle sweep interactively")

	anglesCmd := &cobra.Command{
		Use:   "angles [drag]",
		Short: "sweep launch angles at a fixed speed",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweepCmd("angles"),
	}
	anglesCmd.Flags().BoolVar(&view, "view", false, "browse trajectories interactively")

	velocitiesCmd := &cobra.Command{
		Use:   "velocities [drag]",
		Short: "sweep initial speeds at a fixed angle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweepCmd("velocities"),
	}
	velocitiesCmd.Flags().BoolVar(&view, "view", false, "browse trajectories interactively")

	optimalCmd := &cobra.Command{
		Use:   "optimal",
		Short: "find the optimal launch angle for each drag coefficient",
		Args:  cobra.NoArgs,
		RunE:  runOptimal,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored sweeps",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot heights of a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets and integrators",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
			fmt.Fprintln(out, "integrators:")
			for _, name := range experiment.NewRegistry().ListIntegrators() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(anglesCmd, velocitiesCmd, optimalCmd, runsCmd, plotCmd, exportCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers defaults, preset, config file and changed flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("workers") {
		cfg.Optimal.Workers = workers
	}
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type app struct {
	cfg   *config.Config
	integ func() dynamo.Integrator
	store *storage.Store
	log   *logger.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, err
	}

	log := logger.New("projsim")
	if quiet {
		log = logger.Discard()
	}

	return &app{cfg: cfg, integ: integ, store: st, log: log}, nil
}

// sweep runs the named experiment, writes its SVG and stores it under label.
func (a *app) sweep(ctx context.Context, name, label string, drag float64) (*experiment.SweepResult, error) {
	factory, err := experiment.NewRegistry().GetExperiment(name)
	if err != nil {
		return nil, err
	}

	values := a.cfg.Angles
	if name == "velocities" {
		values = a.cfg.Velocities
	}

	start := time.Now()
	res, err := factory(drag, values, a.cfg.SweepOptions(a.integ)...).Run(ctx)
	if err != nil {
		return nil, err
	}
	a.log.Printf("%s sweep at drag %g: %d trajectories in %v", name, drag, len(res.Entries), time.Since(start))

	path := filepath.Join(a.cfg.OutputDir, label+".svg")
	if err := export.WriteSweepSVG(path, res); err != nil {
		return nil, err
	}
	a.log.Printf("wrote %s", path)

	if _, err := a.store.Save(label, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *app) optimal(cmd *cobra.Command) error {
	oc := a.cfg.OptimConfig(a.integ)

	start := time.Now()
	records, err := optim.OptimalAngles(cmd.Context(), oc)
	if err != nil {
		return err
	}
	a.log.Printf("optimal search over %d drag values in %v", len(records), time.Since(start))

	csvPath := filepath.Join(a.cfg.OutputDir, resultsFile)
	if err := export.WriteTableFile(csvPath, records); err != nil {
		return err
	}
	svgPath := filepath.Join(a.cfg.OutputDir, optimalFile)
	if err := export.WriteOptimalSVG(svgPath, records); err != nil {
		return err
	}
	a.log.Printf("wrote %s and %s", csvPath, svgPath)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.RenderTable(records))
	fmt.Fprintln(out, viz.OptimalChart(records, width, height/2))
	return nil
}

func runAll(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	angles, err := a.sweep(ctx, "angles", anglesName, 0)
	if err != nil {
		return err
	}
	if _, err := a.sweep(ctx, "velocities", velocitiesName, 0); err != nil {
		return err
	}
	if err := a.optimal(cmd); err != nil {
		return err
	}

	if view {
		return viz.Show(anglesName, angles)
	}
	return nil
}

func runSweepCmd(name string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		drag := 0.0
		if len(args) == 1 {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid drag coefficient %q: %w", args[0], err)
			}
			drag = v
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		label := sweepLabel(name, drag)
		res, err := a.sweep(cmd.Context(), name, label, drag)
		if err != nil {
			return err
		}

		if view {
			return viz.Show(label, res)
		}

		plot, err := viz.RenderSweep(res, width, height, viz.NoHighlight)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), plot)
		if res.Optimal != nil && res.Optimal.Found {
			fmt.Fprintf(cmd.OutOrStdout(), "best angle %g degrees, range %.3f m\n", res.Optimal.BestAngle, res.Optimal.MaxRange)
		}
		return nil
	}
}

func sweepLabel(name string, drag float64) string {
	if drag == 0 {
		if name == "velocities" {
			return velocitiesName
		}
		return anglesName
	}
	return fmt.Sprintf("projectile_motion_with_various_%s_drag_%s", name, strconv.FormatFloat(drag, 'f', -1, 64))
}

func runOptimal(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.optimal(cmd)
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXPERIMENT\tTIME\tDRAG\tDT\tSERIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%.4fs\t%d\n",
			run.ID,
			run.Experiment,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Drag,
			run.Dt,
			len(run.Series),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "experiment: %s (drag %g)\n\n", meta.Experiment, meta.Drag)

	heights := make([][]float64, len(series))
	for i, s := range series {
		heights[i] = make([]float64, len(s.Points))
		for j, p := range s.Points {
			heights[i][j] = p.Y
		}
		fmt.Fprintf(out, "  %d: %s, %d samples\n", i, s.Label, len(s.Points))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.HeightChart(heights, width, height/2, "height (m) vs step"))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta)
}
