package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecodyn/lotkasim/internal/analysis"
	"github.com/ecodyn/lotkasim/internal/config"
	"github.com/ecodyn/lotkasim/internal/experiment"
	"github.com/ecodyn/lotkasim/internal/export"
	"github.com/ecodyn/lotkasim/internal/report"
	"github.com/ecodyn/lotkasim/internal/sim"
	"github.com/ecodyn/lotkasim/internal/storage"
	"github.com/ecodyn/lotkasim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	alpha     float64
	beta      float64
	gamma     float64
	delta     float64
	x0        float64
	y0        float64
	tMax      float64
	numPoints int
	tolerance float64

	saveRun bool
	outFile string

	plotWidth  int
	plotHeight int

	sweepMin   float64
	sweepMax   float64
	sweepCount int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lotkasim",
		Short: "Lotka-Volterra predator-prey simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lotkasim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate and report equilibria, oscillations, and rates",
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run to the data directory")

	equilibriaCmd := &cobra.Command{
		Use:   "equilibria",
		Short: "print the fixed points for the given coefficients",
		RunE:  showEquilibria,
	}
	addModelFlags(equilibriaCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot populations and rates of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(plotCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	addPlotFlags(phaseCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary the initial predator population and compare cycles",
		RunE:  sweepInitials,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "y0-min", 2, "smallest initial predator population")
	sweepCmd.Flags().Float64Var(&sweepMax, "y0-max", 10, "largest initial predator population")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 5, "number of sweep points")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the system in the terminal",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in parameter presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the phase portrait of a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "phase.svg", "output file")
	exportSVGCmd.Flags().IntVar(&plotWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&plotHeight, "height", 600, "image height")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare fixed-step integrators against the adaptive solver",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addModelFlags(compareCmd)

	rootCmd.AddCommand(runCmd, equilibriaCmd, analyzeCmd, plotCmd, phaseCmd,
		sweepCmd, liveCmd, listCmd, presetsCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "prey growth rate")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "predation rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "predator death rate")
	cmd.Flags().Float64Var(&delta, "delta", config.DefaultDelta, "predator growth per prey eaten")
	cmd.Flags().Float64Var(&x0, "x0", config.DefaultPrey, "initial prey population")
	cmd.Flags().Float64Var(&y0, "y0", config.DefaultPredator, "initial predator population")
	cmd.Flags().Float64Var(&tMax, "tmax", config.DefaultTMax, "simulated time span")
	cmd.Flags().IntVar(&numPoints, "points", config.DefaultNumPoints, "number of output samples")
	cmd.Flags().Float64Var(&tolerance, "tol", 0, "solver tolerance (0 uses the default)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&plotWidth, "width", 70, "plot width in characters")
	cmd.Flags().IntVar(&plotHeight, "height", 15, "plot height in characters")
}

// buildConfig layers the parameter sources: defaults, then preset, then
// config file, then any flag the user set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("beta") {
		cfg.Beta = beta
	}
	if flags.Changed("gamma") {
		cfg.Gamma = gamma
	}
	if flags.Changed("delta") {
		cfg.Delta = delta
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}
	if flags.Changed("tmax") {
		cfg.TMax = tMax
	}
	if flags.Changed("points") {
		cfg.NumPoints = numPoints
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	result, err := experiment.Run(cfg)
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, result); err != nil {
		return err
	}

	fmt.Printf("\ninvariant drift: %.2e\n", result.InvariantDrift)

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("saved as %s\n", runID)
	}
	return nil
}

func showEquilibria(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	eq := cfg.Model().Equilibria()
	fmt.Printf("extinction:  (%.6f, %.6f)\n", eq.Extinction.Prey, eq.Extinction.Predator)
	fmt.Printf("coexistence: (%.6f, %.6f)\n", eq.Coexistence.Prey, eq.Coexistence.Predator)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	traj, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	summary := analysis.Analyze(traj)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tAMPLITUDE\tFREQUENCY")
	fmt.Fprintf(w, "prey\t%.6f\t%.6f\n", summary.PreyAmplitude, summary.PreyFrequency)
	fmt.Fprintf(w, "predator\t%.6f\t%.6f\n", summary.PredatorAmplitude, summary.PredatorFrequency)
	if err := w.Flush(); err != nil {
		return err
	}

	if cross := analysis.PeakSpacingFrequency(traj.Prey, traj.Times); cross > 0 {
		fmt.Printf("\npeak-spacing cross-check: %.6f\n", cross)
	}

	if spectrum := viz.Spectrum(traj, 70, 10); spectrum != "" {
		fmt.Println("\n" + spectrum)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	traj, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.TimeSeries(traj, plotWidth, plotHeight))
	fmt.Println()
	fmt.Println(viz.RateSeries(traj, plotWidth, plotHeight))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.PhasePortrait(result, plotWidth, plotHeight))
	return nil
}

func sweepInitials(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if sweepCount < 2 || sweepMax <= sweepMin {
		return fmt.Errorf("sweep needs count >= 2 and y0-max > y0-min")
	}

	starts := sim.SpanStates(cfg.X0, sweepMin, sweepMax, sweepCount)
	trajectories, err := sim.Sweep(cfg.Model(), starts, cfg.SimConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Y0\tPREY_AMPL\tPREY_FREQ\tPRED_AMPL\tPRED_FREQ")
	for i, traj := range trajectories {
		s := analysis.Analyze(traj)
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			starts[i][1], s.PreyAmplitude, s.PreyFrequency, s.PredatorAmplitude, s.PredatorFrequency)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return viz.Run(cfg.Model(), cfg.InitState())
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tALPHA\tBETA\tGAMMA\tDELTA\tX0\tY0\tTMAX\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.2f\t%.2f\t%.1f\t%d\n",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Alpha, run.Beta, run.Gamma, run.Delta,
			run.X0, run.Y0, run.TMax, run.NumPoints)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	traj, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "prey", "predator", "prey_rate", "predator_rate"}); err != nil {
		return err
	}
	for i := 0; i < traj.Len(); i++ {
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Prey[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Predator[i], 'f', 6, 64),
			strconv.FormatFloat(traj.PreyRate[i], 'f', 6, 64),
			strconv.FormatFloat(traj.PredatorRate[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.JSON(os.Stdout, cfg, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.PhaseSVG(result, plotWidth, plotHeight)
	if svg == "" {
		return fmt.Errorf("run %s has no trajectory to render", args[0])
	}
	if err := export.SVGFile(outFile, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	model := cfg.Model()
	registry := experiment.NewRegistry()

	reference, err := sim.Simulate(model, cfg.InitState(), cfg.SimConfig())
	if err != nil {
		return err
	}
	last := reference.Len() - 1

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_PREY\tFINAL_PRED\tFINAL_ERR\tINVARIANT_DRIFT")
	fmt.Fprintf(w, "rk45 (adaptive)\t%.6f\t%.6f\t-\t%.2e\n",
		reference.Prey[last], reference.Predator[last], sim.InvariantDrift(model, reference))

	for _, name := range args {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			return err
		}
		traj, err := sim.SimulateFixed(model, cfg.InitState(), cfg.SimConfig(), integ)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\tfailed: %v\n", name, err)
			continue
		}
		finalErr := traj.State(last).Sub(reference.State(last)).Norm()
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2e\t%.2e\n",
			name, traj.Prey[last], traj.Predator[last], finalErr, sim.InvariantDrift(model, traj))
	}
	return w.Flush()
}

// loadRun rebuilds the config and result of a stored run without
// re-simulating: the trajectory comes from disk, the equilibria from the
// stored coefficients, the summary from the metadata.
func loadRun(runID string) (*config.Config, *experiment.Result, error) {
	store := storage.New(dataDir)

	meta, err := store.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := store.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}

	cfg := &config.Config{
		Alpha: meta.Alpha, Beta: meta.Beta, Gamma: meta.Gamma, Delta: meta.Delta,
		X0: meta.X0, Y0: meta.Y0,
		TMax: meta.TMax, NumPoints: meta.NumPoints,
		Integrator: "rk45",
	}
	result := &experiment.Result{
		Trajectory:     traj,
		Equilibria:     cfg.Model().Equilibria(),
		Summary:        meta.Summary,
		InvariantDrift: meta.InvariantDrift,
	}
	return cfg, result, nil
}

func loadResult(runID string) (*experiment.Result, error) {
	_, result, err := loadRun(runID)
	return result, err
}
