// Package report emits the plain-text results record for a run:
// equilibrium points, oscillation summary, and the per-sample rates of
// change of both populations.
package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ecodyn/lotkasim/internal/experiment"
)

func Write(w io.Writer, result *experiment.Result) error {
	eq := result.Equilibria
	s := result.Summary

	fmt.Fprintln(w, "Lotka-Volterra equilibrium points (steady-state solutions):")
	fmt.Fprintf(w, "  extinction:  (%.6f, %.6f)\n", eq.Extinction.Prey, eq.Extinction.Predator)
	fmt.Fprintf(w, "  coexistence: (%.6f, %.6f)\n", eq.Coexistence.Prey, eq.Coexistence.Predator)

	fmt.Fprintln(w, "\nPrey population oscillation:")
	fmt.Fprintf(w, "  amplitude: %.6f\n", s.PreyAmplitude)
	fmt.Fprintf(w, "  frequency: %.6f cycles per unit time\n", s.PreyFrequency)

	fmt.Fprintln(w, "\nPredator population oscillation:")
	fmt.Fprintf(w, "  amplitude: %.6f\n", s.PredatorAmplitude)
	fmt.Fprintf(w, "  frequency: %.6f cycles per unit time\n", s.PredatorFrequency)

	if s.PreyFrequency == 0 && s.PredatorFrequency == 0 {
		fmt.Fprintln(w, "\nNo full oscillation observed in the sampled window.")
	}

	fmt.Fprintln(w, "\nRates of change per time sample:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tPREY_RATE\tPREDATOR_RATE")

	traj := result.Trajectory
	for i := 0; i < traj.Len(); i++ {
		fmt.Fprintf(tw, "%.6f\t%.6f\t%.6f\n", traj.Times[i], traj.PreyRate[i], traj.PredatorRate[i])
	}
	return tw.Flush()
}

// WriteFile writes the record to path, creating or truncating it.
func WriteFile(path string, result *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, result)
}
