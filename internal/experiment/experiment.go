package experiment

import (
	"github.com/ecodyn/lotkasim/internal/analysis"
	"github.com/ecodyn/lotkasim/internal/config"
	"github.com/ecodyn/lotkasim/internal/physics"
	"github.com/ecodyn/lotkasim/internal/sim"
)

// Result bundles everything one run produces: the trajectory, the
// algebraic fixed points, the oscillation summary, and the observed
// drift of the orbit invariant (an integration-quality signal).
type Result struct {
	Trajectory     *sim.Trajectory
	Equilibria     physics.EquilibriumPair
	Summary        analysis.Summary
	InvariantDrift float64
}

// Run executes the full pipeline for one parameter set: simulate,
// compute equilibria, analyze oscillations.
func Run(cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := cfg.Model()
	traj, err := sim.Simulate(model, cfg.InitState(), cfg.SimConfig())
	if err != nil {
		return nil, err
	}

	return &Result{
		Trajectory:     traj,
		Equilibria:     model.Equilibria(),
		Summary:        analysis.Analyze(traj),
		InvariantDrift: sim.InvariantDrift(model, traj),
	}, nil
}
