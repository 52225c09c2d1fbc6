package sim

import (
	"fmt"
	"math"

	"github.com/ecodyn/lotkasim/internal/dynamo"
	"github.com/ecodyn/lotkasim/internal/integrators"
)

type validator interface {
	Validate() error
}

// Simulate solves the initial value problem for the two-dimensional
// system dyn from x0 over [0, cfg.TMax], sampled at cfg.NumPoints evenly
// spaced times. The solver steps adaptively between samples and always
// lands exactly on each grid time; the rate series are obtained by
// re-evaluating the right-hand side at the stored samples, never by
// finite-differencing the output.
//
// Identical inputs produce bit-identical trajectories. On solver
// failure no partial trajectory is returned.
func Simulate(dyn dynamo.System, x0 dynamo.State, cfg Config) (*Trajectory, error) {
	if err := validate(dyn, x0, cfg); err != nil {
		return nil, err
	}

	solver := cfg.Solver
	if solver.Tolerance <= 0 {
		solver.Tolerance = dynamo.DefaultConfig().Tolerance
	}
	if solver.MinDt <= 0 {
		solver.MinDt = dynamo.DefaultConfig().MinDt
	}
	if solver.MaxSteps <= 0 {
		solver.MaxSteps = dynamo.DefaultConfig().MaxSteps
	}

	n := cfg.NumPoints
	spacing := cfg.TMax / float64(n-1)

	dt := solver.InitialDt
	if dt <= 0 {
		dt = spacing
	}
	if solver.MaxDt > 0 && dt > solver.MaxDt {
		dt = solver.MaxDt
	}

	traj := newTrajectory(n)
	integ := integrators.NewRK45()

	x := x0.Clone()
	steps := 0

	traj.Times[0] = 0
	traj.Prey[0] = x[0]
	traj.Predator[0] = x[1]

	for i := 1; i < n; i++ {
		target := float64(i) * spacing
		if i == n-1 {
			target = cfg.TMax
		}
		t := traj.Times[i-1]

		for t < target {
			if steps >= solver.MaxSteps {
				return nil, &dynamo.IntegrationError{Step: steps, Time: t, Wrapped: dynamo.ErrStepBudget}
			}

			h := dt
			atTarget := false
			if t+h >= target {
				h = target - t
				atTarget = true
			}

			xNew, taken, suggest, err := integ.StepAdaptive(dyn, x, t, h, solver.Tolerance)
			if err != nil {
				return nil, &dynamo.IntegrationError{Step: steps, Time: t, Wrapped: err}
			}
			if taken < solver.MinDt {
				return nil, &dynamo.IntegrationError{Step: steps, Time: t, Wrapped: dynamo.ErrStepTooSmall}
			}
			if !xNew.IsValid() {
				return nil, &dynamo.IntegrationError{Step: steps, Time: t, Wrapped: dynamo.ErrInvalidState}
			}

			x = xNew
			if atTarget && taken == h {
				t = target
			} else {
				t += taken
			}

			dt = suggest
			if solver.MaxDt > 0 && dt > solver.MaxDt {
				dt = solver.MaxDt
			}
			steps++
		}

		traj.Times[i] = target
		traj.Prey[i] = x[0]
		traj.Predator[i] = x[1]
	}

	for i := 0; i < n; i++ {
		d := dyn.Derive(dynamo.State{traj.Prey[i], traj.Predator[i]}, traj.Times[i])
		traj.PreyRate[i] = d[0]
		traj.PredatorRate[i] = d[1]
	}

	return traj, nil
}

// SimulateFixed integrates with the given fixed-step integrator, taking
// exactly one step per grid interval. It exists to compare steppers;
// the production path is the adaptive Simulate.
func SimulateFixed(dyn dynamo.System, x0 dynamo.State, cfg Config, integ dynamo.Integrator) (*Trajectory, error) {
	if err := validate(dyn, x0, cfg); err != nil {
		return nil, err
	}

	n := cfg.NumPoints
	spacing := cfg.TMax / float64(n-1)

	traj := newTrajectory(n)
	x := x0.Clone()
	traj.Prey[0] = x[0]
	traj.Predator[0] = x[1]

	for i := 1; i < n; i++ {
		t := float64(i-1) * spacing
		x = integ.Step(dyn, x, t, spacing)
		if !x.IsValid() {
			return nil, &dynamo.IntegrationError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
		}
		traj.Times[i] = float64(i) * spacing
		traj.Prey[i] = x[0]
		traj.Predator[i] = x[1]
	}
	traj.Times[n-1] = cfg.TMax

	for i := 0; i < n; i++ {
		d := dyn.Derive(dynamo.State{traj.Prey[i], traj.Predator[i]}, traj.Times[i])
		traj.PreyRate[i] = d[0]
		traj.PredatorRate[i] = d[1]
	}

	return traj, nil
}

func validate(dyn dynamo.System, x0 dynamo.State, cfg Config) error {
	if dyn.StateDim() != 2 || len(x0) != dyn.StateDim() {
		return dynamo.ErrDimensionMismatch
	}
	if v, ok := dyn.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if !x0.IsValid() {
		return fmt.Errorf("%w: initial state is not finite", dynamo.ErrInvalidParameters)
	}
	if math.IsNaN(cfg.TMax) || cfg.TMax <= 0 {
		return fmt.Errorf("%w: t_max must be positive, got %v", dynamo.ErrInvalidParameters, cfg.TMax)
	}
	if cfg.NumPoints < 2 {
		return fmt.Errorf("%w: num_points must be at least 2, got %d", dynamo.ErrInvalidParameters, cfg.NumPoints)
	}
	return nil
}

// InvariantDrift reports the max relative drift of the system's first
// integral over a trajectory, or 0 when the system carries none (or the
// invariant is undefined along the whole orbit, e.g. on the axes).
func InvariantDrift(dyn dynamo.System, traj *Trajectory) float64 {
	c, ok := dyn.(dynamo.Conserved)
	if !ok || traj.Len() == 0 {
		return 0
	}

	ref := math.NaN()
	drift := 0.0
	for i := 0; i < traj.Len(); i++ {
		v := c.Invariant(traj.State(i))
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(ref) {
			ref = v
			continue
		}
		if ref != 0 {
			drift = math.Max(drift, math.Abs(v-ref)/math.Abs(ref))
		}
	}
	return drift
}
