package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ecodyn/lotkasim/internal/dynamo"
	"github.com/ecodyn/lotkasim/internal/physics"
)

func classicConfig() Config {
	return Config{TMax: 50.0, NumPoints: 1000, Solver: dynamo.DefaultConfig()}
}

func TestSimulate_GridShape(t *testing.T) {
	dyn := physics.NewClassic()
	cfg := Config{TMax: 12.5, NumPoints: 333}

	traj, err := Simulate(dyn, dynamo.State{10, 10}, cfg)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if traj.Len() != cfg.NumPoints {
		t.Fatalf("expected %d samples, got %d", cfg.NumPoints, traj.Len())
	}
	if traj.Times[0] != 0 {
		t.Errorf("grid must start at 0, got %v", traj.Times[0])
	}
	if traj.Times[traj.Len()-1] != cfg.TMax {
		t.Errorf("grid must end at t_max, got %v", traj.Times[traj.Len()-1])
	}
	for i := 1; i < traj.Len(); i++ {
		if traj.Times[i] <= traj.Times[i-1] {
			t.Fatalf("grid not strictly increasing at %d: %v <= %v", i, traj.Times[i], traj.Times[i-1])
		}
	}

	for _, series := range [][]float64{traj.Prey, traj.Predator, traj.PreyRate, traj.PredatorRate} {
		if len(series) != traj.Len() {
			t.Fatal("series lengths diverge")
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	dyn := physics.NewClassic()
	cfg := classicConfig()

	a, err := Simulate(dyn, dynamo.State{10, 10}, cfg)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	b, err := Simulate(dyn, dynamo.State{10, 10}, cfg)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different trajectories")
	}
}

func TestSimulate_ExtinctionIsAbsorbing(t *testing.T) {
	dyn := physics.NewClassic()
	traj, err := Simulate(dyn, dynamo.State{0, 0}, Config{TMax: 10, NumPoints: 100})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	for i := 0; i < traj.Len(); i++ {
		if traj.Prey[i] != 0 || traj.Predator[i] != 0 {
			t.Fatalf("populations left the absorbing state at sample %d: (%v, %v)", i, traj.Prey[i], traj.Predator[i])
		}
		if traj.PreyRate[i] != 0 || traj.PredatorRate[i] != 0 {
			t.Fatalf("rates nonzero at sample %d", i)
		}
	}
}

func TestSimulate_NoPredationGrowsExponentially(t *testing.T) {
	// beta = 0 removes the coupling into the prey equation, so prey must
	// follow x0·exp(alpha·t) regardless of y0.
	dyn := physics.NewLotkaVolterra(0.5, 0, 0.4, 0.1)
	cfg := Config{TMax: 4, NumPoints: 200}

	for _, y0 := range []float64{0, 3, 10} {
		traj, err := Simulate(dyn, dynamo.State{2, y0}, cfg)
		if err != nil {
			t.Fatalf("simulate failed: %v", err)
		}
		for i := 0; i < traj.Len(); i++ {
			want := 2.0 * math.Exp(0.5*traj.Times[i])
			if math.Abs(traj.Prey[i]-want)/want > 1e-6 {
				t.Fatalf("y0=%v sample %d: prey %v, want %v", y0, i, traj.Prey[i], want)
			}
		}
	}
}

func TestSimulate_RatesMatchRightHandSide(t *testing.T) {
	dyn := physics.NewClassic()
	traj, err := Simulate(dyn, dynamo.State{10, 10}, Config{TMax: 20, NumPoints: 500})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	for i := 0; i < traj.Len(); i++ {
		d := dyn.Derive(traj.State(i), traj.Times[i])
		if traj.PreyRate[i] != d[0] || traj.PredatorRate[i] != d[1] {
			t.Fatalf("rate at sample %d not re-evaluated from the RHS", i)
		}
	}
}

func TestSimulate_InvalidParameters(t *testing.T) {
	dyn := physics.NewClassic()

	tests := []struct {
		name string
		x0   dynamo.State
		cfg  Config
	}{
		{"one sample", dynamo.State{10, 10}, Config{TMax: 50, NumPoints: 1}},
		{"zero window", dynamo.State{10, 10}, Config{TMax: 0, NumPoints: 100}},
		{"negative window", dynamo.State{10, 10}, Config{TMax: -1, NumPoints: 100}},
		{"nan window", dynamo.State{10, 10}, Config{TMax: math.NaN(), NumPoints: 100}},
		{"nan initial state", dynamo.State{math.NaN(), 10}, Config{TMax: 50, NumPoints: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Simulate(dyn, tt.x0, tt.cfg); !errors.Is(err, dynamo.ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestSimulate_NonFiniteCoefficient(t *testing.T) {
	dyn := physics.NewLotkaVolterra(math.Inf(1), 0.4, 0.4, 0.1)
	_, err := Simulate(dyn, dynamo.State{10, 10}, classicConfig())
	if !errors.Is(err, dynamo.ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
}

func TestSimulate_DimensionMismatch(t *testing.T) {
	dyn := physics.NewClassic()
	_, err := Simulate(dyn, dynamo.State{10}, classicConfig())
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulate_StepBudget(t *testing.T) {
	dyn := physics.NewClassic()
	cfg := classicConfig()
	cfg.Solver.MaxSteps = 3

	_, err := Simulate(dyn, dynamo.State{10, 10}, cfg)
	if !errors.Is(err, dynamo.ErrStepBudget) {
		t.Fatalf("expected ErrStepBudget, got %v", err)
	}

	var ie *dynamo.IntegrationError
	if !errors.As(err, &ie) {
		t.Fatal("expected an IntegrationError wrapper")
	}
}

func TestSimulate_DegenerateDynamicsAreNotAnError(t *testing.T) {
	// gamma = delta = 0: predators frozen, prey grows exponentially.
	dyn := physics.NewLotkaVolterra(0.3, 0, 0, 0)
	traj, err := Simulate(dyn, dynamo.State{1, 4}, Config{TMax: 2, NumPoints: 50})
	if err != nil {
		t.Fatalf("degenerate parameters must simulate, got %v", err)
	}
	for i := 0; i < traj.Len(); i++ {
		if traj.Predator[i] != 4 {
			t.Fatalf("predator population moved under frozen dynamics: %v", traj.Predator[i])
		}
	}
}

func TestSimulate_InvariantDrift(t *testing.T) {
	dyn := physics.NewClassic()
	traj, err := Simulate(dyn, dynamo.State{10, 10}, classicConfig())
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if drift := InvariantDrift(dyn, traj); drift > 1e-4 {
		t.Errorf("invariant drift too high: %e", drift)
	}
}

func TestSweep(t *testing.T) {
	dyn := physics.NewClassic()
	cfg := Config{TMax: 10, NumPoints: 200}

	starts := []dynamo.State{{10, 2}, {10, 5}, {10, 8}}
	results, err := Sweep(dyn, starts, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(results) != len(starts) {
		t.Fatalf("expected %d trajectories, got %d", len(starts), len(results))
	}

	for i, start := range starts {
		single, err := Simulate(dyn, start, cfg)
		if err != nil {
			t.Fatalf("simulate failed: %v", err)
		}
		if !reflect.DeepEqual(results[i], single) {
			t.Errorf("sweep result %d differs from a standalone run", i)
		}
	}
}

func TestSweep_PropagatesErrors(t *testing.T) {
	dyn := physics.NewClassic()
	starts := []dynamo.State{{10, 2}, {math.NaN(), 5}}
	if _, err := Sweep(dyn, starts, Config{TMax: 10, NumPoints: 100}); !errors.Is(err, dynamo.ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
}
