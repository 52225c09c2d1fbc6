package integrators

import (
	"math"
	"testing"

	"github.com/ecodyn/lotkasim/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	initialEnergy := dyn.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	finalEnergy := dyn.Energy(x)
	drift := math.Abs(finalEnergy-initialEnergy) / initialEnergy

	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x, taken, suggest, err := integrator.StepAdaptive(dyn, x0, 0, 0.1, 1e-8)

	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}

	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}

	if taken <= 0 || taken > 0.1 {
		t.Errorf("StepAdaptive took invalid step: %f", taken)
	}

	if suggest <= 0 {
		t.Errorf("StepAdaptive suggested invalid dt: %f", suggest)
	}
}

func TestRK45_AdaptiveStep_ShrinksOnTightTolerance(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	_, taken, _, err := integrator.StepAdaptive(dyn, x0, 0, 1.0, 1e-12)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}

	if taken >= 1.0 {
		t.Errorf("expected rejected initial step, took %f", taken)
	}
}

func TestRK45_AdaptiveStep_Deterministic(t *testing.T) {
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{0.3, -0.7}

	a, takenA, suggestA, _ := NewRK45().StepAdaptive(dyn, x0, 0, 0.05, 1e-9)
	b, takenB, suggestB, _ := NewRK45().StepAdaptive(dyn, x0, 0, 0.05, 1e-9)

	if a[0] != b[0] || a[1] != b[1] || takenA != takenB || suggestA != suggestB {
		t.Error("identical adaptive steps diverged")
	}
}
