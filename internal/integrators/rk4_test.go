package integrators

import (
	"math"
	"testing"

	"github.com/ecodyn/lotkasim/internal/dynamo"
)

type exponentialGrowth struct{ rate float64 }

func (e *exponentialGrowth) StateDim() int { return 1 }

func (e *exponentialGrowth) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{e.rate * x[0]}
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x0 := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4ExponentialGrowth(t *testing.T) {
	dyn := &exponentialGrowth{rate: 0.7}
	integ := NewRK4()

	x := dynamo.State{2.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expected := 2.0 * math.Exp(0.7*float64(steps)*dt)
	if math.Abs(x[0]-expected)/expected > 1e-8 {
		t.Errorf("growth error too large: got %.10f, expected %.10f", x[0], expected)
	}
}

func TestEulerConvergesToRK4(t *testing.T) {
	dyn := &exponentialGrowth{rate: -1.0}

	run := func(integ dynamo.Integrator, dt float64, steps int) float64 {
		x := dynamo.State{1.0}
		for i := 0; i < steps; i++ {
			x = integ.Step(dyn, x, float64(i)*dt, dt)
		}
		return x[0]
	}

	exact := math.Exp(-1.0)
	euler := run(NewEuler(), 1e-4, 10000)
	rk4 := run(NewRK4(), 1e-4, 10000)

	if math.Abs(rk4-exact) > math.Abs(euler-exact) {
		t.Error("expected RK4 at least as accurate as Euler")
	}
	if math.Abs(euler-exact) > 1e-3 {
		t.Errorf("euler error too large: %e", math.Abs(euler-exact))
	}
}
