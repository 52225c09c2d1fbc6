package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous ODE system dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Conserved exposes a first integral of the motion, used to monitor
// integration quality on systems that have one.
type Conserved interface {
	Invariant(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator attempts a step of at most dt, shrinking it until
// the local error estimate meets tol. It returns the accepted state,
// the step actually taken, and a suggested size for the next step.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (next State, taken, suggest float64, err error)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Config holds solver settings. Zero values fall back to the defaults,
// which suit smooth non-stiff systems.
type Config struct {
	Tolerance float64
	InitialDt float64
	MinDt     float64
	MaxDt     float64
	MaxSteps  int
}

func DefaultConfig() Config {
	return Config{
		Tolerance: 1e-8,
		MinDt:     1e-12,
		MaxSteps:  1_000_000,
	}
}
