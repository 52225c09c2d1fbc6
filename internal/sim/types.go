package sim

import "github.com/ecodyn/lotkasim/internal/dynamo"

// Config is the sampling spec for one simulation run: the time window,
// the number of evenly spaced output points, and the solver settings.
type Config struct {
	TMax      float64
	NumPoints int
	Solver    dynamo.Config
}

func DefaultConfig() Config {
	return Config{
		TMax:      50.0,
		NumPoints: 1000,
		Solver:    dynamo.DefaultConfig(),
	}
}

// Trajectory holds one simulation run sampled on the output grid. All
// five series share the same length; index i is a single point-in-time
// snapshot. Produced once by Simulate and read-only thereafter.
type Trajectory struct {
	Times        []float64
	Prey         []float64
	Predator     []float64
	PreyRate     []float64
	PredatorRate []float64
}

func (tr *Trajectory) Len() int {
	return len(tr.Times)
}

// State returns the population snapshot at sample i.
func (tr *Trajectory) State(i int) dynamo.State {
	return dynamo.State{tr.Prey[i], tr.Predator[i]}
}

func newTrajectory(n int) *Trajectory {
	return &Trajectory{
		Times:        make([]float64, n),
		Prey:         make([]float64, n),
		Predator:     make([]float64, n),
		PreyRate:     make([]float64, n),
		PredatorRate: make([]float64, n),
	}
}
