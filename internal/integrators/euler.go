package integrators

import "github.com/ecodyn/lotkasim/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	k := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*k[i]
	}
	return result
}
