package experiment

import (
	"fmt"

	"github.com/ecodyn/lotkasim/internal/dynamo"
	"github.com/ecodyn/lotkasim/internal/integrators"
)

// Registry maps integrator names to constructors. The production path
// always solves adaptively (rk45); the fixed-step integrators exist for
// the compare command and for tests.
type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{integrators: make(map[string]func() dynamo.Integrator)}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}
