package sim

import (
	"sync"

	"github.com/ecodyn/lotkasim/internal/dynamo"
)

// Sweep runs one simulation per initial state concurrently, all sharing
// the same system and sampling spec. The system is only read during a
// run, and every goroutine owns its trajectory, so no synchronization
// is needed beyond the final join. Results keep the order of starts.
// SpanStates builds sweep starting points: a fixed prey population with
// the predator population spaced evenly over [min, max]. A count of one
// yields the single point at min.
func SpanStates(prey, min, max float64, count int) []dynamo.State {
	if count < 1 {
		return nil
	}
	if count == 1 {
		return []dynamo.State{{prey, min}}
	}
	starts := make([]dynamo.State, count)
	step := (max - min) / float64(count-1)
	for i := range starts {
		starts[i] = dynamo.State{prey, min + float64(i)*step}
	}
	return starts
}

func Sweep(dyn dynamo.System, starts []dynamo.State, cfg Config) ([]*Trajectory, error) {
	results := make([]*Trajectory, len(starts))
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i := range starts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = Simulate(dyn, starts[idx], cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
