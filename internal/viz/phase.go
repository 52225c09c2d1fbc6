package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/ecodyn/lotkasim/internal/experiment"
)

// PhasePortrait renders the prey/predator orbit on a braille canvas,
// marking the initial condition and the coexistence equilibrium when
// it is finite.
func PhasePortrait(result *experiment.Result, width, height int) string {
	traj := result.Trajectory
	if traj == nil || traj.Len() < 2 {
		return ""
	}

	minX, maxX := seriesBounds(traj.Prey)
	minY, maxY := seriesBounds(traj.Predator)

	co := result.Equilibria.Coexistence
	coFinite := !math.IsInf(co.Prey, 0) && !math.IsNaN(co.Prey) &&
		!math.IsInf(co.Predator, 0) && !math.IsNaN(co.Predator)
	if coFinite {
		minX, maxX = math.Min(minX, co.Prey), math.Max(maxX, co.Prey)
		minY, maxY = math.Min(minY, co.Predator), math.Max(maxY, co.Predator)
	}

	c := NewCanvas(width, height)
	padX := (maxX - minX) * 0.05
	padY := (maxY - minY) * 0.05
	c.SetWindow(minX-padX, maxX+padX, minY-padY, maxY+padY)

	for i := 1; i < traj.Len(); i++ {
		c.PlotLine(traj.Prey[i-1], traj.Predator[i-1], traj.Prey[i], traj.Predator[i])
	}

	c.Mark(traj.Prey[0], traj.Predator[0])
	if coFinite {
		c.Mark(co.Prey, co.Predator)
	}

	var sb strings.Builder
	sb.WriteString(c.String())
	sb.WriteString(fmt.Sprintf("prey %.2f..%.2f  predator %.2f..%.2f\n", minX, maxX, minY, maxY))
	sb.WriteString(fmt.Sprintf("start (%.2f, %.2f)", traj.Prey[0], traj.Predator[0]))
	if coFinite {
		sb.WriteString(fmt.Sprintf("  coexistence (%.2f, %.2f)", co.Prey, co.Predator))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func seriesBounds(vs []float64) (float64, float64) {
	min, max := vs[0], vs[0]
	for _, v := range vs {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
