package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ecodyn/lotkasim/internal/experiment"
)

const (
	svgBackground = "#0a0a0a"
	preyColor     = "#00ff00"
	predatorColor = "#ff5555"
	markerColor   = "#ffcc00"
)

// PhaseSVG renders the prey/predator orbit as an SVG path, marking the
// initial condition and any finite equilibrium points.
func PhaseSVG(result *experiment.Result, width, height int) string {
	traj := result.Trajectory
	if traj == nil || traj.Len() < 2 {
		return ""
	}

	minX, maxX := bounds(traj.Prey)
	minY, maxY := bounds(traj.Predator)

	// Keep the equilibria inside the frame when they are finite.
	for _, p := range []struct{ x, y float64 }{
		{result.Equilibria.Coexistence.Prey, result.Equilibria.Coexistence.Predator},
	} {
		if !math.IsInf(p.x, 0) && !math.IsNaN(p.x) {
			minX = math.Min(minX, p.x)
			maxX = math.Max(maxX, p.x)
		}
		if !math.IsInf(p.y, 0) && !math.IsNaN(p.y) {
			minY = math.Min(minY, p.y)
			maxY = math.Max(maxY, p.y)
		}
	}

	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)

	toX := func(v float64) float64 { return (v - minX) / (maxX - minX) * float64(width) }
	toY := func(v float64) float64 { return float64(height) - (v-minY)/(maxY-minY)*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, preyColor))

	for i := 0; i < traj.Len(); i++ {
		x := toX(traj.Prey[i])
		y := toY(traj.Predator[i])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	// Initial condition marker.
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, toX(traj.Prey[0]), toY(traj.Predator[0]), predatorColor))

	co := result.Equilibria.Coexistence
	if !math.IsInf(co.Prey, 0) && !math.IsNaN(co.Prey) && !math.IsInf(co.Predator, 0) && !math.IsNaN(co.Predator) {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="none" stroke="%s" stroke-width="2"/>
`, toX(co.Prey), toY(co.Predator), markerColor))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TimeSeriesSVG renders prey and predator populations against time as
// two polylines.
func TimeSeriesSVG(result *experiment.Result, width, height int) string {
	traj := result.Trajectory
	if traj == nil || traj.Len() < 2 {
		return ""
	}

	minT, maxT := bounds(traj.Times)
	minP, maxP := bounds(traj.Prey)
	minQ, maxQ := bounds(traj.Predator)
	minV := math.Min(minP, minQ)
	maxV := math.Max(maxP, maxQ)
	minV, maxV = pad(minV, maxV)

	toX := func(v float64) float64 { return (v - minT) / (maxT - minT) * float64(width) }
	toY := func(v float64) float64 { return float64(height) - (v-minV)/(maxV-minV)*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	for _, series := range []struct {
		values []float64
		color  string
	}{
		{traj.Prey, preyColor},
		{traj.Predator, predatorColor},
	} {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, series.color))
		for i := 0; i < traj.Len(); i++ {
			x := toX(traj.Times[i])
			y := toY(series.values[i])
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func SVGFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}

func bounds(vs []float64) (float64, float64) {
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

// pad widens a range by 10% on each side, guarding degenerate ranges.
func pad(min, max float64) (float64, float64) {
	r := max - min
	if r == 0 {
		r = 1
	}
	return min - r*0.1, max + r*0.1
}
