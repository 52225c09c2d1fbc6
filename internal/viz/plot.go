package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/ecodyn/lotkasim/internal/analysis"
	"github.com/ecodyn/lotkasim/internal/sim"
)

// TimeSeries plots prey and predator populations on a shared axis.
func TimeSeries(traj *sim.Trajectory, width, height int) string {
	if traj == nil || traj.Len() < 2 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{traj.Prey, traj.Predator},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("prey", "predator"),
		asciigraph.Caption("population over time"),
	)
}

// RateSeries plots the rates of change of both populations.
func RateSeries(traj *sim.Trajectory, width, height int) string {
	if traj == nil || traj.Len() < 2 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{traj.PreyRate, traj.PredatorRate},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("prey rate", "predator rate"),
		asciigraph.Caption("rate of change over time"),
	)
}

// Spectrum plots the power spectrum of the prey series, the signal the
// dominant-frequency estimate is read from.
func Spectrum(traj *sim.Trajectory, width, height int) string {
	if traj == nil || traj.Len() < 4 {
		return ""
	}
	power := analysis.PowerSpectrum(traj.Prey)
	if len(power) < 2 {
		return ""
	}
	return asciigraph.Plot(
		power[1:], // skip DC
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("prey power spectrum (DC removed)"),
	)
}
