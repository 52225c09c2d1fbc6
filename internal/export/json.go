// Package export writes run results in machine-readable formats:
// indented JSON for downstream tooling and SVG phase portraits.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ecodyn/lotkasim/internal/analysis"
	"github.com/ecodyn/lotkasim/internal/config"
	"github.com/ecodyn/lotkasim/internal/experiment"
	"github.com/ecodyn/lotkasim/internal/physics"
)

type RunData struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Delta float64 `json:"delta"`

	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	TMax      float64 `json:"t_max"`
	NumPoints int     `json:"num_points"`

	Equilibria     physics.EquilibriumPair `json:"equilibria"`
	Summary        analysis.Summary        `json:"summary"`
	InvariantDrift float64                 `json:"invariant_drift"`

	Times         []float64 `json:"times"`
	Prey          []float64 `json:"prey"`
	Predator      []float64 `json:"predator"`
	PreyRates     []float64 `json:"prey_rates"`
	PredatorRates []float64 `json:"predator_rates"`
}

func buildRunData(cfg *config.Config, result *experiment.Result) RunData {
	traj := result.Trajectory
	return RunData{
		Alpha:          cfg.Alpha,
		Beta:           cfg.Beta,
		Gamma:          cfg.Gamma,
		Delta:          cfg.Delta,
		X0:             cfg.X0,
		Y0:             cfg.Y0,
		TMax:           cfg.TMax,
		NumPoints:      cfg.NumPoints,
		Equilibria:     result.Equilibria,
		Summary:        result.Summary,
		InvariantDrift: result.InvariantDrift,
		Times:          traj.Times,
		Prey:           traj.Prey,
		Predator:       traj.Predator,
		PreyRates:      traj.PreyRate,
		PredatorRates:  traj.PredatorRate,
	}
}

func JSON(w io.Writer, cfg *config.Config, result *experiment.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildRunData(cfg, result))
}

func JSONFile(path string, cfg *config.Config, result *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return JSON(file, cfg, result)
}
