package physics

import (
	"fmt"
	"math"

	"github.com/ecodyn/lotkasim/internal/dynamo"
)

// LotkaVolterra implements the two-species predator-prey equations.
// State: [x, y] where x = prey density, y = predator density.
// Equations:
//
//	dx/dt = alpha·x − beta·x·y
//	dy/dt = delta·x·y − gamma·y
//
// Zero-valued coefficients are accepted; they collapse the model to an
// exponential special case rather than being rejected.
type LotkaVolterra struct {
	Alpha float64 // prey growth rate
	Beta  float64 // predation rate
	Gamma float64 // predator death rate
	Delta float64 // predator reproduction rate
}

func NewLotkaVolterra(alpha, beta, gamma, delta float64) *LotkaVolterra {
	return &LotkaVolterra{Alpha: alpha, Beta: beta, Gamma: gamma, Delta: delta}
}

// NewClassic returns the textbook parameterization used throughout the
// documentation examples.
func NewClassic() *LotkaVolterra {
	return &LotkaVolterra{Alpha: 1.1, Beta: 0.4, Gamma: 0.4, Delta: 0.1}
}

func (m *LotkaVolterra) StateDim() int { return 2 }

func (m *LotkaVolterra) Derive(x dynamo.State, _ float64) dynamo.State {
	prey, pred := x[0], x[1]
	return dynamo.State{
		m.Alpha*prey - m.Beta*prey*pred,
		m.Delta*prey*pred - m.Gamma*pred,
	}
}

func (m *LotkaVolterra) DefaultState() dynamo.State {
	return dynamo.State{10.0, 10.0}
}

// Validate rejects non-finite coefficients. Degenerate (zero) values are
// deliberately allowed.
func (m *LotkaVolterra) Validate() error {
	for name, v := range m.GetParams() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrInvalidParameters, name)
		}
	}
	return nil
}

// Point is a location in phase space.
type Point struct {
	Prey     float64
	Predator float64
}

// EquilibriumPair holds the two fixed points of the system. Both follow
// algebraically from setting dx/dt = dy/dt = 0; no numerical search is
// involved, so they are exact and independent of any trajectory.
type EquilibriumPair struct {
	Extinction  Point
	Coexistence Point
}

func (m *LotkaVolterra) Equilibria() EquilibriumPair {
	return EquilibriumPair{
		Extinction:  Point{0, 0},
		Coexistence: Point{Prey: m.Gamma / m.Delta, Predator: m.Alpha / m.Beta},
	}
}

// Invariant returns the conserved quantity
//
//	V(x, y) = delta·x − gamma·ln(x) + beta·y − alpha·ln(y)
//
// which is constant along exact orbits. Undefined on the axes; returns
// NaN there so callers can skip those samples.
func (m *LotkaVolterra) Invariant(x dynamo.State) float64 {
	prey, pred := x[0], x[1]
	if prey <= 0 || pred <= 0 {
		return math.NaN()
	}
	return m.Delta*prey - m.Gamma*math.Log(prey) + m.Beta*pred - m.Alpha*math.Log(pred)
}

// GetParams implements dynamo.Configurable
func (m *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha": m.Alpha,
		"beta":  m.Beta,
		"gamma": m.Gamma,
		"delta": m.Delta,
	}
}

// SetParam implements dynamo.Configurable
func (m *LotkaVolterra) SetParam(name string, value float64) error {
	switch name {
	case "alpha":
		m.Alpha = value
	case "beta":
		m.Beta = value
	case "gamma":
		m.Gamma = value
	case "delta":
		m.Delta = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
