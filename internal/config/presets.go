package config

var Presets = map[string]*Config{
	// Canonical demonstration run: large swings far from the
	// coexistence point (4, 2.75).
	"classic": {
		Alpha: 1.1, Beta: 0.4, Gamma: 0.4, Delta: 0.1,
		X0: 10, Y0: 10,
		TMax: 50, NumPoints: 1000,
		Integrator: "rk45",
	},
	// Started just off the coexistence point; near-sinusoidal cycles
	// with the small-oscillation period 2π/√(alpha·gamma).
	"near-equilibrium": {
		Alpha: 1.1, Beta: 0.4, Gamma: 0.4, Delta: 0.1,
		X0: 4.5, Y0: 2.8,
		TMax: 100, NumPoints: 2000,
		Integrator: "rk45",
	},
	// The textbook slow cycle: equilibrium at (30, 5).
	"textbook": {
		Alpha: 0.1, Beta: 0.02, Gamma: 0.3, Delta: 0.01,
		X0: 40, Y0: 9,
		TMax: 200, NumPoints: 1000,
		Integrator: "rk45",
	},
	// beta = 0 decouples the prey: exponential growth, no cycle.
	"no-predation": {
		Alpha: 0.5, Beta: 0, Gamma: 0.4, Delta: 0.1,
		X0: 2, Y0: 5,
		TMax: 10, NumPoints: 500,
		Integrator: "rk45",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
