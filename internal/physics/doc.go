// Package physics provides the predator-prey dynamical model.
//
// [LotkaVolterra] implements the [dynamo.System] interface, defining the
// coupled nonlinear ODEs governing the two populations. It also
// implements [dynamo.Configurable] for runtime parameter adjustment and
// [dynamo.Conserved] for monitoring the orbit invariant.
//
// # Fixed Points
//
// The system's equilibria are algebraic, not numerical:
//
//	eq := physics.NewClassic().Equilibria()
//	// eq.Extinction  == (0, 0)
//	// eq.Coexistence == (gamma/delta, alpha/beta)
package physics
