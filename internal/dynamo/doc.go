// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X, t))
//   - [Integrator] / [AdaptiveIntegrator]: numerical stepper interfaces
//   - [Config]: solver tolerance and step bounds
//
// # Example
//
//	dyn := physics.NewLotkaVolterra(1.1, 0.4, 0.4, 0.1)
//	traj, err := sim.Simulate(dyn, dynamo.State{10, 10}, cfg)
//
// # Thread Safety
//
// States and systems are immutable once constructed; independent
// simulations may run concurrently without synchronization.
package dynamo
