// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: right-hand side dX/dt = f(X, t), written into a caller buffer
//   - [Integrator], [AdaptiveIntegrator]: fixed and error-controlled steppers
//   - [Metric], [Observer]: per-sample hooks used by the simulator
//   - [Config], [Result], [Stats]: solver settings and trajectory output
//
// # Example
//
//	model := foodweb.NewModel(foodweb.DefaultParams())
//	s := sim.New(model, integrators.NewRK45())
//	result, err := s.Run(ctx, model.DefaultState(), dynamo.DefaultConfig())
//
// # Failure semantics
//
// Systems never report errors. Instability (NaN, collapsing step size,
// exhausted step budget) is detected by the simulator and returned as a
// [*SimulationError] wrapping one of the sentinel errors.
package dynamo
