// Package sim drives a [dynamo.Integrator] over a [dynamo.System] for a time
// span, with either fixed steps or error-controlled adaptive steps, and
// records the trajectory.
//
// Failures of the model (NaN states, step sizes collapsing below the minimum,
// an exhausted step budget) are reported here as [*dynamo.SimulationError].
// The partial trajectory is returned alongside the error.
package sim
