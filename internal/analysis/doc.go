// Package analysis characterises food-web trajectories.
//
//   - [NewPortrait]: projection onto two compartments, drawn as ASCII
//   - [Extrema]: long-run turning points of one compartment, the raw material
//     of a temperature bifurcation diagram ([BifurcationASCII])
//   - [LyapunovExponent]: largest exponent by trajectory separation
//
// A settled population gives a single extremum and a negative exponent;
// cycles give two or more extrema; a positive exponent indicates chaos:
//
//	lambda, err := analysis.LyapunovExponent(ctx, model, integrators.NewRK4(), x0, 0.01, 500, 1e-8)
//	if err == nil && lambda > 0 {
//	    // irregular dynamics at this temperature
//	}
package analysis
