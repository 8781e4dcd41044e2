// Package foodweb implements a temperature-driven five-compartment food web:
// littoral and pelagic resources, a consumer in each habitat, and one
// omnivorous predator feeding on all four.
//
// Temperature enters only through the predator's attack rates on the two
// consumers, each following its own [ThermalCurve]. All predator feeding
// shares one Type II denominator (see [Denominator]), so prey in one habitat
// dilute predation on the other.
//
// [Rates] is the solver-facing right-hand side. It is a pure function of
// state and parameters and never allocates.
package foodweb
