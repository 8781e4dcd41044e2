package foodweb

import "github.com/san-kum/foodweb/internal/dynamo"

// Model adapts Rates to the dynamo.System contract. It owns a private copy of
// the parameters, so one Model can be shared by goroutines but never changes
// under a running integration.
type Model struct {
	params Params
}

func NewModel(p Params) *Model {
	return &Model{params: p}
}

func (m *Model) StateDim() int { return Dim }

func (m *Model) Derive(dst, x dynamo.State, t float64) {
	Rates(dst, x, &m.params, t)
}

// Params returns a copy of the model's parameters.
func (m *Model) Params() Params { return m.params }

// DefaultState is the documented starting densities
// [R_litt, R_pel, C_litt, C_pel, P].
func (m *Model) DefaultState() dynamo.State {
	return DefaultState()
}

func DefaultState() dynamo.State {
	return dynamo.State{0.5, 0.4, 0.6, 0.7, 0.1}
}
