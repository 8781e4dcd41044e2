package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"negative", State{-1.0, 0.5}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_HasNegative(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{State{0, 0, 0}, false},
		{State{0.5, 0.4, 0.6, 0.7, 0.1}, false},
		{State{0.5, -1e-12}, true},
	}

	for _, tt := range tests {
		if got := tt.state.HasNegative(); got != tt.want {
			t.Errorf("HasNegative(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}

	diff := State{4, 5, 6}.Sub(src)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}
}

func TestResult_Final(t *testing.T) {
	var nilResult *Result
	if nilResult.Final() != nil {
		t.Error("expected nil final state for nil result")
	}

	r := &Result{States: []State{{1}, {2}}}
	if got := r.Final(); got[0] != 2 {
		t.Errorf("expected final state 2, got %v", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.T1 <= cfg.T0 {
		t.Error("DefaultConfig has empty time span")
	}
	if cfg.AbsTol != 1e-8 || cfg.RelTol != 1e-8 {
		t.Errorf("expected tolerances 1e-8, got abs=%g rel=%g", cfg.AbsTol, cfg.RelTol)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrStepTooSmall}
	expected := "step 150 (t=1.5000): dynamo: adaptive timestep below minimum"
	if err.Error() != expected {
		t.Errorf("SimulationError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Error("expected SimulationError to unwrap to ErrStepTooSmall")
	}
}
