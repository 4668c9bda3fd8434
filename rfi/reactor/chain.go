package reactor

import (
	"fmt"
	"math/rand"
)

// State identifies the two Gilbert-Elliott burst states.
type State int

const (
	// StateOff is the quiet state every chain starts in.
	StateOff State = iota
	// StateOn is the bursting state in which a reactor emits interference.
	StateOn
)

// String returns the state name.
func (s State) String() string {
	if s == StateOn {
		return "on"
	}

	return "off"
}

// TransitionMatrix is a 2x2 probability matrix. Only the diagonal is
// consulted when stepping: [0][0] is the probability of remaining Off and
// [1][1] the probability of remaining On, per tick.
type TransitionMatrix [2][2]float64

// NewTransitionMatrix builds the matrix from the flattened four-value list
// used by jspec files. The list is read in column-major order, so flat[0] is
// P(Off->Off) and flat[3] is P(On->On).
func NewTransitionMatrix(flat []float64) (TransitionMatrix, error) {
	if len(flat) != 4 {
		return TransitionMatrix{}, fmt.Errorf("reactor: ge_probs needs 4 values, got %d", len(flat))
	}

	var m TransitionMatrix
	for i := range 2 {
		for j := range 2 {
			m[i][j] = flat[j*2+i]
		}
	}

	return m, nil
}

// Chain is the two-state Markov chain driving a reactor's burst behavior.
// Chains start Off.
type Chain struct {
	state State
	probs TransitionMatrix
}

// NewChain creates a chain with the given transition matrix.
func NewChain(probs TransitionMatrix) *Chain {
	return &Chain{probs: probs}
}

// State returns the current burst state.
func (c *Chain) State() State {
	return c.state
}

// Step advances the chain one tick using a single uniform draw from rng and
// returns the resulting state. From Off the chain moves On when the draw
// exceeds the stay probability [0][0]; from On it moves Off when the draw
// exceeds [1][1].
func (c *Chain) Step(rng *rand.Rand) State {
	r := rng.Float64()

	switch c.state {
	case StateOff:
		if r > c.probs[0][0] {
			c.state = StateOn
		}
	case StateOn:
		if r > c.probs[1][1] {
			c.state = StateOff
		}
	}

	return c.state
}
