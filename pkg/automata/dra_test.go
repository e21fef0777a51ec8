/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dra_test.go
Description: Unit tests for automaton construction, transition matching,
word execution, and the complete-and-well-typed validation.
*/

package automata_test

import (
	"testing"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nonDecreasingTarget accepts exactly the non-decreasing sequences (the
// empty word included). Location 1 holds the last value read.
func nonDecreasingTarget(t *testing.T) *automata.Automaton {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", true))
	require.NoError(t, a.AddLocation(1, "[v]", true))
	require.NoError(t, a.AddLocation(2, "sink", false))
	require.NoError(t, a.SetInitial(0))

	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, nil, 1))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1, 2}, []int{0}, 1))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1, 1}, []int{0}, 1))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1, 0}, []int{0, 1}, 2))
	require.NoError(t, a.AddTransition(2, automata.Sequence{1}, []int{0}, 2))
	return a
}

// lengthAtLeastOneTarget accepts every word of length one or more.
func lengthAtLeastOneTarget(t *testing.T) *automata.Automaton {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.AddLocation(1, "done", true))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, []int{0}, 1))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1}, []int{0}, 1))
	return a
}

func TestAcceptsNonDecreasing(t *testing.T) {
	a := nonDecreasingTarget(t)
	require.NoError(t, a.Validate())

	for _, tc := range []struct {
		word   automata.Sequence
		accept bool
	}{
		{automata.Sequence{}, true},
		{automata.Sequence{7}, true},
		{automata.Sequence{3, 3, 5}, true},
		{automata.Sequence{1, 2, 2, 9}, true},
		{automata.Sequence{5, 3}, false},
		{automata.Sequence{1, 5, 4}, false},
		{automata.Sequence{5, 3, 9}, false},
	} {
		got, err := a.Accepts(tc.word)
		require.NoError(t, err)
		assert.Equal(t, tc.accept, got, "word %s", tc.word)
	}
}

func TestStepTracksLastValue(t *testing.T) {
	a := nonDecreasingTarget(t)

	cfg := a.InitialConfiguration()
	cfg, tr, err := a.Step(cfg, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Location)
	assert.Equal(t, automata.Sequence{3}, cfg.Registers)
	assert.Equal(t, 0, tr.Source)

	cfg, _, err = a.Step(cfg, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Location)
	assert.Equal(t, automata.Sequence{8}, cfg.Registers)

	cfg, _, err = a.Step(cfg, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Location)
	assert.Empty(t, cfg.Registers)
}

func TestMatchTransitionIsFatalWhenAmbiguous(t *testing.T) {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, []int{0}, 0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{2}, nil, 0))

	_, err := a.MatchTransition(0, automata.Sequence{}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, automata.ErrNoMatchingTransition)
}

func TestMatchTransitionIsFatalWhenMissing(t *testing.T) {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.SetInitial(0))

	_, err := a.MatchTransition(0, automata.Sequence{}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, automata.ErrNoMatchingTransition)
}

func TestValidateRejectsIncompleteAutomaton(t *testing.T) {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", true))
	require.NoError(t, a.AddLocation(1, "one", true))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, nil, 1))
	// location 1 holds one register but has no transitions at all

	err := a.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, automata.ErrWellTyped)
}

func TestValidateRejectsUnreachableLocation(t *testing.T) {
	a := lengthAtLeastOneTarget(t)
	require.NoError(t, a.AddLocation(2, "island", false))
	require.NoError(t, a.AddTransition(2, automata.Sequence{1}, []int{0}, 2))

	err := a.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, automata.ErrWellTyped)
}

func TestAcceptsPartialTreatsMissingRunsAsRejecting(t *testing.T) {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.AddLocation(1, "read", true))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, nil, 1))
	// location 1 is a dead end

	assert.True(t, a.AcceptsPartial(automata.Sequence{4}))
	assert.False(t, a.AcceptsPartial(automata.Sequence{4, 5}))
	assert.False(t, a.AcceptsPartial(automata.Sequence{}))
}

func TestCloneIsIndependent(t *testing.T) {
	a := nonDecreasingTarget(t)
	clone := a.Clone()
	require.NoError(t, clone.AddLocation(3, "extra", false))

	assert.Equal(t, 3, a.NumLocations())
	assert.Equal(t, 4, clone.NumLocations())
	assert.Equal(t, a.NumTransitions(), clone.NumTransitions())
}
