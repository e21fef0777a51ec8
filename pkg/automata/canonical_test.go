/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: canonical_test.go
Description: Unit tests for the canonicalizer: merging of behaviorally
equal locations, stripping of register values the future never consults,
idempotence, and stability of the renumbering.
*/

package automata_test

import (
	"testing"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// duplicatedSinkTarget accepts words of length one or more, but spells the
// accepting behavior out twice: locations 1 and 2 alternate and are
// behaviorally identical.
func duplicatedSinkTarget(t *testing.T) *automata.Automaton {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.AddLocation(1, "odd", true))
	require.NoError(t, a.AddLocation(2, "even", true))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, []int{0}, 1))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1}, []int{0}, 2))
	require.NoError(t, a.AddTransition(2, automata.Sequence{1}, []int{0}, 1))
	return a
}

func TestCanonicalizeMergesEqualLocations(t *testing.T) {
	a := duplicatedSinkTarget(t)

	canonical, err := automata.Canonicalize(a)
	require.NoError(t, err)
	assert.Equal(t, 2, canonical.NumLocations())
	require.NoError(t, canonical.Validate())

	for _, tc := range []struct {
		word   automata.Sequence
		accept bool
	}{
		{automata.Sequence{}, false},
		{automata.Sequence{1}, true},
		{automata.Sequence{1, 9}, true},
		{automata.Sequence{1, 9, 4}, true},
	} {
		got, err := canonical.Accepts(tc.word)
		require.NoError(t, err)
		assert.Equal(t, tc.accept, got, "word %s", tc.word)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	a := nonDecreasingTarget(t)

	once, err := automata.Canonicalize(a)
	require.NoError(t, err)
	twice, err := automata.Canonicalize(once)
	require.NoError(t, err)

	assert.Equal(t, once.NumLocations(), twice.NumLocations())
	assert.Equal(t, once.NumTransitions(), twice.NumTransitions())
}

func TestCanonicalizeKeepsDistinctLocationsApart(t *testing.T) {
	a := nonDecreasingTarget(t)

	canonical, err := automata.Canonicalize(a)
	require.NoError(t, err)
	assert.Equal(t, 3, canonical.NumLocations())

	accepted, err := canonical.Accepts(automata.Sequence{3, 3, 5})
	require.NoError(t, err)
	assert.True(t, accepted)
	rejected, err := canonical.Accepts(automata.Sequence{5, 3})
	require.NoError(t, err)
	assert.False(t, rejected)
}

// deadValueTarget accepts every nonempty word, but location 1 stores the
// first input in a register that no later transition ever consults.
func deadValueTarget(t *testing.T) *automata.Automaton {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.AddLocation(1, "stored", true))
	require.NoError(t, a.AddLocation(2, "any", true))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, nil, 1))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1, 0}, []int{0, 1}, 2))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1, 1}, []int{0, 1}, 2))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1, 2}, []int{0, 1}, 2))
	require.NoError(t, a.AddTransition(2, automata.Sequence{1}, []int{0}, 2))
	return a
}

func TestCanonicalizeDropsDeadRegisterValues(t *testing.T) {
	canonical, err := automata.Canonicalize(deadValueTarget(t))
	require.NoError(t, err)
	require.NoError(t, canonical.Validate())

	// the stored value never influences acceptance, so location 1 merges
	// with the register-free accepting location
	assert.Equal(t, 2, canonical.NumLocations())
	assert.Equal(t, 2, canonical.NumTransitions())

	for _, tc := range []struct {
		word   automata.Sequence
		accept bool
	}{
		{automata.Sequence{}, false},
		{automata.Sequence{4}, true},
		{automata.Sequence{4, 7}, true},
		{automata.Sequence{4, 4, 1}, true},
	} {
		got, err := canonical.Accepts(tc.word)
		require.NoError(t, err)
		assert.Equal(t, tc.accept, got, "word %s", tc.word)
	}

	again, err := automata.Canonicalize(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical.NumLocations(), again.NumLocations())
	assert.Equal(t, canonical.NumTransitions(), again.NumTransitions())
}

func TestCanonicalizeRejectsInvalidInput(t *testing.T) {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.SetInitial(0))
	// no transitions at all: not complete

	_, err := automata.Canonicalize(a)
	assert.Error(t, err)
}
