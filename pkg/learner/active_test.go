/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: active_test.go
Description: End-to-end tests for the active learner: both traced targets
are learned exactly, and the learner rejects broken oracles.
*/

package learner_test

import (
	"testing"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/generator"
	"github.com/kleascm/ralt/pkg/learner"
	"github.com/kleascm/ralt/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessAlphabet() automata.Alphabet {
	return automata.Alphabet{Domain: automata.DomainReal, Relation: automata.RelationLess}
}

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

func lengthAtLeastOneTarget(t *testing.T) *automata.Automaton {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.AddLocation(1, "done", true))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, []int{0}, 1))
	require.NoError(t, a.AddTransition(1, automata.Sequence{1}, []int{0}, 1))
	return a
}

func TestLearnLengthAtLeastOne(t *testing.T) {
	target := lengthAtLeastOneTarget(t)
	teacher, err := oracle.NewTeacher(target, nil)
	require.NoError(t, err)

	l := learner.NewActiveLearner(lessAlphabet(), teacher, nil)
	result, err := l.Learn()
	require.NoError(t, err)

	assert.Equal(t, 2, result.NumLocations())
	_, found, err := oracle.FindDifference(target, automata.Sequence{}, result, automata.Sequence{})
	require.NoError(t, err)
	assert.False(t, found)

	// the first hypothesis is already correct here
	stats := teacher.Stats().Snapshot()
	assert.Equal(t, int64(1), stats.EquivalenceQueries)
	assert.Positive(t, stats.MembershipQueries)
}

func TestLearnNonDecreasing(t *testing.T) {
	target := nonDecreasingTarget(t)
	teacher, err := oracle.NewTeacher(target, nil)
	require.NoError(t, err)

	l := learner.NewActiveLearner(lessAlphabet(), teacher, nil)
	result, err := l.Learn()
	require.NoError(t, err)

	assert.Equal(t, 3, result.NumLocations())
	require.NoError(t, result.Validate())
	_, found, err := oracle.FindDifference(target, automata.Sequence{}, result, automata.Sequence{})
	require.NoError(t, err)
	assert.False(t, found)

	for _, tc := range []struct {
		word   automata.Sequence
		accept bool
	}{
		{automata.Sequence{}, true},
		{automata.Sequence{3, 3, 5}, true},
		{automata.Sequence{1, 2, 9}, true},
		{automata.Sequence{5, 3}, false},
		{automata.Sequence{1, 5, 4}, false},
	} {
		got, err := result.Accepts(tc.word)
		require.NoError(t, err)
		assert.Equal(t, tc.accept, got, "word %s", tc.word)
	}

	stats := teacher.Stats().Snapshot()
	assert.Positive(t, stats.Rounds)
	assert.GreaterOrEqual(t, stats.EquivalenceQueries, stats.Rounds)
}

// firstAndLastEqualTarget accepts words of length two or more whose last
// value equals the first. The register holding the first value must survive
// every refinement, and counterexamples only help once their suffixes are
// renamed into the frame of the row they split.
func firstAndLastEqualTarget(t *testing.T) *automata.Automaton {
	a := automata.NewAutomaton(lessAlphabet())
	require.NoError(t, a.AddLocation(0, "ε", false))
	require.NoError(t, a.AddLocation(1, "wait", false))
	require.NoError(t, a.AddLocation(2, "match", true))
	require.NoError(t, a.SetInitial(0))
	require.NoError(t, a.AddTransition(0, automata.Sequence{1}, nil, 1))
	for _, src := range []int{1, 2} {
		require.NoError(t, a.AddTransition(src, automata.Sequence{1, 1}, []int{1}, 2))
		require.NoError(t, a.AddTransition(src, automata.Sequence{1, 0}, []int{1}, 1))
		require.NoError(t, a.AddTransition(src, automata.Sequence{1, 2}, []int{1}, 1))
	}
	return a
}

func TestLearnFirstAndLastEqual(t *testing.T) {
	target := firstAndLastEqualTarget(t)
	teacher, err := oracle.NewTeacher(target, nil)
	require.NoError(t, err)

	l := learner.NewActiveLearner(lessAlphabet(), teacher, nil)
	result, err := l.Learn()
	require.NoError(t, err)

	assert.Equal(t, 3, result.NumLocations())
	require.NoError(t, result.Validate())
	_, found, err := oracle.FindDifference(target, automata.Sequence{}, result, automata.Sequence{})
	require.NoError(t, err)
	assert.False(t, found)

	for _, tc := range []struct {
		word   automata.Sequence
		accept bool
	}{
		{automata.Sequence{}, false},
		{automata.Sequence{4}, false},
		{automata.Sequence{4, 4}, true},
		{automata.Sequence{4, 7, 4}, true},
		{automata.Sequence{4, 7, 2}, false},
		{automata.Sequence{4, 4, 7}, false},
	} {
		got, err := result.Accepts(tc.word)
		require.NoError(t, err)
		assert.Equal(t, tc.accept, got, "word %s", tc.word)
	}
}

func TestLearnSeededRandomTarget(t *testing.T) {
	gen := generator.NewGenerator(lessAlphabet(), 13, nil)
	target, err := gen.Generate(5)
	require.NoError(t, err)

	teacher, err := oracle.NewTeacher(target, nil)
	require.NoError(t, err)
	l := learner.NewActiveLearner(lessAlphabet(), teacher, nil)
	result, err := l.Learn()
	require.NoError(t, err)

	_, found, err := oracle.FindDifference(target, automata.Sequence{}, result, automata.Sequence{})
	require.NoError(t, err)
	assert.False(t, found)

	// the generated target is already canonical, so the learned automaton
	// matches it location for location
	assert.Equal(t, target.NumLocations(), result.NumLocations())
}

func TestLearnWithCachingOracle(t *testing.T) {
	target := nonDecreasingTarget(t)
	teacher, err := oracle.NewTeacher(target, nil)
	require.NoError(t, err)

	caching := oracle.NewCachingOracle(teacher)
	caching.Paranoid = true

	l := learner.NewActiveLearner(lessAlphabet(), caching, nil)
	result, err := l.Learn()
	require.NoError(t, err)
	assert.Equal(t, 3, result.NumLocations())
}

func TestLearnRejectsStubbornOracle(t *testing.T) {
	target := nonDecreasingTarget(t)
	teacher, err := oracle.NewTeacher(target, nil)
	require.NoError(t, err)

	l := learner.NewActiveLearner(lessAlphabet(), &stubbornOracle{inner: teacher}, nil)
	l.MaxRounds = 2
	_, err = l.Learn()
	require.Error(t, err)
	assert.ErrorIs(t, err, automata.ErrOracleContract)
}

// stubbornOracle answers membership and memorability honestly but repeats
// the same counterexample forever. Once the hypothesis answers the word
// correctly, the repeat no longer distinguishes anything and the learner
// must report the contract violation instead of looping.
type stubbornOracle struct {
	inner *oracle.Teacher
}

func (o *stubbornOracle) MembershipQuery(w automata.Sequence) (bool, error) {
	return o.inner.MembershipQuery(w)
}

func (o *stubbornOracle) MemorabilityQuery(w automata.Sequence) (automata.Sequence, error) {
	return o.inner.MemorabilityQuery(w)
}

func (o *stubbornOracle) EquivalenceQuery(*automata.Automaton) (automata.Sequence, bool, error) {
	return automata.Sequence{3, 3, 5}, false, nil
}
