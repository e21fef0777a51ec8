/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rpni_test.go
Description: Tests for the passive merge-based learner: consistency with
the sample, rejecting-sink semantics for unlabeled words, and rejection
of contradictory samples.
*/

package passive_test

import (
	"testing"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/passive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessAlphabet() automata.Alphabet {
	return automata.Alphabet{Domain: automata.DomainReal, Relation: automata.RelationLess}
}

func TestLearnSmallSample(t *testing.T) {
	sample := passive.NewSample(
		[]automata.Sequence{{1, 2}},
		[]automata.Sequence{{2, 1}},
	)
	l, err := passive.NewLearner(lessAlphabet(), sample, nil)
	require.NoError(t, err)

	result, err := l.Learn()
	require.NoError(t, err)

	assert.True(t, result.AcceptsPartial(automata.Sequence{1, 2}))
	assert.False(t, result.AcceptsPartial(automata.Sequence{2, 1}))
	// words of the same order type follow the same run
	assert.True(t, result.AcceptsPartial(automata.Sequence{5, 9}))
	assert.False(t, result.AcceptsPartial(automata.Sequence{9, 5}))
}

func TestLearnOrderingSample(t *testing.T) {
	sample := passive.NewSample(
		[]automata.Sequence{{}, {3}, {3, 5}, {3, 3}, {3, 5, 9}},
		[]automata.Sequence{{5, 3}, {3, 5, 4}, {5, 3, 9}},
	)
	l, err := passive.NewLearner(lessAlphabet(), sample, nil)
	require.NoError(t, err)

	result, err := l.Learn()
	require.NoError(t, err)

	for _, w := range sample.Pos {
		assert.True(t, result.AcceptsPartial(w), "positive %s", w)
	}
	for _, w := range sample.Neg {
		assert.False(t, result.AcceptsPartial(w), "negative %s", w)
	}
}

func TestNewLearnerRejectsContradictorySample(t *testing.T) {
	// [1,2] and [5,9] share an order type; labeling them differently
	// cannot be realized by any register automaton
	sample := passive.NewSample(
		[]automata.Sequence{{1, 2}},
		[]automata.Sequence{{5, 9}},
	)
	_, err := passive.NewLearner(lessAlphabet(), sample, nil)
	assert.Error(t, err)
}

func TestSamplePrefixesAreLengthLex(t *testing.T) {
	sample := passive.NewSample(
		[]automata.Sequence{{3, 5, 9}},
		[]automata.Sequence{{5, 3}},
	)
	prefixes := sample.Prefixes()

	require.NotEmpty(t, prefixes)
	for i := 1; i < len(prefixes); i++ {
		assert.LessOrEqual(t, len(prefixes[i-1]), len(prefixes[i]))
	}
	// the empty word is not a prefix entry; it seeds the initial location
	for _, p := range prefixes {
		assert.NotEmpty(t, p)
	}
}

func TestNewSampleDeduplicates(t *testing.T) {
	sample := passive.NewSample(
		[]automata.Sequence{{1, 2}, {1, 2}},
		nil,
	)
	assert.Len(t, sample.Pos, 1)
}
