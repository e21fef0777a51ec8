/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format_test.go
Description: Round-trip tests for the text, sample, YAML, and DOT
serializers.
*/

package format_test

import (
	"strings"
	"testing"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/format"
	"github.com/kleascm/ralt/pkg/oracle"
	"github.com/kleascm/ralt/pkg/passive"
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

func TestTextRoundTrip(t *testing.T) {
	orig := nonDecreasingTarget(t)

	parsed, err := format.Parse(format.Serialize(orig))
	require.NoError(t, err)

	assert.Equal(t, orig.NumLocations(), parsed.NumLocations())
	assert.Equal(t, orig.NumTransitions(), parsed.NumTransitions())
	require.NoError(t, parsed.Validate())

	_, found, err := oracle.FindDifference(orig, automata.Sequence{}, parsed, automata.Sequence{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	text := format.Serialize(nonDecreasingTarget(t))
	annotated := "# generated automaton\n\n" + strings.ReplaceAll(text, "\n", "\n\n")

	parsed, err := format.Parse(annotated)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.NumLocations())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, text := range []string{
		"",
		"not an automaton",
		"alphabet: real, <\ninitial: 0\nlocations:\n0 \"ε\" accepting=Maybe\ntransitions:\n",
	} {
		_, err := format.Parse(text)
		require.Error(t, err)
		assert.ErrorIs(t, err, automata.ErrParse)
	}
}

func TestSampleRoundTrip(t *testing.T) {
	orig := passive.NewSample(
		[]automata.Sequence{{}, {3, 5}},
		[]automata.Sequence{{5, 3}},
	)

	parsed, err := format.ParseSample(format.SerializeSample(orig))
	require.NoError(t, err)

	assert.Len(t, parsed.Pos, 2)
	assert.Len(t, parsed.Neg, 1)
	assert.True(t, parsed.Neg[0].Equal(automata.Sequence{5, 3}))
}

func TestYAMLRoundTrip(t *testing.T) {
	orig := nonDecreasingTarget(t)

	data, err := format.SerializeYAML(orig)
	require.NoError(t, err)
	parsed, err := format.ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, orig.NumLocations(), parsed.NumLocations())
	assert.Equal(t, orig.NumTransitions(), parsed.NumTransitions())
	require.NoError(t, parsed.Validate())
}

func TestSerializeDot(t *testing.T) {
	dot := format.SerializeDot(nonDecreasingTarget(t))

	assert.Contains(t, dot, "digraph dra")
	assert.Contains(t, dot, "doublecircle")
	assert.Contains(t, dot, "->")
}
