/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generator_test.go
Description: Tests for random automaton generation: outputs validate,
generation is deterministic per seed, and sizes are respected.
*/

package generator_test

import (
	"testing"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/format"
	"github.com/kleascm/ralt/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessAlphabet() automata.Alphabet {
	return automata.Alphabet{Domain: automata.DomainReal, Relation: automata.RelationLess}
}

func TestGenerateProducesValidAutomaton(t *testing.T) {
	g := generator.NewGenerator(lessAlphabet(), 42, nil)

	a, err := g.Generate(5)
	require.NoError(t, err)
	require.NoError(t, a.Validate())
	assert.Positive(t, a.NumLocations())
	assert.Positive(t, a.NumTransitions())
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	first, err := generator.NewGenerator(lessAlphabet(), 7, nil).Generate(4)
	require.NoError(t, err)
	second, err := generator.NewGenerator(lessAlphabet(), 7, nil).Generate(4)
	require.NoError(t, err)

	assert.Equal(t, format.Serialize(first), format.Serialize(second))
}

func TestGenerateUnderEquality(t *testing.T) {
	alphabet := automata.Alphabet{Domain: automata.DomainRational, Relation: automata.RelationEqual}
	g := generator.NewGenerator(alphabet, 3, nil)

	a, err := g.Generate(3)
	require.NoError(t, err)
	require.NoError(t, a.Validate())
}

func TestGeneratedAutomatonRuns(t *testing.T) {
	g := generator.NewGenerator(lessAlphabet(), 11, nil)

	a, err := g.Generate(4)
	require.NoError(t, err)

	// a complete automaton accepts or rejects every word without error
	for _, w := range []automata.Sequence{{}, {1}, {2, 1}, {1, 2, 3}, {5, 5, 1}} {
		_, err := a.Accepts(w)
		require.NoError(t, err, "word %s", w)
	}
}
