/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils_test.go
Description: Tests for the shared command helpers: alphabet resolution from
flag values.
*/

package commands

import (
	"testing"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAlphabet(t *testing.T) {
	for _, tc := range []struct {
		domain   string
		relation string
		want     automata.Alphabet
	}{
		{"real", "<", automata.Alphabet{Domain: automata.DomainReal, Relation: automata.RelationLess}},
		{"real", "=", automata.Alphabet{Domain: automata.DomainReal, Relation: automata.RelationEqual}},
		{"rational", "<", automata.Alphabet{Domain: automata.DomainRational, Relation: automata.RelationLess}},
		{"rational", "=", automata.Alphabet{Domain: automata.DomainRational, Relation: automata.RelationEqual}},
	} {
		got, err := resolveAlphabet(tc.domain, tc.relation)
		require.NoError(t, err, "%s %s", tc.domain, tc.relation)
		assert.Equal(t, tc.want, got)
	}
}

func TestResolveAlphabetRejectsUnknownDescriptors(t *testing.T) {
	_, err := resolveAlphabet("complex", "<")
	require.Error(t, err)
	assert.ErrorIs(t, err, automata.ErrParse)

	_, err = resolveAlphabet("real", "<=")
	require.Error(t, err)
	assert.ErrorIs(t, err, automata.ErrParse)
}
