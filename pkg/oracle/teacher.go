/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: teacher.go
Description: Target-automaton-backed oracle. Answers membership queries by
running the target, equivalence queries by product-BFS difference search,
and memorability queries by neighbor-renaming analysis. Memoizes membership
and memorability answers (oracle calls are treated as expensive) and keeps
atomic query statistics.
*/

package oracle

import (
	"fmt"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// Teacher holds an immutable target DRA and answers MQ, EQ, and MM.
// The hypothesis handed to EquivalenceQuery is never mutated here.
type Teacher struct {
	target *automata.Automaton
	logger *logrus.Logger
	stats  *interfaces.LearnStats

	mqCache map[string]bool
	mmCache map[string]automata.Sequence
}

// NewTeacher validates the target (complete and well-typed is a
// precondition, not an assumption) and wraps it as an oracle.
func NewTeacher(target *automata.Automaton, logger *logrus.Logger) (*Teacher, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target automaton rejected: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Teacher{
		target:  target,
		logger:  logger,
		stats:   interfaces.NewLearnStats(),
		mqCache: make(map[string]bool),
		mmCache: make(map[string]automata.Sequence),
	}, nil
}

// Target returns the target automaton (read-only by convention).
func (t *Teacher) Target() *automata.Automaton {
	return t.target
}

// Stats returns the live query statistics of this teacher.
func (t *Teacher) Stats() *interfaces.LearnStats {
	return t.stats
}

// MembershipQuery reports whether the target accepts the word.
func (t *Teacher) MembershipQuery(word automata.Sequence) (bool, error) {
	key := word.String()
	if answer, ok := t.mqCache[key]; ok {
		t.stats.IncrementCacheHits()
		return answer, nil
	}
	t.stats.IncrementMQ()
	answer, err := t.target.Accepts(word)
	if err != nil {
		return false, err
	}
	t.mqCache[key] = answer
	return answer, nil
}

// EquivalenceQuery compares the hypothesis against the target and returns
// a shortest counterexample, or (nil, true) when none exists.
func (t *Teacher) EquivalenceQuery(hypothesis *automata.Automaton) (automata.Sequence, bool, error) {
	t.stats.IncrementEQ()
	diff, found, err := FindDifference(t.target, automata.Sequence{}, hypothesis, automata.Sequence{})
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, true, nil
	}
	t.logger.WithFields(logrus.Fields{
		"counterexample": diff.String(),
	}).Debug("Equivalence query found a discrepancy")
	return diff, false, nil
}

// MemorabilityQuery returns the memorable subsequence of the prefix.
func (t *Teacher) MemorabilityQuery(prefix automata.Sequence) (automata.Sequence, error) {
	key := prefix.String()
	if answer, ok := t.mmCache[key]; ok {
		t.stats.IncrementCacheHits()
		return answer, nil
	}
	t.stats.IncrementMM()
	answer, err := MemorableSequence(t.target, prefix)
	if err != nil {
		return nil, err
	}
	t.mmCache[key] = answer
	return answer, nil
}
