/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces for the RALT learning toolkit. Defines the
oracle capability set (membership, equivalence, memorability) and the
learner contract used across packages to break import cycles and keep the
engines swappable.
*/

package interfaces

import (
	"github.com/kleascm/ralt/pkg/automata"
)

// Oracle is the capability set driving active learning. A target-backed
// teacher and an externally-driven oracle are both valid implementations;
// the learning engine never depends on which one it talks to.
//
// Contract: answers must be consistent across calls for identical inputs.
// An oracle that violates this makes the run abort with an
// OracleContractViolation; an equivalence oracle that wrongly answers
// "equivalent" produces a wrong but well-formed output (documented
// assumption, not guarded).
type Oracle interface {
	// MembershipQuery reports whether the target language contains word.
	MembershipQuery(word automata.Sequence) (bool, error)

	// EquivalenceQuery compares the hypothesis against the target. It
	// returns (nil, true) when equivalent, otherwise a counterexample of
	// minimal length (ties broken by smallest value order).
	EquivalenceQuery(hypothesis *automata.Automaton) (automata.Sequence, bool, error)

	// MemorabilityQuery returns the memorable subsequence of the prefix:
	// the previously seen values that still influence future behavior.
	MemorabilityQuery(prefix automata.Sequence) (automata.Sequence, error)
}

// StatsReporter is implemented by oracles that track query statistics.
// Engines use it to record refinement rounds next to the query counts.
type StatsReporter interface {
	Stats() *LearnStats
}

// Learner produces a register automaton, canonicalized before return.
type Learner interface {
	Learn() (*automata.Automaton, error)
}
