/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cache.go
Description: Memoizing wrapper for externally-driven oracles. Caches
membership and memorability answers by query key with no eviction (memory
is bounded by query count, itself bounded by automaton size). In paranoid
mode every cache hit re-asks the underlying oracle and a differing answer
is reported as an oracle contract violation with the offending query.
*/

package oracle

import (
	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/interfaces"
)

// CachingOracle memoizes MQ and MM answers of any oracle implementation.
type CachingOracle struct {
	inner interfaces.Oracle

	// Paranoid re-queries the inner oracle on cache hits and verifies the
	// answers agree; the check trades speed for contract enforcement.
	Paranoid bool

	mq map[string]bool
	mm map[string]string
}

// NewCachingOracle wraps an oracle with unbounded memoization.
func NewCachingOracle(inner interfaces.Oracle) *CachingOracle {
	return &CachingOracle{
		inner: inner,
		mq:    make(map[string]bool),
		mm:    make(map[string]string),
	}
}

// Stats exposes the inner oracle's statistics when it tracks any.
func (c *CachingOracle) Stats() *interfaces.LearnStats {
	if sr, ok := c.inner.(interfaces.StatsReporter); ok {
		return sr.Stats()
	}
	return nil
}

// MembershipQuery answers from cache when possible.
func (c *CachingOracle) MembershipQuery(word automata.Sequence) (bool, error) {
	key := word.String()
	cached, ok := c.mq[key]
	if ok && !c.Paranoid {
		return cached, nil
	}
	answer, err := c.inner.MembershipQuery(word)
	if err != nil {
		return false, err
	}
	if ok && answer != cached {
		return false, automata.NewError(automata.ErrOracleContract,
			"membership answers for %s disagree: cached %t, fresh %t", key, cached, answer)
	}
	c.mq[key] = answer
	return answer, nil
}

// EquivalenceQuery is never cached: each hypothesis is a fresh snapshot.
func (c *CachingOracle) EquivalenceQuery(hypothesis *automata.Automaton) (automata.Sequence, bool, error) {
	return c.inner.EquivalenceQuery(hypothesis)
}

// MemorabilityQuery answers from cache when possible.
func (c *CachingOracle) MemorabilityQuery(prefix automata.Sequence) (automata.Sequence, error) {
	key := prefix.String()
	cached, ok := c.mm[key]
	if ok && !c.Paranoid {
		return parseCachedSequence(cached), nil
	}
	answer, err := c.inner.MemorabilityQuery(prefix)
	if err != nil {
		return nil, err
	}
	if ok && answer.String() != cached {
		return nil, automata.NewError(automata.ErrOracleContract,
			"memorability answers for %s disagree: cached %s, fresh %s", key, cached, answer)
	}
	c.mm[key] = answer.String()
	return answer, nil
}

// parseCachedSequence reverses Sequence.String for cache storage.
func parseCachedSequence(s string) automata.Sequence {
	seq, err := automata.ParseSequence(s)
	if err != nil {
		// Keys are produced by Sequence.String, so this cannot fail.
		return automata.Sequence{}
	}
	return seq
}
