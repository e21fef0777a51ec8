/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats.go
Description: Query statistics for a learning run. Tracks membership,
equivalence, and memorability query counts, cache hits, and refinement
rounds with atomic counters so oracles and engines can update them without
coordination.
*/

package interfaces

import (
	"sync/atomic"
	"time"
)

// LearnStats tracks the query counts and timing of one learning run.
// Uses atomic operations for thread-safe updates.
type LearnStats struct {
	MembershipQueries   int64     `json:"membership_queries"`
	EquivalenceQueries  int64     `json:"equivalence_queries"`
	MemorabilityQueries int64     `json:"memorability_queries"`
	CacheHits           int64     `json:"cache_hits"`
	Rounds              int64     `json:"rounds"`
	StartTime           time.Time `json:"start_time"`
	Duration            float64   `json:"duration_seconds"`
}

// NewLearnStats creates a stats record with the clock started.
func NewLearnStats() *LearnStats {
	return &LearnStats{StartTime: time.Now()}
}

// IncrementMQ atomically increments the membership query counter.
func (s *LearnStats) IncrementMQ() {
	atomic.AddInt64(&s.MembershipQueries, 1)
}

// IncrementEQ atomically increments the equivalence query counter.
func (s *LearnStats) IncrementEQ() {
	atomic.AddInt64(&s.EquivalenceQueries, 1)
}

// IncrementMM atomically increments the memorability query counter.
func (s *LearnStats) IncrementMM() {
	atomic.AddInt64(&s.MemorabilityQueries, 1)
}

// IncrementCacheHits atomically increments the cache hit counter.
func (s *LearnStats) IncrementCacheHits() {
	atomic.AddInt64(&s.CacheHits, 1)
}

// IncrementRounds atomically increments the refinement round counter.
func (s *LearnStats) IncrementRounds() {
	atomic.AddInt64(&s.Rounds, 1)
}

// Finish freezes the run duration.
func (s *LearnStats) Finish() {
	s.Duration = time.Since(s.StartTime).Seconds()
}

// Snapshot returns a copy safe for serialization while counters move.
func (s *LearnStats) Snapshot() LearnStats {
	return LearnStats{
		MembershipQueries:   atomic.LoadInt64(&s.MembershipQueries),
		EquivalenceQueries:  atomic.LoadInt64(&s.EquivalenceQueries),
		MemorabilityQueries: atomic.LoadInt64(&s.MemorabilityQueries),
		CacheHits:           atomic.LoadInt64(&s.CacheHits),
		Rounds:              atomic.LoadInt64(&s.Rounds),
		StartTime:           s.StartTime,
		Duration:            s.Duration,
	}
}
