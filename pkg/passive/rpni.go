/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rpni.go
Description: Passive learning of deterministic register automata from a
finite sample of positive and negative data words. Prefixes are processed
in length-lexicographic order; each new transition erases as many register
positions as possible and reuses an existing target location whenever the
result stays completable with respect to the sample. Undefined behavior of
the partial hypothesis stands for a rejecting sink throughout.
*/

package passive

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/sirupsen/logrus"
)

// Sample is a finite set of classified data words. Construction removes
// duplicates; order is not significant.
type Sample struct {
	Pos []automata.Sequence
	Neg []automata.Sequence
}

// NewSample builds a deduplicated sample.
func NewSample(pos, neg []automata.Sequence) Sample {
	return Sample{Pos: dedup(pos), Neg: dedup(neg)}
}

// Prefixes returns every non-empty prefix of every sample word, without
// duplicates, sorted length-lexicographically.
func (s Sample) Prefixes() []automata.Sequence {
	seen := make(map[string]bool)
	var out []automata.Sequence
	for _, w := range append(append([]automata.Sequence{}, s.Pos...), s.Neg...) {
		for n := 1; n <= len(w); n++ {
			p := w.Prefix(n)
			if key := p.String(); !seen[key] {
				seen[key] = true
				out = append(out, p)
			}
		}
	}
	sortLengthLex(out)
	return out
}

// Learner infers a partial DRA consistent with a sample.
type Learner struct {
	alphabet automata.Alphabet
	sample   Sample
	logger   *logrus.Logger

	regSize map[int]int
}

// NewLearner builds a passive learner. The sample must be internally
// consistent: a positive and a negative word of the same order type cannot
// both be honored by any automaton.
func NewLearner(alphabet automata.Alphabet, sample Sample, logger *logrus.Logger) (*Learner, error) {
	if logger == nil {
		logger = logrus.New()
	}
	for _, w := range sample.Pos {
		for _, z := range sample.Neg {
			if alphabet.SameType(w, z) {
				return nil, fmt.Errorf("sample is contradictory: positive %s and negative %s have the same order type", w, z)
			}
		}
	}
	return &Learner{
		alphabet: alphabet,
		sample:   sample,
		logger:   logger,
		regSize:  make(map[int]int),
	}, nil
}

// Learn folds the sample prefixes into a partial automaton and verifies
// consistency before returning it.
func (l *Learner) Learn() (*automata.Automaton, error) {
	a := automata.NewAutomaton(l.alphabet)
	if err := a.AddLocation(0, "ε", false); err != nil {
		return nil, err
	}
	if err := a.SetInitial(0); err != nil {
		return nil, err
	}
	l.regSize[0] = 0
	if l.sameTypeAsPositive(automata.Sequence{}) {
		if err := a.SetAccepting(0); err != nil {
			return nil, err
		}
	}

	toRead := l.sample.Prefixes()
	iteration := 0
	for len(toRead) > 0 {
		ua := toRead[0]
		toRead = toRead[1:]
		u := ua.Prefix(len(ua) - 1)
		input := ua[len(ua)-1]

		ok, _ := a.HasRun(u)
		if !ok {
			return nil, fmt.Errorf("prefix %s lost its run while processing %s", u, ua)
		}
		configs := a.RunPartial(u)
		last := configs[len(configs)-1]

		t, err := l.setTransition(a, last.Location, last.Registers, input)
		if err != nil {
			return nil, err
		}
		if t.Target == a.NumLocations() {
			if err := a.AddLocation(t.Target, ua.String(), false); err != nil {
				return nil, err
			}
			l.regSize[t.Target] = l.regSize[t.Source] + 1 - len(t.Clear)
		}
		if err := a.AddTransition(t.Source, t.Tau, t.Clear, t.Target); err != nil {
			return nil, err
		}
		l.logger.WithFields(logrus.Fields{
			"iteration":  iteration,
			"transition": t.String(),
		}).Debug("Added transition")

		if l.sameTypeAsPositive(ua) {
			if err := a.SetAccepting(t.Target); err != nil {
				return nil, err
			}
		}

		// drop prefixes that became readable; mark their targets accepting
		// when they match some positive word
		var remaining []automata.Sequence
		for _, w := range toRead {
			ok, final := a.HasRun(w)
			if !ok {
				remaining = append(remaining, w)
				continue
			}
			if l.sameTypeAsPositive(w) {
				if err := a.SetAccepting(final); err != nil {
					return nil, err
				}
			}
		}
		toRead = remaining
		iteration++
	}

	if err := l.checkConsistency(a); err != nil {
		return nil, err
	}
	l.logger.WithFields(logrus.Fields{
		"iterations": iteration,
		"locations":  a.NumLocations(),
	}).Info("Passive learning finished")
	return a, nil
}

// setTransition determines the transition out of (q, reg) on the input:
// erase the maximal set of register positions, then reuse the lowest
// existing target that keeps the hypothesis completable, else point at a
// fresh location (id NumLocations, not yet added).
func (l *Learner) setTransition(a *automata.Automaton, q int, reg automata.Sequence, input float64) (automata.Transition, error) {
	tau := reg.Append(input)
	size := l.regSize[q]

	erase := make(map[int]bool)
	retain := make([]int, 0, size+1)
	dup := reg.Index(input)
	if dup >= 0 {
		erase[dup] = true
	}
	for i := 0; i <= size; i++ {
		if i != dup {
			retain = append(retain, i)
		}
	}

	// greedily grow the clear set from the highest index down
	for k := len(retain) - 1; k >= 0; k-- {
		h := retain[k]
		trial := a.Clone()
		fresh := trial.NumLocations()
		if err := trial.AddLocation(fresh, strconv.Itoa(fresh), false); err != nil {
			return automata.Transition{}, err
		}
		erase[h] = true
		if err := trial.AddTransition(q, tau, sortedIndices(erase), fresh); err != nil {
			return automata.Transition{}, err
		}
		if !l.completable(trial) {
			delete(erase, h)
		}
	}
	clear := sortedIndices(erase)

	newSize := size + 1 - len(clear)
	for p := 0; p < a.NumLocations(); p++ {
		if l.regSize[p] != newSize {
			continue
		}
		trial := a.Clone()
		if err := trial.AddTransition(q, tau, clear, p); err != nil {
			return automata.Transition{}, err
		}
		if l.completable(trial) {
			return automata.Transition{Source: q, Tau: tau, Clear: clear, Target: p}, nil
		}
	}
	return automata.Transition{Source: q, Tau: tau, Clear: clear, Target: a.NumLocations()}, nil
}

// completable conservatively checks that the hypothesis can still be
// completed into an automaton consistent with the sample: no negative word
// may be accepted, and no positive/negative pair may be forced through a
// shared configuration whose remaining obligations have the same order
// type.
func (l *Learner) completable(a *automata.Automaton) bool {
	for _, z := range l.sample.Neg {
		if a.AcceptsPartial(z) {
			return false
		}
	}
	for _, w := range l.sample.Pos {
		for _, z := range l.sample.Neg {
			if !l.compatiblePair(a, w, z) {
				return false
			}
		}
	}
	return true
}

// compatiblePair walks the positive word w and the negative word z through
// the partial automaton and reports false when they meet at a location
// where their joined register-plus-suffix obligations collide.
func (l *Learner) compatiblePair(a *automata.Automaton, w, z automata.Sequence) bool {
	wCfg := a.InitialConfiguration()
	wSuffix := w
	for {
		zCfg := a.InitialConfiguration()
		for j := -1; j < len(z); j++ {
			if j >= 0 {
				next, _, err := a.Step(zCfg, z[j])
				if err != nil {
					break
				}
				zCfg = next
			} else if len(wSuffix) == len(w) {
				continue
			}
			zSuffix := z.Suffix(j + 1)
			if wCfg.Location != zCfg.Location {
				continue
			}
			if !l.alphabet.SameType(wCfg.Registers, zCfg.Registers) {
				return false
			}
			if l.alphabet.SameType(wCfg.Registers.Concat(wSuffix), zCfg.Registers.Concat(zSuffix)) {
				return false
			}
		}
		if len(wSuffix) == 0 {
			return true
		}
		next, _, err := a.Step(wCfg, wSuffix[0])
		if err != nil {
			return true
		}
		wCfg = next
		wSuffix = wSuffix.Suffix(1)
	}
}

// checkConsistency verifies the learned automaton classifies every sample
// word correctly under rejecting-sink semantics.
func (l *Learner) checkConsistency(a *automata.Automaton) error {
	for _, w := range l.sample.Pos {
		if !a.AcceptsPartial(w) {
			return fmt.Errorf("learned automaton rejects positive word %s", w)
		}
	}
	for _, z := range l.sample.Neg {
		if a.AcceptsPartial(z) {
			return fmt.Errorf("learned automaton accepts negative word %s", z)
		}
	}
	return nil
}

// sameTypeAsPositive reports whether w has the order type of some positive
// sample word, which is exactly when the target language must accept it.
func (l *Learner) sameTypeAsPositive(w automata.Sequence) bool {
	for _, p := range l.sample.Pos {
		if l.alphabet.SameType(w, p) {
			return true
		}
	}
	return false
}

func sortedIndices(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func dedup(words []automata.Sequence) []automata.Sequence {
	seen := make(map[string]bool, len(words))
	out := make([]automata.Sequence, 0, len(words))
	for _, w := range words {
		if key := w.String(); !seen[key] {
			seen[key] = true
			out = append(out, w)
		}
	}
	return out
}

// sortLengthLex orders words by length first, then elementwise by value.
func sortLengthLex(words []automata.Sequence) {
	sort.Slice(words, func(i, j int) bool {
		a, b := words[i], words[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}
