/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: witness.go
Description: Distinguishing-word search between register automaton
configurations. Breadth-first search over the product of two automata with
symbolic letter extension, rejecting-sink pruning, and order-type
subsumption of visited configuration pairs; returns a shortest
distinguishing word, ties broken by smallest value order.
*/

package oracle

import (
	"fmt"
	"sort"

	"github.com/kleascm/ralt/pkg/automata"
)

// productState is one node of the product BFS: a configuration in each
// automaton plus the word read so far past the two start configurations.
type productState struct {
	loc1, loc2 int
	reg1, reg2 automata.Sequence
	word       automata.Sequence
}

// FindDifference decides whether some word w makes A accept u·w while B
// rejects v·w (or vice versa). Both automata must be complete and
// well-typed and share the alphabet relation. Returns (w, true) for the
// shortest such w, or (nil, false) when the two configurations are
// behaviorally equivalent.
func FindDifference(a *automata.Automaton, u automata.Sequence, b *automata.Automaton, v automata.Sequence) (automata.Sequence, bool, error) {
	if a.Alphabet != b.Alphabet {
		return nil, false, fmt.Errorf("alphabet mismatch: %v vs %v", a.Alphabet, b.Alphabet)
	}
	sinksA := sinkRejectingLocations(a)
	sinksB := sinkRejectingLocations(b)

	confsU, err := a.Run(u)
	if err != nil {
		return nil, false, err
	}
	confsV, err := b.Run(v)
	if err != nil {
		return nil, false, err
	}
	cu := confsU[len(confsU)-1]
	cv := confsV[len(confsV)-1]

	if a.Locations[cu.Location].Accepting != b.Locations[cv.Location].Accepting {
		return automata.Sequence{}, true, nil
	}

	visited := make(map[[2]int][]automata.Sequence)
	mark := func(s productState) {
		key := [2]int{s.loc1, s.loc2}
		visited[key] = append(visited[key], s.reg1.Concat(s.reg2))
	}
	subsumed := func(alphabet automata.Alphabet, s productState) bool {
		for _, joined := range visited[[2]int{s.loc1, s.loc2}] {
			if alphabet.SameType(joined, s.reg1.Concat(s.reg2)) {
				return true
			}
		}
		return false
	}

	start := productState{loc1: cu.Location, loc2: cv.Location, reg1: cu.Registers, reg2: cv.Registers, word: automata.Sequence{}}
	queue := []productState{start}
	mark(start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// One candidate per order-type pattern over both register sets;
		// ascending order keeps the shortest witness lexicographically
		// smallest.
		for _, input := range a.Alphabet.ExtensionValues(cur.reg1.Concat(cur.reg2)) {
			t1, err := a.MatchTransition(cur.loc1, cur.reg1, input)
			if err != nil {
				return nil, false, err
			}
			t2, err := b.MatchTransition(cur.loc2, cur.reg2, input)
			if err != nil {
				return nil, false, err
			}
			next := productState{
				loc1: t1.Target,
				loc2: t2.Target,
				reg1: cur.reg1.Append(input).RemoveIndices(t1.Clear),
				reg2: cur.reg2.Append(input).RemoveIndices(t2.Clear),
				word: cur.word.Append(input),
			}
			if a.Locations[t1.Target].Accepting != b.Locations[t2.Target].Accepting {
				return next.word, true, nil
			}
			if sinksA[t1.Target] && sinksB[t2.Target] {
				continue
			}
			if subsumed(a.Alphabet, next) {
				continue
			}
			mark(next)
			queue = append(queue, next)
		}
	}
	return nil, false, nil
}

// sinkRejectingLocations flags non-accepting locations whose transitions
// all self-loop: nothing read from there can ever be accepted.
func sinkRejectingLocations(a *automata.Automaton) map[int]bool {
	sinks := make(map[int]bool)
	for id, loc := range a.Locations {
		if loc == nil || loc.Accepting {
			continue
		}
		sink := true
		for _, t := range loc.Transitions {
			if t.Target != id {
				sink = false
				break
			}
		}
		if sink {
			sinks[id] = true
		}
	}
	return sinks
}

// sortedDistinct returns the distinct values of s ascending.
func sortedDistinct(s automata.Sequence) []float64 {
	seen := make(map[float64]struct{}, len(s))
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
