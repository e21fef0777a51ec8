/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: canonical.go
Description: Canonicalizer/minimizer for register automata. Register values
that can no longer influence acceptance are identified by a product
reachability search and stripped from every location's canonical valuation;
iterative partition refinement then runs over the stripped valuations: start
from the coarsest partition (acceptance and stripped valuation order type),
refine by successor blocks per order-type pattern until a fixed point, then
merge blocks and renumber locations in first-seen order. Every learning mode
pipes its output through here so results are minimal and reproducible.
*/

package automata

import (
	"fmt"
	"sort"
	"strings"
)

// liveEdge is one outgoing behavior of a location as seen through its live
// register values: the order-type pattern of (live registers, input), a
// concrete input realizing it, the original target location, and the
// positions of the live guard dropped after the step.
type liveEdge struct {
	pattern OrderType
	input   float64
	target  int
	clear   []int
}

// Canonicalize returns the minimal automaton behaviorally equivalent to a,
// unique up to renaming of location ids. The input must be complete and
// well-typed; this is validated, not assumed.
func Canonicalize(a *Automaton) (*Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	reps, err := a.Representatives()
	if err != nil {
		return nil, err
	}
	repByLoc := make([]Representative, len(a.Locations))
	for _, rep := range reps {
		repByLoc[rep.Location] = rep
	}

	// Strip dead register values: a location whose valuation carries a
	// value the future never consults must merge with the location that
	// never stored it in the first place.
	masks := make([][]bool, len(a.Locations))
	live := make([]Sequence, len(a.Locations))
	for id := range a.Locations {
		mask, err := a.liveMask(id, repByLoc[id].Registers)
		if err != nil {
			return nil, err
		}
		masks[id] = mask
		live[id] = applyMask(repByLoc[id].Registers, mask)
	}
	edgesByLoc := make([][]liveEdge, len(a.Locations))
	for id := range a.Locations {
		edges, err := a.liveEdges(id, repByLoc[id].Registers, masks[id], masks)
		if err != nil {
			return nil, err
		}
		edgesByLoc[id] = edges
	}

	// Coarsest partition: acceptance flag plus the order type of the live
	// valuation. Locations whose live valuations have different shapes
	// never merge.
	block := make([]int, len(a.Locations))
	assign := func(keyOf func(id int) string) int {
		ids := make(map[string]int)
		for id := range a.Locations {
			key := keyOf(id)
			b, ok := ids[key]
			if !ok {
				b = len(ids)
				ids[key] = b
			}
			block[id] = b
		}
		return len(ids)
	}
	count := assign(func(id int) string {
		return fmt.Sprintf("%t|%s", a.Locations[id].Accepting, a.Alphabet.OrderTypeOf(live[id]))
	})

	// Refine: the signature of a location lists, per order-type pattern of
	// (live registers, input), the successor block and the live clear set.
	// Locations in one block have type-equal live valuations, so their
	// edges align pattern by pattern.
	for {
		prev := make([]int, len(block))
		copy(prev, block)
		next := assign(func(id int) string {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%d", prev[id])
			for _, e := range edgesByLoc[id] {
				fmt.Fprintf(&sb, "|%s>%d%s", e.pattern, prev[e.target], formatClearSet(e.clear))
			}
			return sb.String()
		})
		if next == count {
			break
		}
		count = next
	}

	// Renumber blocks in first-seen order by BFS from the initial block,
	// following edges in pattern order, so the output is deterministic.
	newID := make(map[int]int)
	blockRep := make(map[int]int)
	for id := range a.Locations {
		if _, ok := blockRep[block[id]]; !ok {
			blockRep[block[id]] = id
		}
	}
	order := []int{block[a.Initial]}
	newID[block[a.Initial]] = 0
	for i := 0; i < len(order); i++ {
		p := blockRep[order[i]]
		for _, e := range edgesByLoc[p] {
			tb := block[e.target]
			if _, ok := newID[tb]; !ok {
				newID[tb] = len(order)
				order = append(order, tb)
			}
		}
	}

	out := NewAutomaton(a.Alphabet)
	for i, b := range order {
		p := blockRep[b]
		name := repByLoc[p].AccessWord.String()
		if err := out.AddLocation(i, name, a.Locations[p].Accepting); err != nil {
			return nil, err
		}
	}
	if err := out.SetInitial(0); err != nil {
		return nil, err
	}
	for i, b := range order {
		p := blockRep[b]
		for _, e := range edgesByLoc[p] {
			tau := live[p].Append(e.input)
			if err := out.AddTransition(i, tau, e.clear, newID[block[e.target]]); err != nil {
				return nil, err
			}
		}
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("canonicalized automaton failed validation: %w", err)
	}
	return out, nil
}

// liveMask reports, per register position of the valuation at loc, whether
// the held value can still influence acceptance: renaming it to a fresh
// order-adjacent value and comparing the two configurations decides it.
// When a live value occupies several positions, the last one is kept.
func (a *Automaton) liveMask(loc int, regs Sequence) ([]bool, error) {
	mask := make([]bool, len(regs))
	distinct := distinctSorted(regs)
	live := make(map[float64]bool, len(distinct))
	for _, v := range distinct {
		perturbed := ApplyMap(regs, renameValue(v, freshNeighbor(distinct, v)))
		differ, err := a.configsDiffer(
			Configuration{Location: loc, Registers: regs},
			Configuration{Location: loc, Registers: perturbed})
		if err != nil {
			return nil, err
		}
		live[v] = differ
	}
	last := make(map[float64]int, len(distinct))
	for j, v := range regs {
		if live[v] {
			last[v] = j
		}
	}
	for _, j := range last {
		mask[j] = true
	}
	return mask, nil
}

// configsDiffer reports whether some common input word separates the
// acceptance of the two configurations: breadth-first search over the
// product of the automaton with itself, visited pairs subsumed by the
// order type of the joined valuations.
func (a *Automaton) configsDiffer(c1, c2 Configuration) (bool, error) {
	type pair struct {
		c1, c2 Configuration
	}
	key := func(p pair) string {
		return fmt.Sprintf("%d|%d|%s", p.c1.Location, p.c2.Location,
			a.Alphabet.OrderTypeOf(p.c1.Registers.Concat(p.c2.Registers)))
	}
	start := pair{c1: c1, c2: c2}
	seen := map[string]bool{key(start): true}
	queue := []pair{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if a.Locations[p.c1.Location].Accepting != a.Locations[p.c2.Location].Accepting {
			return true, nil
		}
		for _, input := range a.Alphabet.ExtensionValues(p.c1.Registers.Concat(p.c2.Registers)) {
			n1, _, err := a.Step(p.c1, input)
			if err != nil {
				return false, err
			}
			n2, _, err := a.Step(p.c2, input)
			if err != nil {
				return false, err
			}
			np := pair{c1: n1, c2: n2}
			if k := key(np); !seen[k] {
				seen[k] = true
				queue = append(queue, np)
			}
		}
	}
	return false, nil
}

// liveEdges enumerates the outgoing behaviors of a location as seen through
// its live register values: one edge per order-type pattern of (live
// registers, input), with the clear set re-expressed over the live guard
// using the live positions of the target location. Edges are sorted by
// pattern so same-block locations produce aligned signatures.
func (a *Automaton) liveEdges(id int, regs Sequence, mask []bool, masks [][]bool) ([]liveEdge, error) {
	liveRegs := applyMask(regs, mask)
	livePos := make([]int, len(regs)+1)
	k := 0
	for j := range regs {
		if mask[j] {
			livePos[j] = k
			k++
		} else {
			livePos[j] = -1
		}
	}
	livePos[len(regs)] = k

	seen := make(map[string]bool)
	var out []liveEdge
	for _, input := range a.Alphabet.ExtensionValues(regs) {
		pattern := a.Alphabet.OrderTypeOf(liveRegs.Append(input))
		if seen[pattern.String()] {
			continue
		}
		seen[pattern.String()] = true
		t, err := a.MatchTransition(id, regs, input)
		if err != nil {
			return nil, err
		}

		dropped := make(map[int]bool, len(t.Clear))
		for _, j := range t.Clear {
			dropped[j] = true
		}
		targetMask := masks[t.Target]
		kept := make([]bool, k+1)
		s := 0
		for j := 0; j <= len(regs); j++ {
			if dropped[j] {
				continue
			}
			if s < len(targetMask) && targetMask[s] && livePos[j] >= 0 {
				kept[livePos[j]] = true
			}
			s++
		}
		var clear []int
		for p := 0; p <= k; p++ {
			if !kept[p] {
				clear = append(clear, p)
			}
		}
		out = append(out, liveEdge{pattern: pattern, input: input, target: t.Target, clear: clear})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].pattern.String() < out[j].pattern.String()
	})
	return out, nil
}

// freshNeighbor picks a value order-adjacent to a among the distinct values:
// below the minimum, above the maximum, or at the midpoint to the next
// larger value, so the renaming changes only a's identity.
func freshNeighbor(distinct []float64, a float64) float64 {
	idx := -1
	for i, v := range distinct {
		if v == a {
			idx = i
			break
		}
	}
	switch {
	case idx <= 0:
		return a - 0.5
	case idx == len(distinct)-1:
		return a + 0.5
	default:
		return (a + distinct[idx+1]) / 2
	}
}

// renameValue maps a to b and leaves every other value untouched.
func renameValue(a, b float64) func(float64) float64 {
	return func(v float64) float64 {
		if v == a {
			return b
		}
		return v
	}
}

// applyMask keeps the values of s at the positions where mask is true.
func applyMask(s Sequence, mask []bool) Sequence {
	out := Sequence{}
	for j, v := range s {
		if mask[j] {
			out = out.Append(v)
		}
	}
	return out
}
