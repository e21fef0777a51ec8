/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: memorable.go
Description: Memorability computation against a target automaton. A value
seen in a prefix is memorable when nudging it to a fresh neighboring value
changes some future acceptance; the memorable subsequence is what the
registers must still hold. Two prefixes can hold numerically different but
behaviorally equivalent register content, which is exactly why equality of
values is not the test here.
*/

package oracle

import (
	"fmt"

	"github.com/kleascm/ralt/pkg/automata"
)

// nearValue picks a fresh value order-adjacent to a within the distinct
// values of the prefix: below the minimum, above the maximum, or at the
// midpoint to the next larger value. The result never collides with an
// existing value, so replacing a by it changes only a's identity, not the
// pattern among the remaining values.
func nearValue(distinct []float64, a float64) float64 {
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

// MemorableSequence computes the memorable subsequence of prefix u with
// respect to the target: for each distinct value, replace it by a fresh
// neighbor and ask whether any suffix now separates the two prefixes. When
// a memorable value occurs several times, its last occurrence is the one
// retained.
func MemorableSequence(target *automata.Automaton, u automata.Sequence) (automata.Sequence, error) {
	distinct := sortedDistinct(u)
	memorable := make(map[float64]bool)
	for _, a := range u {
		if _, done := memorable[a]; done {
			continue
		}
		b := nearValue(distinct, a)
		uprime := replaceValue(u, a, b)
		_, found, err := FindDifference(target, u, target, uprime)
		if err != nil {
			return nil, err
		}
		memorable[a] = found
	}

	lastIdx := make(map[float64]int)
	for i, a := range u {
		if memorable[a] {
			lastIdx[a] = i
		}
	}
	keep := make(map[int]bool, len(lastIdx))
	for _, i := range lastIdx {
		keep[i] = true
	}
	result := automata.Sequence{}
	for i, a := range u {
		if keep[i] {
			result = result.Append(a)
		}
	}
	return result, nil
}

// MemorableWitness returns, for a value a memorable in u, a suffix w whose
// acceptance flips when a is renamed to the fresh neighbor b, together with
// b and the renamed prefix. Errors when a is not memorable in u.
func MemorableWitness(target *automata.Automaton, u automata.Sequence, a float64) (w automata.Sequence, b float64, uprime automata.Sequence, err error) {
	b = nearValue(sortedDistinct(u), a)
	uprime = replaceValue(u, a, b)
	w, found, err := FindDifference(target, u, target, uprime)
	if err != nil {
		return nil, 0, nil, err
	}
	if !found {
		return nil, 0, nil, fmt.Errorf("value %g is not memorable in %s", a, u)
	}
	return w, b, uprime, nil
}

// replaceValue substitutes every occurrence of a in u by b.
func replaceValue(u automata.Sequence, a, b float64) automata.Sequence {
	return automata.ApplyMap(u, func(v float64) float64 {
		if v == a {
			return b
		}
		return v
	})
}
