/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generator.go
Description: Seeded random generation of deterministic register automata.
Locations are labeled by register valuations; each transition guard is the
source label extended by one value, the clear set keeps a random
subsequence (last occurrences only), and the target is the location labeled
by what survives. Missing patterns are completed with register-dropping
transitions back to the initial location so the result is complete, then
canonicalized.
*/

package generator

import (
	"fmt"
	"math/rand"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/sirupsen/logrus"
)

// Generator produces random complete DRAs over a fixed alphabet.
type Generator struct {
	alphabet automata.Alphabet
	rng      *rand.Rand
	logger   *logrus.Logger

	// AcceptingProb is the probability a fresh location is accepting.
	AcceptingProb float64
}

// NewGenerator seeds a generator; equal seeds give equal automata.
func NewGenerator(alphabet automata.Alphabet, seed int64, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{
		alphabet:      alphabet,
		rng:           rand.New(rand.NewSource(seed)),
		logger:        logger,
		AcceptingProb: 0.3,
	}
}

// Generate builds a random automaton with at most numLocations locations
// before canonicalization.
func (g *Generator) Generate(numLocations int) (*automata.Automaton, error) {
	if numLocations < 1 {
		return nil, fmt.Errorf("need at least one location, got %d", numLocations)
	}
	a := automata.NewAutomaton(g.alphabet)
	labels := []automata.Sequence{{}}
	labelID := map[string]int{labels[0].String(): 0}
	if err := a.AddLocation(0, "ε", g.rng.Float64() < g.AcceptingProb); err != nil {
		return nil, err
	}
	if err := a.SetInitial(0); err != nil {
		return nil, err
	}

	added := make(map[string]bool)
	for attempts := 0; len(labels) < numLocations && attempts < numLocations*200; attempts++ {
		src := g.rng.Intn(len(labels))
		u := labels[src]
		extensions := g.alphabet.ExtensionValues(u)
		input := extensions[g.rng.Intn(len(extensions))]
		tau := u.Append(input)

		key := fmt.Sprintf("%d|%s", src, tau)
		if added[key] {
			continue
		}

		kept := g.randomKeptValues(tau)
		label := keepLastOccurrences(kept)
		target, ok := labelID[label.String()]
		if !ok {
			if len(labels) >= numLocations {
				continue
			}
			target = len(labels)
			if err := a.AddLocation(target, label.String(), g.rng.Float64() < g.AcceptingProb); err != nil {
				return nil, err
			}
			labels = append(labels, label)
			labelID[label.String()] = target
		}

		clear := clearSetFor(tau, label)
		if err := a.AddTransition(src, tau, clear, target); err != nil {
			return nil, err
		}
		added[key] = true
	}

	if err := g.complete(a, labels); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("generated automaton failed validation: %w", err)
	}
	g.logger.WithFields(logrus.Fields{
		"locations":   a.NumLocations(),
		"transitions": a.NumTransitions(),
	}).Debug("Generated random automaton")
	return automata.Canonicalize(a)
}

// complete adds, for every location and every extension pattern with no
// matching transition yet, a transition that drops all registers and
// returns to the initial location.
func (g *Generator) complete(a *automata.Automaton, labels []automata.Sequence) error {
	for id, u := range labels {
		for _, b := range g.alphabet.ExtensionValues(u) {
			if _, err := a.MatchTransition(id, u, b); err == nil {
				continue
			}
			tau := u.Append(b)
			clear := make([]int, len(tau))
			for i := range tau {
				clear[i] = i
			}
			if err := a.AddTransition(id, tau, clear, a.Initial); err != nil {
				return err
			}
		}
	}
	return nil
}

// randomKeptValues picks a uniformly random subset of tau's positions and
// returns the values at those positions in order.
func (g *Generator) randomKeptValues(tau automata.Sequence) automata.Sequence {
	count := g.rng.Intn(len(tau) + 1)
	picked := g.rng.Perm(len(tau))[:count]
	keep := make(map[int]bool, count)
	for _, i := range picked {
		keep[i] = true
	}
	out := automata.Sequence{}
	for i, v := range tau {
		if keep[i] {
			out = out.Append(v)
		}
	}
	return out
}

// keepLastOccurrences drops all but the last occurrence of each value,
// preserving the order of the survivors.
func keepLastOccurrences(s automata.Sequence) automata.Sequence {
	seen := make(map[float64]bool, len(s))
	out := automata.Sequence{}
	for i := len(s) - 1; i >= 0; i-- {
		if !seen[s[i]] {
			seen[s[i]] = true
			out = out.Prepend(s[i])
		}
	}
	return out
}

// clearSetFor returns the positions of tau not holding the last occurrence
// of a value kept in label.
func clearSetFor(tau, label automata.Sequence) []int {
	lastIdx := make(map[float64]int, len(label))
	for _, v := range label {
		for i, x := range tau {
			if x == v {
				lastIdx[v] = i
			}
		}
	}
	keep := make(map[int]bool, len(lastIdx))
	for _, i := range lastIdx {
		keep[i] = true
	}
	var clear []int
	for i := range tau {
		if !keep[i] {
			clear = append(clear, i)
		}
	}
	return clear
}
