/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: charc.go
Description: Characteristic sample construction for passive learning. From
a complete target automaton it derives access words for every location,
their one-letter extensions, memorability witnesses, and pairwise
distinguishers, then classifies the union against the target into a
positive/negative sample sufficient for the passive learner to recover an
equivalent automaton. Distinguisher searches are independent of each other
and run on a bounded worker pool.
*/

package charsample

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/oracle"
	"github.com/kleascm/ralt/pkg/passive"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// Generator derives characteristic samples from a target automaton.
type Generator struct {
	target *automata.Automaton
	logger *logrus.Logger

	// Workers bounds the goroutines used for distinguisher searches.
	Workers int
}

// NewGenerator validates the target and prepares a generator.
func NewGenerator(target *automata.Automaton, logger *logrus.Logger) (*Generator, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("characteristic sample needs a complete target: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{
		target:  target,
		logger:  logger,
		Workers: runtime.NumCPU(),
	}, nil
}

// Generate computes the characteristic sample of the target.
func (g *Generator) Generate() (passive.Sample, error) {
	reps, err := g.target.Representatives()
	if err != nil {
		return passive.Sample{}, err
	}

	// St: one shortest access word per location
	st := make([]automata.Sequence, 0, len(reps))
	for _, r := range reps {
		st = append(st, r.AccessWord)
	}

	// Tr: every one-letter extension of every access word
	var tr []automata.Sequence
	for _, r := range reps {
		for _, b := range g.target.Alphabet.ExtensionValues(r.Registers) {
			tr = append(tr, r.AccessWord.Append(b))
		}
	}

	mem, err := g.memorabilityWitnesses(tr)
	if err != nil {
		return passive.Sample{}, err
	}
	dist, err := g.distinguishers(st, tr)
	if err != nil {
		return passive.Sample{}, err
	}

	words := mergeWords(st, tr, mem, dist)
	var pos, neg []automata.Sequence
	for _, w := range words {
		accepted, err := g.target.Accepts(w)
		if err != nil {
			return passive.Sample{}, err
		}
		if accepted {
			pos = append(pos, w)
		} else {
			neg = append(neg, w)
		}
	}
	g.logger.WithFields(logrus.Fields{
		"positives": len(pos),
		"negatives": len(neg),
	}).Info("Characteristic sample generated")
	return passive.NewSample(pos, neg), nil
}

// memorabilityWitnesses returns, for every memorable register value reached
// by a word of tr, the witness suffix under both the renamed and the
// original value, so the passive learner is forced to keep the value in a
// register. Register values the future never consults have no witness and
// are skipped, like distinguishers skips equivalent pairs.
func (g *Generator) memorabilityWitnesses(tr []automata.Sequence) ([]automata.Sequence, error) {
	var out []automata.Sequence
	for _, u := range tr {
		configs, err := g.target.Run(u)
		if err != nil {
			return nil, err
		}
		registers := configs[len(configs)-1].Registers
		memorable, err := oracle.MemorableSequence(g.target, u)
		if err != nil {
			return nil, err
		}
		for _, a := range registers {
			if memorable.Index(a) < 0 {
				continue
			}
			w, _, renamed, err := oracle.MemorableWitness(g.target, u, a)
			if err != nil {
				return nil, err
			}
			out = append(out, u.Concat(w))
			backMap, err := g.target.Alphabet.BijectiveMap(renamed, u)
			if err != nil {
				return nil, err
			}
			out = append(out, u.Concat(automata.ApplyMap(w, backMap)))
		}
	}
	return out, nil
}

// distinguishers finds, for every pair of words from St and Tr that land in
// different locations with equally many registers, a suffix separating
// them, and records the suffix appended to both words. Pairs whose
// locations turn out behaviorally equivalent are skipped.
func (g *Generator) distinguishers(st, tr []automata.Sequence) ([]automata.Sequence, error) {
	type job struct {
		u, v automata.Sequence
	}
	var jobs []job
	for _, u := range st {
		uConfigs, err := g.target.Run(u)
		if err != nil {
			return nil, err
		}
		uLast := uConfigs[len(uConfigs)-1]
		for _, v := range tr {
			vConfigs, err := g.target.Run(v)
			if err != nil {
				return nil, err
			}
			vLast := vConfigs[len(vConfigs)-1]
			if uLast.Location == vLast.Location {
				continue
			}
			if len(uLast.Registers) != len(vLast.Registers) {
				continue
			}
			jobs = append(jobs, job{u: u, v: v})
		}
	}

	type slot struct {
		words []automata.Sequence
		err   error
	}
	results := make([]slot, len(jobs))
	workers := g.Workers
	if workers < 1 {
		workers = 1
	}
	p := pool.New().WithMaxGoroutines(workers)
	for i, j := range jobs {
		i, j := i, j
		p.Go(func() {
			w, found, err := oracle.FindDifference(g.target, j.u, g.target, j.v)
			if err != nil {
				results[i].err = err
				return
			}
			if !found {
				return
			}
			results[i].words = []automata.Sequence{j.u.Concat(w), j.v.Concat(w)}
		})
	}
	p.Wait()

	var out []automata.Sequence
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, r.words...)
	}
	return out, nil
}

// mergeWords unions word lists, removing duplicates, in a deterministic
// length-lexicographic order.
func mergeWords(lists ...[]automata.Sequence) []automata.Sequence {
	seen := make(map[string]bool)
	var out []automata.Sequence
	for _, list := range lists {
		for _, w := range list {
			if key := w.String(); !seen[key] {
				seen[key] = true
				out = append(out, w)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
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
	return out
}
