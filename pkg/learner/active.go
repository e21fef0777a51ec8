/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: active.go
Description: Active learning engine for deterministic register automata.
Drives an observation table through close / build / refine rounds against
membership, equivalence, and memorability oracles, and returns the
canonical form of the first hypothesis the equivalence oracle accepts.
*/

package learner

import (
	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// DefaultMaxRounds bounds the refinement loop. Termination is guaranteed
// for well-behaved oracles; the bound catches contract violations that
// would otherwise loop forever.
const DefaultMaxRounds = 100

// ActiveLearner learns a DRA through queries to an oracle.
type ActiveLearner struct {
	alphabet automata.Alphabet
	oracle   interfaces.Oracle
	table    *Table
	logger   *logrus.Logger

	// MaxRounds caps the number of equivalence-query rounds.
	MaxRounds int
}

// NewActiveLearner builds a learner over the alphabet and oracle.
func NewActiveLearner(alphabet automata.Alphabet, o interfaces.Oracle, logger *logrus.Logger) *ActiveLearner {
	if logger == nil {
		logger = logrus.New()
	}
	return &ActiveLearner{
		alphabet:  alphabet,
		oracle:    o,
		table:     NewTable(alphabet, o),
		logger:    logger,
		MaxRounds: DefaultMaxRounds,
	}
}

// Table exposes the observation table for inspection and debugging.
func (l *ActiveLearner) Table() *Table {
	return l.table
}

// Learn runs the close / build / refine loop until the equivalence oracle
// accepts a hypothesis, then returns its canonical form.
func (l *ActiveLearner) Learn() (*automata.Automaton, error) {
	if err := l.table.InsertColumn(automata.Sequence{}); err != nil {
		return nil, err
	}
	if _, err := l.table.InsertRow(automata.Sequence{}, automata.Sequence{}); err != nil {
		return nil, err
	}

	for round := 1; round <= l.MaxRounds; round++ {
		if sr, ok := l.oracle.(interfaces.StatsReporter); ok {
			if stats := sr.Stats(); stats != nil {
				stats.IncrementRounds()
			}
		}
		if err := l.close(); err != nil {
			return nil, err
		}
		hypothesis, rowOf, err := l.buildHypothesis()
		if err != nil {
			return nil, err
		}
		l.logger.WithFields(logrus.Fields{
			"round":     round,
			"locations": hypothesis.NumLocations(),
		}).Debug("Built hypothesis")

		counterexample, equivalent, err := l.oracle.EquivalenceQuery(hypothesis)
		if err != nil {
			return nil, err
		}
		if equivalent {
			l.logger.WithField("rounds", round).Info("Hypothesis accepted")
			return automata.Canonicalize(hypothesis)
		}
		l.logger.WithFields(logrus.Fields{
			"round":          round,
			"counterexample": counterexample.String(),
		}).Debug("Refining after counterexample")
		if err := l.refine(counterexample, hypothesis, rowOf); err != nil {
			return nil, err
		}
	}
	return nil, automata.NewError(automata.ErrOracleContract,
		"no hypothesis accepted within %d rounds", l.MaxRounds)
}

// close promotes extension candidates with no equivalent row until every
// one-letter extension of every row lands on some row.
func (l *ActiveLearner) close() error {
	for {
		inserted := false
		for i := 0; i < len(l.table.Rows()); i++ {
			for _, c := range l.table.Extended(i) {
				idx, err := l.table.EquivalentRowIndex(c)
				if err != nil {
					return err
				}
				if idx < 0 {
					if _, err := l.table.InsertRow(c.Prefix, c.Memorable); err != nil {
						return err
					}
					inserted = true
				}
			}
		}
		if !inserted {
			return nil
		}
	}
}

// buildHypothesis turns the closed table into a complete automaton: one
// location per reachable row, one transition per order-type pattern of
// each row's memorable content extended by one input. Rows a counterexample
// inserted that no transition reaches yet are left out; they stay in the
// table and join once something leads to them. The second result maps each
// hypothesis location back to its table row.
func (l *ActiveLearner) buildHypothesis() (*automata.Automaton, []int, error) {
	type edge struct {
		tau    automata.Sequence
		clear  []int
		target int
	}
	rows := l.table.Rows()
	edges := make([][]edge, len(rows))
	for i, row := range rows {
		for _, b := range l.alphabet.ExtensionValues(row.Memorable) {
			extended := row.Prefix.Append(b)
			memorable, err := l.oracle.MemorabilityQuery(extended)
			if err != nil {
				return nil, nil, err
			}
			target, err := l.table.EquivalentRowIndex(Candidate{Prefix: extended, Memorable: memorable})
			if err != nil {
				return nil, nil, err
			}
			if target < 0 {
				return nil, nil, automata.NewError(automata.ErrOracleContract,
					"extension %s escaped a closed table", extended)
			}
			tau := row.Memorable.Append(b)
			clear, err := clearSet(tau, memorable)
			if err != nil {
				return nil, nil, err
			}
			edges[i] = append(edges[i], edge{tau: tau, clear: clear, target: target})
		}
	}

	// keep only rows reachable from the initial row
	newID := map[int]int{0: 0}
	order := []int{0}
	for i := 0; i < len(order); i++ {
		for _, e := range edges[order[i]] {
			if _, ok := newID[e.target]; !ok {
				newID[e.target] = len(order)
				order = append(order, e.target)
			}
		}
	}

	hypothesis := automata.NewAutomaton(l.alphabet)
	for newIdx, oldIdx := range order {
		row := rows[oldIdx]
		if err := hypothesis.AddLocation(newIdx, row.Prefix.String(), row.Accepting); err != nil {
			return nil, nil, err
		}
	}
	if err := hypothesis.SetInitial(0); err != nil {
		return nil, nil, err
	}
	for _, oldIdx := range order {
		for _, e := range edges[oldIdx] {
			if err := hypothesis.AddTransition(newID[oldIdx], e.tau, e.clear, newID[e.target]); err != nil {
				return nil, nil, err
			}
		}
	}
	return hypothesis, order, nil
}

// refine localizes the disagreement the counterexample exposes. The word is
// walked through the hypothesis; at each cut point the remaining suffix is
// renamed into the frame of the row backing the current location and the
// membership oracle is re-asked. The answers at the two endpoints disagree
// for any genuine counterexample, so a first flip exists: there the renamed
// suffix becomes a column and the diverging one-letter extension becomes a
// row, splitting two rows the table wrongly identified. A counterexample
// with agreeing endpoints is an oracle contract violation.
func (l *ActiveLearner) refine(counterexample automata.Sequence, hypothesis *automata.Automaton, rowOf []int) error {
	configs, err := hypothesis.Run(counterexample)
	if err != nil {
		return err
	}
	rows := l.table.Rows()
	n := len(counterexample)
	beta := make([]bool, n+1)
	renamed := make([]automata.Sequence, n+1)
	for i := 0; i <= n; i++ {
		row := rows[rowOf[configs[i].Location]]
		mapper, err := l.alphabet.BijectiveMap(configs[i].Registers, row.Memorable)
		if err != nil {
			return err
		}
		renamed[i] = automata.ApplyMap(counterexample.Suffix(i), mapper)
		beta[i], err = l.oracle.MembershipQuery(row.Prefix.Concat(renamed[i]))
		if err != nil {
			return err
		}
	}
	if beta[0] == beta[n] {
		return automata.NewError(automata.ErrOracleContract,
			"counterexample %s does not distinguish the hypothesis", counterexample)
	}
	i := 0
	for beta[i] == beta[i+1] {
		i++
	}

	if err := l.table.InsertColumn(renamed[i+1]); err != nil {
		return err
	}
	srcRow := rows[rowOf[configs[i].Location]]
	mapper, err := l.alphabet.BijectiveMap(configs[i].Registers, srcRow.Memorable)
	if err != nil {
		return err
	}
	prefix := srcRow.Prefix.Append(mapper(counterexample[i]))
	memorable, err := l.oracle.MemorabilityQuery(prefix)
	if err != nil {
		return err
	}
	idx, err := l.table.EquivalentRowIndex(Candidate{Prefix: prefix, Memorable: memorable})
	if err != nil {
		return err
	}
	if idx < 0 {
		if _, err := l.table.InsertRow(prefix, memorable); err != nil {
			return err
		}
	}
	return nil
}

// clearSet returns the 0-based positions of tau that the transition drops:
// everything except the rightmost occurrences matching the kept sequence in
// order. The kept sequence is a subsequence of tau for conforming oracles;
// a value with no remaining occurrence is a contract violation.
func clearSet(tau, kept automata.Sequence) ([]int, error) {
	keep := make(map[int]bool, len(kept))
	bound := len(tau)
	for k := len(kept) - 1; k >= 0; k-- {
		found := -1
		for j := bound - 1; j >= 0; j-- {
			if tau[j] == kept[k] && !keep[j] {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, automata.NewError(automata.ErrOracleContract,
				"memorable value %g not present in guard %s", kept[k], tau)
		}
		keep[found] = true
		bound = found
	}
	clear := make([]int, 0, len(tau)-len(kept))
	for j := range tau {
		if !keep[j] {
			clear = append(clear, j)
		}
	}
	return clear, nil
}
