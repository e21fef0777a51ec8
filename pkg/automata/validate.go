/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: validate.go
Description: Completeness and well-typedness validation for register automata,
plus canonical state representatives. A representative pairs each location
with a shortest access word and the register valuation it induces; the
validator then enumerates every order-type pattern an input can induce at
that valuation and demands exactly one matching transition.
*/

package automata

// Representative is a canonical witness for one location: a shortest access
// word reaching it and the register valuation that run leaves behind.
type Representative struct {
	Location   int
	AccessWord Sequence
	Registers  Sequence
}

// successorValuations enumerates the outgoing transitions of a location as
// seen from a concrete register valuation: for each transition, the input
// value realizing its tau pattern relative to the valuation and the
// resulting registers.
func (a *Automaton) successorValuations(location int, registers Sequence) ([]Configuration, []float64, error) {
	var next []Configuration
	var inputs []float64
	for _, t := range a.Locations[location].Transitions {
		guardLen := len(t.Tau) - 1
		if guardLen < 0 {
			return nil, nil, NewError(ErrWellTyped, "location %d has a transition with empty tau", location)
		}
		stateType := t.Tau.Prefix(guardLen)
		if !a.Alphabet.SameType(registers, stateType) {
			return nil, nil, NewError(ErrWellTyped,
				"location %d: valuation %s does not match tau prefix %s", location, registers, stateType)
		}
		sigma, err := a.Alphabet.BijectiveMap(stateType, registers)
		if err != nil {
			return nil, nil, NewError(ErrWellTyped, "location %d: %v", location, err)
		}
		input := sigma(t.Tau[guardLen])
		next = append(next, Configuration{
			Location:  t.Target,
			Registers: registers.Append(input).RemoveIndices(t.Clear),
		})
		inputs = append(inputs, input)
	}
	return next, inputs, nil
}

// Representatives computes a shortest access word and canonical register
// valuation for every reachable location, by BFS over canonical
// configurations.
func (a *Automaton) Representatives() ([]Representative, error) {
	if a.Initial < 0 {
		return nil, NewError(ErrWellTyped, "initial location not set")
	}
	reps := make([]Representative, len(a.Locations))
	seen := make([]bool, len(a.Locations))

	queue := []Representative{{Location: a.Initial, AccessWord: Sequence{}, Registers: Sequence{}}}
	seen[a.Initial] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		reps[cur.Location] = cur

		next, inputs, err := a.successorValuations(cur.Location, cur.Registers)
		if err != nil {
			return nil, err
		}
		for i, cfg := range next {
			if seen[cfg.Location] {
				continue
			}
			seen[cfg.Location] = true
			queue = append(queue, Representative{
				Location:   cfg.Location,
				AccessWord: cur.AccessWord.Append(inputs[i]),
				Registers:  cfg.Registers,
			})
		}
	}

	out := make([]Representative, 0, len(a.Locations))
	for id, loc := range a.Locations {
		if loc == nil {
			continue
		}
		if !seen[id] {
			return nil, NewError(ErrWellTyped, "location %d is not reachable", id)
		}
		out = append(out, reps[id])
	}
	return out, nil
}

// Validate checks the complete-and-well-typed precondition required by the
// active-learning and characteristic-sample modes: for every location and
// every order-type pattern of (registers, input) consistent with the
// alphabet relation, exactly one outgoing transition matches. Violation is
// a fatal input error, not silently repaired.
func (a *Automaton) Validate() error {
	if !a.Alphabet.Valid() {
		return NewError(ErrParse, "invalid alphabet descriptor %q %q", a.Alphabet.Domain, a.Alphabet.Relation)
	}
	if a.Initial < 0 {
		return NewError(ErrWellTyped, "initial location not set")
	}
	for id, loc := range a.Locations {
		if loc == nil {
			return NewError(ErrParse, "location ids are not dense: id %d missing", id)
		}
		guardLen := -1
		for _, t := range loc.Transitions {
			if guardLen == -1 {
				guardLen = len(t.Tau)
			} else if len(t.Tau) != guardLen {
				return NewError(ErrWellTyped,
					"location %d mixes tau lengths %d and %d", id, guardLen, len(t.Tau))
			}
		}
	}

	reps, err := a.Representatives()
	if err != nil {
		return err
	}
	for _, rep := range reps {
		for _, input := range a.Alphabet.ExtensionValues(rep.Registers) {
			if _, err := a.MatchTransition(rep.Location, rep.Registers, input); err != nil {
				return NewError(ErrWellTyped,
					"location %d with valuation %s on input %g: %v",
					rep.Location, rep.Registers, input, err)
			}
		}
	}
	return nil
}
