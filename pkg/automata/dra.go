/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dra.go
Description: Deterministic Register Automaton representation and the symbolic
transition/matching engine. Locations live in an arena indexed by integer id
with transitions stored per source location; matching compares order-type
signatures, never concrete values.
*/

package automata

import (
	"fmt"
	"sort"
)

// Transition is (source, tau, E, target). Tau is an order-type signature
// written in concrete-value shorthand: its first len(tau)-1 positions stand
// for the source location's registers and the last position for the input.
// Clear holds the 0-based positions of tau removed after the step.
type Transition struct {
	Source int
	Target int
	Tau    Sequence
	Clear  []int
}

// Equal reports structural equality between two transitions.
func (t Transition) Equal(o Transition) bool {
	if t.Source != o.Source || t.Target != o.Target || !t.Tau.Equal(o.Tau) {
		return false
	}
	if len(t.Clear) != len(o.Clear) {
		return false
	}
	for i := range t.Clear {
		if t.Clear[i] != o.Clear[i] {
			return false
		}
	}
	return true
}

// String renders the transition in the text-format shorthand.
func (t Transition) String() string {
	return fmt.Sprintf("%d -> %d : tau=%s, E=%s", t.Source, t.Target, t.Tau, formatClearSet(t.Clear))
}

// Location is a control state: integer id, accepting flag, and the outgoing
// transitions. Name is a human-readable annotation only; it carries no
// semantic weight and must not influence any algorithm.
type Location struct {
	ID          int
	Name        string
	Accepting   bool
	Transitions []Transition
}

// Configuration is the runtime state while processing a word: the current
// location and the current register valuation.
type Configuration struct {
	Location  int
	Registers Sequence
}

// Automaton is a register automaton over a dense ordered alphabet.
// Locations form an arena indexed by id; all references are index lookups
// validated at construction time.
type Automaton struct {
	Alphabet  Alphabet
	Locations []*Location
	Initial   int
}

// NewAutomaton creates an empty automaton over the given alphabet.
func NewAutomaton(alphabet Alphabet) *Automaton {
	return &Automaton{Alphabet: alphabet, Initial: -1}
}

// AddLocation inserts a location with the given id. Ids may arrive in any
// order; the arena grows as needed and duplicate ids are rejected.
func (a *Automaton) AddLocation(id int, name string, accepting bool) error {
	if id < 0 {
		return NewError(ErrParse, "negative location id %d", id)
	}
	for id >= len(a.Locations) {
		a.Locations = append(a.Locations, nil)
	}
	if a.Locations[id] != nil {
		return NewError(ErrParse, "location %d already exists", id)
	}
	a.Locations[id] = &Location{ID: id, Name: name, Accepting: accepting}
	return nil
}

// AddTransition inserts (source, tau, E, target), skipping exact duplicates.
func (a *Automaton) AddTransition(source int, tau Sequence, clear []int, target int) error {
	if err := a.checkLocation(source); err != nil {
		return err
	}
	if err := a.checkLocation(target); err != nil {
		return err
	}
	clearCopy := append([]int(nil), clear...)
	sort.Ints(clearCopy)
	for _, i := range clearCopy {
		if i < 0 || i >= len(tau) {
			return NewError(ErrParse, "clear index %d outside tau of length %d", i, len(tau))
		}
	}
	t := Transition{Source: source, Target: target, Tau: tau.Clone(), Clear: clearCopy}
	loc := a.Locations[source]
	for _, existing := range loc.Transitions {
		if existing.Equal(t) {
			return nil
		}
	}
	loc.Transitions = append(loc.Transitions, t)
	return nil
}

// SetInitial marks the initial location.
func (a *Automaton) SetInitial(id int) error {
	if err := a.checkLocation(id); err != nil {
		return err
	}
	a.Initial = id
	return nil
}

// SetAccepting marks a location as accepting.
func (a *Automaton) SetAccepting(id int) error {
	if err := a.checkLocation(id); err != nil {
		return err
	}
	a.Locations[id].Accepting = true
	return nil
}

// NumLocations returns the number of locations in the arena.
func (a *Automaton) NumLocations() int {
	n := 0
	for _, loc := range a.Locations {
		if loc != nil {
			n++
		}
	}
	return n
}

// NumTransitions returns the total number of transitions.
func (a *Automaton) NumTransitions() int {
	n := 0
	for _, loc := range a.Locations {
		if loc != nil {
			n += len(loc.Transitions)
		}
	}
	return n
}

// Clone returns a deep copy of the automaton.
func (a *Automaton) Clone() *Automaton {
	out := &Automaton{Alphabet: a.Alphabet, Initial: a.Initial}
	out.Locations = make([]*Location, len(a.Locations))
	for i, loc := range a.Locations {
		if loc == nil {
			continue
		}
		cp := &Location{ID: loc.ID, Name: loc.Name, Accepting: loc.Accepting}
		cp.Transitions = make([]Transition, len(loc.Transitions))
		for j, t := range loc.Transitions {
			cp.Transitions[j] = Transition{
				Source: t.Source,
				Target: t.Target,
				Tau:    t.Tau.Clone(),
				Clear:  append([]int(nil), t.Clear...),
			}
		}
		out.Locations[i] = cp
	}
	return out
}

// InitialConfiguration returns (initial location, empty registers).
func (a *Automaton) InitialConfiguration() Configuration {
	return Configuration{Location: a.Initial, Registers: Sequence{}}
}

// MatchTransition computes the order type of (registers, input) and returns
// the unique outgoing transition whose tau induces the same pattern. None or
// more than one match is a fatal well-typedness violation, never silently
// recovered: it breaks the completeness/determinism invariant assumed
// everywhere else.
func (a *Automaton) MatchTransition(location int, registers Sequence, input float64) (*Transition, error) {
	if err := a.checkLocation(location); err != nil {
		return nil, err
	}
	extended := registers.Append(input)
	pattern := a.Alphabet.OrderTypeOf(extended)

	var match *Transition
	for i := range a.Locations[location].Transitions {
		t := &a.Locations[location].Transitions[i]
		if len(t.Tau) != len(extended) {
			continue
		}
		if !a.Alphabet.OrderTypeOf(t.Tau).Equal(pattern) {
			continue
		}
		if match != nil {
			return nil, NewError(ErrNoMatchingTransition,
				"location %d has multiple transitions matching %s on input %g", location, registers, input)
		}
		match = t
	}
	if match == nil {
		return nil, NewError(ErrNoMatchingTransition,
			"location %d has no transition matching %s on input %g", location, registers, input)
	}
	return match, nil
}

// Step applies the matched transition to a configuration: the input value is
// admitted at the end of the valuation, the positions in E are cleared
// simultaneously, and the surviving values keep their relative order. Since
// the admitted input occupies the final position of tau, a retained input
// always lands in the lowest-indexed slot freed by the clear set.
func (a *Automaton) Step(cfg Configuration, input float64) (Configuration, *Transition, error) {
	t, err := a.MatchTransition(cfg.Location, cfg.Registers, input)
	if err != nil {
		return Configuration{}, nil, err
	}
	next := Configuration{
		Location:  t.Target,
		Registers: cfg.Registers.Append(input).RemoveIndices(t.Clear),
	}
	return next, t, nil
}

// Run folds Step over the word from the initial configuration and returns
// every configuration visited, the initial one included. A missing match is
// fatal; complete automata always have one.
func (a *Automaton) Run(word Sequence) ([]Configuration, error) {
	if a.Initial < 0 {
		return nil, NewError(ErrWellTyped, "initial location not set")
	}
	configs := []Configuration{a.InitialConfiguration()}
	current := configs[0]
	for _, v := range word {
		next, _, err := a.Step(current, v)
		if err != nil {
			return configs, err
		}
		configs = append(configs, next)
		current = next
	}
	return configs, nil
}

// Accepts reports whether the automaton accepts the word: the accepting
// flag of the location reached after the full run. This answers membership
// queries directly.
func (a *Automaton) Accepts(word Sequence) (bool, error) {
	configs, err := a.Run(word)
	if err != nil {
		return false, err
	}
	return a.Locations[configs[len(configs)-1].Location].Accepting, nil
}

// RunPartial folds Step over the word as far as a matching transition
// exists. Used on partial hypotheses during passive learning, where
// undefined behavior stands for a rejecting sink.
func (a *Automaton) RunPartial(word Sequence) []Configuration {
	configs := []Configuration{a.InitialConfiguration()}
	current := configs[0]
	for _, v := range word {
		next, _, err := a.Step(current, v)
		if err != nil {
			break
		}
		configs = append(configs, next)
		current = next
	}
	return configs
}

// HasRun reports whether the full word has a run, and the final location.
func (a *Automaton) HasRun(word Sequence) (bool, int) {
	configs := a.RunPartial(word)
	if len(configs) != len(word)+1 {
		return false, -1
	}
	return true, configs[len(configs)-1].Location
}

// AcceptsPartial reports acceptance under rejecting-sink semantics: a word
// without a full run is rejected.
func (a *Automaton) AcceptsPartial(word Sequence) bool {
	ok, final := a.HasRun(word)
	return ok && a.Locations[final].Accepting
}

func (a *Automaton) checkLocation(id int) error {
	if id < 0 || id >= len(a.Locations) || a.Locations[id] == nil {
		return NewError(ErrParse, "unknown location id %d", id)
	}
	return nil
}

// formatClearSet renders a clear set in the text-format shorthand {i1,i2}.
func formatClearSet(clear []int) string {
	s := "{"
	for i, idx := range clear {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", idx)
	}
	return s + "}"
}
