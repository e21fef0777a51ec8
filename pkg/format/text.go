/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: text.go
Description: Text codec for register automata. The format has four sections
in fixed order (alphabet, initial, locations, transitions); location
annotations are quoted strings with no semantic weight, transition guards
are concrete-value shorthand for order types. Lines starting with # are
comments. Parse and Serialize round-trip.
*/

package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/ralt/pkg/automata"
)

// Serialize renders the automaton in the text format.
func Serialize(a *automata.Automaton) string {
	var b strings.Builder
	b.WriteString("# Register Automaton\n")
	fmt.Fprintf(&b, "alphabet: %s, %s\n", a.Alphabet.Domain, a.Alphabet.Relation)
	fmt.Fprintf(&b, "initial: %d\n", a.Initial)
	b.WriteString("locations:\n")
	for _, loc := range a.Locations {
		if loc == nil {
			continue
		}
		fmt.Fprintf(&b, "  %d %q accepting=%s\n", loc.ID, loc.Name, pythonBool(loc.Accepting))
	}
	b.WriteString("transitions:\n")
	for _, loc := range a.Locations {
		if loc == nil {
			continue
		}
		for _, t := range loc.Transitions {
			fmt.Fprintf(&b, "  %d -> %d : tau=%s, E=%s\n",
				t.Source, t.Target, formatTau(t.Tau), formatClear(t.Clear))
		}
	}
	return b.String()
}

// Parse reads an automaton from the text format. The result is not
// validated for completeness; callers requiring a complete target run
// Validate separately.
func Parse(text string) (*automata.Automaton, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 3 {
		return nil, automata.NewError(automata.ErrParse, "truncated automaton text")
	}

	alphabet, err := parseAlphabetLine(lines[0])
	if err != nil {
		return nil, err
	}
	a := automata.NewAutomaton(alphabet)

	if !strings.HasPrefix(lines[1], "initial:") {
		return nil, automata.NewError(automata.ErrParse, "expected 'initial:' line, got %q", lines[1])
	}
	initial, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(lines[1], "initial:")))
	if err != nil {
		return nil, automata.NewError(automata.ErrParse, "bad initial location: %v", err)
	}

	if lines[2] != "locations:" {
		return nil, automata.NewError(automata.ErrParse, "expected 'locations:' section, got %q", lines[2])
	}
	i := 3
	for ; i < len(lines) && lines[i] != "transitions:"; i++ {
		if err := parseLocationLine(a, lines[i]); err != nil {
			return nil, err
		}
	}
	if err := a.SetInitial(initial); err != nil {
		return nil, automata.NewError(automata.ErrParse, "initial location: %v", err)
	}
	if i == len(lines) {
		return a, nil
	}
	for i++; i < len(lines); i++ {
		if err := parseTransitionLine(a, lines[i]); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func parseAlphabetLine(line string) (automata.Alphabet, error) {
	if !strings.HasPrefix(line, "alphabet:") {
		return automata.Alphabet{}, automata.NewError(automata.ErrParse, "expected 'alphabet:' line, got %q", line)
	}
	body := strings.TrimSpace(strings.TrimPrefix(line, "alphabet:"))
	parts := strings.Split(body, ",")
	if len(parts) != 2 {
		return automata.Alphabet{}, automata.NewError(automata.ErrParse, "malformed alphabet line %q", line)
	}
	alphabet := automata.Alphabet{
		Domain:   automata.Domain(strings.TrimSpace(parts[0])),
		Relation: automata.Relation(strings.TrimSpace(parts[1])),
	}
	if !alphabet.Valid() {
		return automata.Alphabet{}, automata.NewError(automata.ErrParse,
			"unknown alphabet %q; want domain real|rational and relation =|<", body)
	}
	return alphabet, nil
}

// parseLocationLine reads `<id> "<annotation>" accepting=<True|False>`.
// Unquoted single-token annotations are accepted for hand-written files.
func parseLocationLine(a *automata.Automaton, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return automata.NewError(automata.ErrParse, "malformed location line %q", line)
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return automata.NewError(automata.ErrParse, "bad location id in %q: %v", line, err)
	}
	last := fields[len(fields)-1]
	if !strings.HasPrefix(last, "accepting=") {
		return automata.NewError(automata.ErrParse, "location line %q missing accepting flag", line)
	}
	flag := strings.TrimPrefix(last, "accepting=")
	if flag != "True" && flag != "False" {
		return automata.NewError(automata.ErrParse, "bad accepting flag %q in %q", flag, line)
	}
	name := strings.Join(fields[1:len(fields)-1], " ")
	if unquoted, err := strconv.Unquote(name); err == nil {
		name = unquoted
	}
	return a.AddLocation(id, name, flag == "True")
}

// parseTransitionLine reads `<src> -> <dst> : tau=[...], E={...}`.
func parseTransitionLine(a *automata.Automaton, line string) error {
	head, spec, ok := strings.Cut(line, ":")
	if !ok {
		return automata.NewError(automata.ErrParse, "malformed transition line %q", line)
	}
	src, dst, ok := strings.Cut(strings.TrimSpace(head), "->")
	if !ok {
		return automata.NewError(automata.ErrParse, "transition %q missing '->'", line)
	}
	source, err := strconv.Atoi(strings.TrimSpace(src))
	if err != nil {
		return automata.NewError(automata.ErrParse, "bad source in %q: %v", line, err)
	}
	target, err := strconv.Atoi(strings.TrimSpace(dst))
	if err != nil {
		return automata.NewError(automata.ErrParse, "bad target in %q: %v", line, err)
	}

	tauPart, clearPart, ok := strings.Cut(spec, "E=")
	if !ok {
		return automata.NewError(automata.ErrParse, "transition %q missing clear set", line)
	}
	tauPart = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(tauPart), ","))
	if !strings.HasPrefix(tauPart, "tau=") {
		return automata.NewError(automata.ErrParse, "transition %q missing tau", line)
	}
	tau, err := automata.ParseSequence(strings.TrimPrefix(tauPart, "tau="))
	if err != nil {
		return automata.NewError(automata.ErrParse, "transition %q: %v", line, err)
	}
	clear, err := parseClearSet(strings.TrimSpace(clearPart))
	if err != nil {
		return automata.NewError(automata.ErrParse, "transition %q: %v", line, err)
	}
	return a.AddTransition(source, tau, clear, target)
}

func parseClearSet(s string) ([]int, error) {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("clear set must be braced, got %q", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(body, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad clear index %q: %v", part, err)
		}
		out = append(out, idx)
	}
	return out, nil
}

func formatTau(tau automata.Sequence) string {
	return tau.String()
}

func formatClear(clear []int) string {
	parts := make([]string, len(clear))
	for i, idx := range clear {
		parts[i] = strconv.Itoa(idx)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func pythonBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
