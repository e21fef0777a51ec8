/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dot.go
Description: Graphviz DOT export of a register automaton. Accepting
locations are doublecircles; edges carry the guard and clear set.
*/

package format

import (
	"fmt"
	"strings"

	"github.com/kleascm/ralt/pkg/automata"
)

// SerializeDot renders the automaton as a Graphviz digraph.
func SerializeDot(a *automata.Automaton) string {
	var b strings.Builder
	b.WriteString("digraph dra {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  __start [shape=point];\n")
	for _, loc := range a.Locations {
		if loc == nil {
			continue
		}
		shape := "circle"
		if loc.Accepting {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "  %d [shape=%s, label=%q];\n", loc.ID, shape, fmt.Sprintf("%d", loc.ID))
	}
	fmt.Fprintf(&b, "  __start -> %d;\n", a.Initial)
	for _, loc := range a.Locations {
		if loc == nil {
			continue
		}
		for _, t := range loc.Transitions {
			label := fmt.Sprintf("tau=%s, E=%s", t.Tau, formatClear(t.Clear))
			fmt.Fprintf(&b, "  %d -> %d [label=%q];\n", t.Source, t.Target, label)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
