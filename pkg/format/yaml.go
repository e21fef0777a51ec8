/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: yaml.go
Description: YAML codec for register automata, for toolchains that prefer
structured documents over the line format. Semantically equivalent to the
text codec.
*/

package format

import (
	"github.com/kleascm/ralt/pkg/automata"
	"gopkg.in/yaml.v3"
)

type yamlAutomaton struct {
	Alphabet    yamlAlphabet     `yaml:"alphabet"`
	Initial     int              `yaml:"initial"`
	Locations   []yamlLocation   `yaml:"locations"`
	Transitions []yamlTransition `yaml:"transitions"`
}

type yamlAlphabet struct {
	Domain   string `yaml:"domain"`
	Relation string `yaml:"relation"`
}

type yamlLocation struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name,omitempty"`
	Accepting bool   `yaml:"accepting"`
}

type yamlTransition struct {
	Source int       `yaml:"source"`
	Target int       `yaml:"target"`
	Tau    []float64 `yaml:"tau"`
	Clear  []int     `yaml:"clear,omitempty"`
}

// SerializeYAML renders the automaton as a YAML document.
func SerializeYAML(a *automata.Automaton) ([]byte, error) {
	doc := yamlAutomaton{
		Alphabet: yamlAlphabet{
			Domain:   string(a.Alphabet.Domain),
			Relation: string(a.Alphabet.Relation),
		},
		Initial: a.Initial,
	}
	for _, loc := range a.Locations {
		if loc == nil {
			continue
		}
		doc.Locations = append(doc.Locations, yamlLocation{
			ID:        loc.ID,
			Name:      loc.Name,
			Accepting: loc.Accepting,
		})
		for _, t := range loc.Transitions {
			doc.Transitions = append(doc.Transitions, yamlTransition{
				Source: t.Source,
				Target: t.Target,
				Tau:    t.Tau,
				Clear:  t.Clear,
			})
		}
	}
	return yaml.Marshal(doc)
}

// ParseYAML reads an automaton from a YAML document.
func ParseYAML(data []byte) (*automata.Automaton, error) {
	var doc yamlAutomaton
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, automata.NewError(automata.ErrParse, "yaml: %v", err)
	}
	alphabet := automata.Alphabet{
		Domain:   automata.Domain(doc.Alphabet.Domain),
		Relation: automata.Relation(doc.Alphabet.Relation),
	}
	if !alphabet.Valid() {
		return nil, automata.NewError(automata.ErrParse,
			"yaml: unknown alphabet %s %s", doc.Alphabet.Domain, doc.Alphabet.Relation)
	}
	a := automata.NewAutomaton(alphabet)
	for _, loc := range doc.Locations {
		if err := a.AddLocation(loc.ID, loc.Name, loc.Accepting); err != nil {
			return nil, automata.NewError(automata.ErrParse, "yaml: %v", err)
		}
	}
	if err := a.SetInitial(doc.Initial); err != nil {
		return nil, automata.NewError(automata.ErrParse, "yaml: %v", err)
	}
	for _, t := range doc.Transitions {
		if err := a.AddTransition(t.Source, automata.Sequence(t.Tau), t.Clear, t.Target); err != nil {
			return nil, automata.NewError(automata.ErrParse, "yaml: %v", err)
		}
	}
	return a, nil
}
