/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sample.go
Description: Text codec for labeled samples: one word per line, labeled
accept: or reject:, with # comments. This is the output of characteristic
sample generation and the input of passive learning.
*/

package format

import (
	"strings"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/passive"
)

// SerializeSample renders a sample, positives first.
func SerializeSample(s passive.Sample) string {
	var b strings.Builder
	b.WriteString("# Labeled sample\n")
	for _, w := range s.Pos {
		b.WriteString("accept: " + w.String() + "\n")
	}
	for _, w := range s.Neg {
		b.WriteString("reject: " + w.String() + "\n")
	}
	return b.String()
}

// ParseSample reads a sample from the labeled-line format.
func ParseSample(text string) (passive.Sample, error) {
	var pos, neg []automata.Sequence
	for lineno, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label, body, ok := strings.Cut(line, ":")
		if !ok {
			return passive.Sample{}, automata.NewError(automata.ErrParse,
				"line %d: expected 'accept:' or 'reject:' label, got %q", lineno+1, line)
		}
		word, err := automata.ParseSequence(strings.TrimSpace(body))
		if err != nil {
			return passive.Sample{}, automata.NewError(automata.ErrParse, "line %d: %v", lineno+1, err)
		}
		switch strings.TrimSpace(label) {
		case "accept":
			pos = append(pos, word)
		case "reject":
			neg = append(neg, word)
		default:
			return passive.Sample{}, automata.NewError(automata.ErrParse,
				"line %d: unknown label %q", lineno+1, label)
		}
	}
	return passive.NewSample(pos, neg), nil
}
