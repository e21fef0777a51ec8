/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Observation table for learning register automata. Rows are
labeled by (prefix, memorable sequence) pairs and columns by suffix
sequences; row equivalence is behavioral, established through an
order-preserving renaming of the memorable content followed by membership
queries, with a cache of known-inconsistent pairs.
*/

package learner

import (
	"fmt"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/interfaces"
)

// Row is one observation table row: an access prefix, the memorable
// subsequence the registers must hold after it, the acceptance of the
// prefix itself, and one membership entry per suffix column.
type Row struct {
	Prefix    automata.Sequence
	Memorable automata.Sequence
	Accepting bool
	Entries   []bool
}

// Candidate labels a prospective row that may or may not be behaviorally
// equivalent to an existing one.
type Candidate struct {
	Prefix    automata.Sequence
	Memorable automata.Sequence
}

// Key returns a deterministic map key for the candidate.
func (c Candidate) Key() string {
	return c.Prefix.String() + "|" + c.Memorable.String()
}

// Table holds the observation rows, suffix columns, and the one-letter
// extension candidates of every row.
type Table struct {
	alphabet automata.Alphabet
	oracle   interfaces.Oracle

	rows     []*Row
	suffixes []automata.Sequence
	extended [][]Candidate

	// inconsistent caches candidate-vs-row pairs already proven apart;
	// distinctions only grow as columns are added, so entries stay valid.
	inconsistent map[string]map[int]bool
}

// NewTable creates an empty observation table over the alphabet.
func NewTable(alphabet automata.Alphabet, o interfaces.Oracle) *Table {
	return &Table{
		alphabet:     alphabet,
		oracle:       o,
		inconsistent: make(map[string]map[int]bool),
	}
}

// Rows exposes the current rows (indexing matches hypothesis locations).
func (t *Table) Rows() []*Row {
	return t.rows
}

// Extended returns the one-letter extension candidates of row i.
func (t *Table) Extended(i int) []Candidate {
	return t.extended[i]
}

// InsertRow adds a row for (prefix, memorable), filling its acceptance and
// all column entries through membership queries and precomputing its
// one-letter extension candidates.
func (t *Table) InsertRow(prefix, memorable automata.Sequence) (*Row, error) {
	accepting, err := t.oracle.MembershipQuery(prefix)
	if err != nil {
		return nil, err
	}
	row := &Row{Prefix: prefix, Memorable: memorable, Accepting: accepting}
	for _, suffix := range t.suffixes {
		entry, err := t.oracle.MembershipQuery(prefix.Concat(suffix))
		if err != nil {
			return nil, err
		}
		row.Entries = append(row.Entries, entry)
	}
	t.rows = append(t.rows, row)

	ext, err := t.generateExtensions(row)
	if err != nil {
		return nil, err
	}
	t.extended = append(t.extended, ext)
	return row, nil
}

// InsertColumn adds a suffix column and fills the entry of every row.
// Duplicate suffixes are ignored.
func (t *Table) InsertColumn(suffix automata.Sequence) error {
	for _, existing := range t.suffixes {
		if existing.Equal(suffix) {
			return nil
		}
	}
	t.suffixes = append(t.suffixes, suffix)
	for _, row := range t.rows {
		entry, err := t.oracle.MembershipQuery(row.Prefix.Concat(suffix))
		if err != nil {
			return err
		}
		row.Entries = append(row.Entries, entry)
	}
	return nil
}

// RowIndex returns the index of the row with exactly this label, or -1.
func (t *Table) RowIndex(prefix, memorable automata.Sequence) int {
	for i, row := range t.rows {
		if row.Prefix.Equal(prefix) && row.Memorable.Equal(memorable) {
			return i
		}
	}
	return -1
}

// EquivalentRowIndex returns the index of a row behaviorally equivalent to
// the candidate, or -1 when none qualifies.
func (t *Table) EquivalentRowIndex(c Candidate) (int, error) {
	if idx := t.RowIndex(c.Prefix, c.Memorable); idx >= 0 {
		return idx, nil
	}
	for i, row := range t.rows {
		equal, err := t.equivalentWithRow(row, i, c)
		if err != nil {
			return -1, err
		}
		if equal {
			return i, nil
		}
	}
	return -1, nil
}

// equivalentWithRow checks whether the candidate behaves like the reference
// row on every column, after renaming its memorable content onto the row's.
func (t *Table) equivalentWithRow(row *Row, rowIdx int, c Candidate) (bool, error) {
	key := c.Key()
	if t.inconsistent[key][rowIdx] {
		return false, nil
	}
	if !t.alphabet.SameType(row.Memorable, c.Memorable) {
		t.markInconsistent(key, rowIdx)
		return false, nil
	}
	mapper, err := t.alphabet.BijectiveMap(c.Memorable, row.Memorable)
	if err != nil {
		return false, err
	}
	mappedPrefix := automata.ApplyMap(c.Prefix, mapper)
	for j, suffix := range t.suffixes {
		answer, err := t.oracle.MembershipQuery(mappedPrefix.Concat(suffix))
		if err != nil {
			return false, err
		}
		if answer != row.Entries[j] {
			t.markInconsistent(key, rowIdx)
			return false, nil
		}
	}
	return true, nil
}

// generateExtensions builds the candidate rows reached by appending one
// value per order-type pattern to the row's prefix, with the memorable
// content of each extension answered by the memorability oracle.
func (t *Table) generateExtensions(row *Row) ([]Candidate, error) {
	var out []Candidate
	seen := make(map[string]bool)
	for _, b := range t.alphabet.ExtensionValues(row.Memorable) {
		extended := row.Prefix.Append(b)
		memorable, err := t.oracle.MemorabilityQuery(extended)
		if err != nil {
			return nil, err
		}
		c := Candidate{Prefix: extended, Memorable: memorable}
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		out = append(out, c)
	}
	return out, nil
}

func (t *Table) markInconsistent(key string, rowIdx int) {
	if t.inconsistent[key] == nil {
		t.inconsistent[key] = make(map[int]bool)
	}
	t.inconsistent[key][rowIdx] = true
}

// String renders the table for debug logging.
func (t *Table) String() string {
	out := ""
	for i, row := range t.rows {
		out += fmt.Sprintf("row %d (%s, %s) accepting=%t entries=%v\n",
			i, row.Prefix, row.Memorable, row.Accepting, row.Entries)
	}
	return out
}
