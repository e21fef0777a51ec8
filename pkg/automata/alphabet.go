/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: alphabet.go
Description: Alphabet and data-word primitives for register automata over dense
ordered domains. Provides sequences of data values, order-type signatures,
letter extensions that cover every order-type pattern, and order-preserving
bijective mappings between sequences of the same type.
*/

package automata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Domain identifies the data domain a run draws its values from.
// Behavior depends only on the relative order/equality of values, so both
// domains share the same float64 carrier; the distinction is preserved for
// the text format and for exact midpoint synthesis at the sizes in scope.
type Domain string

const (
	DomainReal     Domain = "real"
	DomainRational Domain = "rational"
)

// Relation is the comparison relation the alphabet observes between values.
type Relation string

const (
	// RelationEqual observes only equality between data values.
	RelationEqual Relation = "="
	// RelationLess observes the total order between data values.
	RelationLess Relation = "<"
)

// Alphabet fixes the domain and relation for the lifetime of one run.
// It governs how order types are computed and compared everywhere.
type Alphabet struct {
	Domain   Domain
	Relation Relation
}

// Valid reports whether the alphabet descriptor is well-formed.
func (a Alphabet) Valid() bool {
	if a.Domain != DomainReal && a.Domain != DomainRational {
		return false
	}
	return a.Relation == RelationEqual || a.Relation == RelationLess
}

// Sequence is a finite ordered series of data values. It doubles as a word
// (input to an automaton), a register valuation, and a transition guard tau;
// in all three roles only its order type carries meaning.
type Sequence []float64

// Append returns a new sequence with v added at the end.
func (s Sequence) Append(v float64) Sequence {
	out := make(Sequence, 0, len(s)+1)
	out = append(out, s...)
	return append(out, v)
}

// Prepend returns a new sequence with v added at the front.
func (s Sequence) Prepend(v float64) Sequence {
	out := make(Sequence, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

// Concat returns the concatenation of s and t as a new sequence.
func (s Sequence) Concat(t Sequence) Sequence {
	out := make(Sequence, 0, len(s)+len(t))
	out = append(out, s...)
	return append(out, t...)
}

// Prefix returns the first n values of s.
func (s Sequence) Prefix(n int) Sequence {
	if n <= 0 {
		return Sequence{}
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n:n]
}

// Suffix returns the values of s starting at index start.
func (s Sequence) Suffix(start int) Sequence {
	if start < 0 || start >= len(s) {
		return Sequence{}
	}
	return s[start:]
}

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Index returns the position of the first occurrence of v in s, or -1.
func (s Sequence) Index(v float64) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// RemoveIndices returns a new sequence with the values at the given
// positions removed simultaneously. Positions are 0-based into s.
func (s Sequence) RemoveIndices(indices []int) Sequence {
	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		drop[i] = struct{}{}
	}
	out := make(Sequence, 0, len(s))
	for i, v := range s {
		if _, ok := drop[i]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// Equal reports exact value equality between two sequences.
func (s Sequence) Equal(t Sequence) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}
	return true
}

// String renders the sequence in the text-format shorthand, e.g. [1,2.5,3].
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ParseSequence reverses Sequence.String: a bracketed, comma-separated
// value list such as [1,2.5,3]. Rational literals p/q are accepted.
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("sequence must be bracketed, got %q", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return Sequence{}, nil
	}
	parts := strings.Split(body, ",")
	out := make(Sequence, 0, len(parts))
	for _, p := range parts {
		v, err := ParseValue(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseValue parses a data value: a decimal literal or a rational p/q.
func ParseValue(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("bad rational numerator %q: %w", num, err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, fmt.Errorf("bad rational denominator %q: %w", den, err)
		}
		if d == 0 {
			return 0, fmt.Errorf("rational %q has zero denominator", s)
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %w", s, err)
	}
	return v, nil
}

// OrderType is the tagged signature of a sequence: one marker per element
// describing its rank (under <) or equality class (under =) within the
// sequence, independent of the concrete values. Two sequences induce the
// same comparison pattern iff their order types are structurally equal.
type OrderType []int

// Equal reports structural equality of two order types.
func (t OrderType) Equal(o OrderType) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the order type for use as a deterministic map key.
func (t OrderType) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// OrderTypeOf computes the order type of s under the alphabet relation.
// Under <, each marker is the dense rank of the value among the distinct
// values of s; under =, each marker is the equality class in order of first
// appearance.
func (a Alphabet) OrderTypeOf(s Sequence) OrderType {
	out := make(OrderType, len(s))
	if a.Relation == RelationLess {
		distinct := distinctSorted(s)
		for i, v := range s {
			out[i] = sort.SearchFloat64s(distinct, v)
		}
		return out
	}
	classes := make(map[float64]int, len(s))
	for i, v := range s {
		id, ok := classes[v]
		if !ok {
			id = len(classes)
			classes[v] = id
		}
		out[i] = id
	}
	return out
}

// SameType reports whether two sequences induce the same comparison pattern
// under the alphabet relation.
func (a Alphabet) SameType(s, t Sequence) bool {
	if len(s) != len(t) {
		return false
	}
	return a.OrderTypeOf(s).Equal(a.OrderTypeOf(t))
}

// ExtensionValues returns one concrete value per order-type pattern that a
// next input can induce relative to s. Under = these are one member of each
// equality class plus a fresh value; under < they additionally include a
// midpoint between each pair of adjacent distinct values and values below
// the minimum and above the maximum. The result is sorted ascending so
// exploration order is deterministic.
func (a Alphabet) ExtensionValues(s Sequence) Sequence {
	if len(s) == 0 {
		return Sequence{0}
	}
	distinct := distinctSorted(s)
	var out Sequence
	out = append(out, distinct...)
	max := distinct[len(distinct)-1]
	min := distinct[0]
	if a.Relation == RelationLess {
		for i := 0; i+1 < len(distinct); i++ {
			out = append(out, (distinct[i]+distinct[i+1])/2)
		}
		out = append(out, min-1)
	}
	out = append(out, max+1)
	sort.Float64s(out)
	return out
}

// BijectiveMap returns an order-preserving mapping that carries values of
// from onto values of to. Both sequences must have the same length; the map
// interpolates linearly inside the range of from and translates outside it,
// matching values of from onto the correspondingly ranked values of to.
func (a Alphabet) BijectiveMap(from, to Sequence) (func(float64) float64, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("bijective map requires equal lengths, got %d and %d", len(from), len(to))
	}
	if len(from) == 0 {
		return func(v float64) float64 { return v }, nil
	}
	src := from.Clone()
	dst := to.Clone()
	sort.Float64s(src)
	sort.Float64s(dst)

	return func(v float64) float64 {
		v0 := src[0]
		vLast := src[len(src)-1]
		switch {
		case v < v0:
			return dst[0] + (v - v0)
		case v >= vLast:
			return dst[len(dst)-1] + (v - vLast)
		default:
			for i := 0; i+1 < len(src); i++ {
				vi, vj := src[i], src[i+1]
				if vi <= v && v < vj {
					oi, oj := dst[i], dst[i+1]
					if vj == vi {
						return oi
					}
					return oi + (v-vi)*(oj-oi)/(vj-vi)
				}
			}
			return dst[len(dst)-1]
		}
	}, nil
}

// ApplyMap returns the sequence obtained by applying fn to every value of s.
func ApplyMap(s Sequence, fn func(float64) float64) Sequence {
	out := make(Sequence, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// distinctSorted returns the distinct values of s in ascending order.
func distinctSorted(s Sequence) []float64 {
	seen := make(map[float64]struct{}, len(s))
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
