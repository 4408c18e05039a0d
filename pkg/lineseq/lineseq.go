// Package lineseq provides ordered line-sequence operations for device
// configuration text: normalization, asymmetric diffing and content
// fingerprinting. A sequence is opaque ordered text; no command semantics
// are parsed or understood.
package lineseq

import "strings"

const commentPrefix = "!"

// Sequence is an ordered, non-unique list of trimmed configuration lines
// representing one configuration snapshot (running, startup, candidate or
// intended). A Sequence is never mutated after construction; operations
// return new sequences.
type Sequence []string

// FromText splits raw multi-line device output into a Sequence, trimming
// surrounding whitespace and dropping comment lines. Empty input yields an
// empty sequence.
func FromText(raw string) Sequence {
	if raw == "" {
		return Sequence{}
	}
	rawLines := strings.Split(raw, "\n")
	seq := make(Sequence, 0, len(rawLines))
	for _, line := range rawLines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}
		seq = append(seq, trimmed)
	}
	return seq
}

// FromLines trims each caller-supplied line, preserving order and
// duplicates. A nil input yields an empty sequence.
func FromLines(lines []string) Sequence {
	seq := make(Sequence, 0, len(lines))
	for _, line := range lines {
		seq = append(seq, strings.TrimSpace(line))
	}
	return seq
}

// IsComment reports whether line carries the device comment marker.
func IsComment(line string) bool {
	return strings.HasPrefix(line, commentPrefix)
}

// ToSet returns the membership set of the sequence.
func (s Sequence) ToSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, line := range s {
		set[line] = struct{}{}
	}
	return set
}

// Contains reports whether line occurs anywhere in the sequence.
func (s Sequence) Contains(line string) bool {
	for _, l := range s {
		if l == line {
			return true
		}
	}
	return false
}

// EqualAsSet reports whether two sequences contain the same set of lines,
// ignoring order and multiplicity. This is the change-detection predicate:
// a reconciliation run changed the device iff the before/after running
// snapshots differ as sets.
func (s Sequence) EqualAsSet(other Sequence) bool {
	a, b := s.ToSet(), other.ToSet()
	if len(a) != len(b) {
		return false
	}
	for line := range a {
		if _, ok := b[line]; !ok {
			return false
		}
	}
	return true
}

// Join renders the sequence back to newline-separated text.
func (s Sequence) Join() string {
	return strings.Join(s, "\n")
}
