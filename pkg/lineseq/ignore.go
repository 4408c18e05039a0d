package lineseq

import "strings"

// builtinIgnore holds literals the device emits around configuration dumps
// that never represent configuration commands. They are excluded from every
// diff result.
var builtinIgnore = []string{
	"",
	"!",
	"exit-module",
	"Show default startup-config",
	"Building configuration...",
}

// IgnoreSet is a set of literal lines excluded from diff results. Matching
// is exact string equality, never substring.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from the built-in literals plus any
// caller-supplied lines. Caller lines are trimmed the same way candidate
// lines are.
func NewIgnoreSet(extra ...string) IgnoreSet {
	set := make(IgnoreSet, len(builtinIgnore)+len(extra))
	for _, line := range builtinIgnore {
		set[line] = struct{}{}
	}
	for _, line := range extra {
		set[strings.TrimSpace(line)] = struct{}{}
	}
	return set
}

// Contains reports exact membership of line in the set.
func (is IgnoreSet) Contains(line string) bool {
	_, ok := is[line]
	return ok
}

// WithoutIgnored returns a new sequence with all ignore-set members removed.
// Used before fingerprinting so that auto-updated lines do not defeat the
// modified-save comparison.
func (s Sequence) WithoutIgnored(ignore IgnoreSet) Sequence {
	out := make(Sequence, 0, len(s))
	for _, line := range s {
		if ignore.Contains(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}
