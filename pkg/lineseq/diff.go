package lineseq

import (
	"crypto/sha1"
	"encoding/hex"
)

// Diff computes the asymmetric "what's missing" difference: every line of
// expected, in order, that is not present anywhere in actual. Comment lines
// and ignore-set members are skipped. Membership is tested against the whole
// of actual, not positionally, and duplicates in expected are each checked
// independently.
//
// This intentionally reports commands expected but not observed, never
// commands present but unexpected.
func Diff(expected, actual Sequence, ignore IgnoreSet) Sequence {
	diff := make(Sequence, 0)
	actualSet := actual.ToSet()
	for _, line := range expected {
		if IsComment(line) {
			continue
		}
		if ignore.Contains(line) {
			continue
		}
		if _, ok := actualSet[line]; !ok {
			diff = append(diff, line)
		}
	}
	return diff
}

// Fingerprint returns a SHA-1 digest of the sequence joined by newlines.
// Used only as a fast equality check between running and startup snapshots,
// not for any security purpose.
func Fingerprint(s Sequence) string {
	sum := sha1.Sum([]byte(s.Join()))
	return hex.EncodeToString(sum[:])
}
