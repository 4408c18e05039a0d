package lineseq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	ignore := NewIgnoreSet()

	t.Run("reports expected lines missing from actual", func(t *testing.T) {
		expected := Sequence{"ip dns primary 8.8.4.7", "slb server web1 10.0.0.5"}
		actual := Sequence{"slb server web1 10.0.0.5"}
		got := Diff(expected, actual, ignore)
		assert.Equal(t, Sequence{"ip dns primary 8.8.4.7"}, got)
	})

	t.Run("membership is not positional", func(t *testing.T) {
		expected := Sequence{"a", "b", "c"}
		actual := Sequence{"c", "x", "a", "b"}
		assert.Empty(t, Diff(expected, actual, ignore))
	})

	t.Run("empty expected yields empty result", func(t *testing.T) {
		assert.Empty(t, Diff(Sequence{}, Sequence{"a"}, ignore))
	})

	t.Run("empty actual yields expected minus ignored", func(t *testing.T) {
		expected := Sequence{"a", "", "!", "exit-module", "b"}
		got := Diff(expected, Sequence{}, ignore)
		assert.Equal(t, Sequence{"a", "b"}, got)
	})

	t.Run("duplicates each checked independently", func(t *testing.T) {
		expected := Sequence{"port 80 tcp", "port 80 tcp"}
		got := Diff(expected, Sequence{}, ignore)
		assert.Equal(t, Sequence{"port 80 tcp", "port 80 tcp"}, got)
	})

	t.Run("comment lines skipped", func(t *testing.T) {
		expected := Sequence{"!section marker", "a"}
		got := Diff(expected, Sequence{}, ignore)
		assert.Equal(t, Sequence{"a"}, got)
	})

	t.Run("result preserves expected order", func(t *testing.T) {
		expected := Sequence{"z", "a", "m"}
		got := Diff(expected, Sequence{}, ignore)
		assert.Equal(t, Sequence{"z", "a", "m"}, got)
	})
}

func TestIgnoreSet(t *testing.T) {
	t.Run("caller lines excluded by exact match only", func(t *testing.T) {
		ignore := NewIgnoreSet("clock set")
		expected := Sequence{"clock set", "clock set 00:00"}
		got := Diff(expected, Sequence{}, ignore)
		// "clock set 00:00" is not an exact member of the ignore set and so
		// must survive the diff.
		assert.Equal(t, Sequence{"clock set 00:00"}, got)
	})

	t.Run("builtin literals never appear in any diff", func(t *testing.T) {
		ignore := NewIgnoreSet()
		for _, line := range builtinIgnore {
			got := Diff(Sequence{line}, Sequence{}, ignore)
			assert.Empty(t, got, "line %q leaked into diff", line)
		}
	})

	t.Run("caller lines are trimmed before membership", func(t *testing.T) {
		ignore := NewIgnoreSet("  clock set  ")
		assert.True(t, ignore.Contains("clock set"))
	})

	t.Run("WithoutIgnored strips members", func(t *testing.T) {
		ignore := NewIgnoreSet("ntp server 10.0.0.1")
		seq := Sequence{"a", "", "ntp server 10.0.0.1", "b"}
		assert.Equal(t, Sequence{"a", "b"}, seq.WithoutIgnored(ignore))
	})
}

func TestFingerprint(t *testing.T) {
	t.Run("equal content equal digest", func(t *testing.T) {
		a := Sequence{"hostname lb1", "ip dns primary 8.8.4.7"}
		b := Sequence{"hostname lb1", "ip dns primary 8.8.4.7"}
		assert.Equal(t, Fingerprint(a), Fingerprint(b))
	})

	t.Run("order changes digest", func(t *testing.T) {
		a := Sequence{"a", "b"}
		b := Sequence{"b", "a"}
		assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	})

	t.Run("ignored lines removed before fingerprinting compare equal", func(t *testing.T) {
		ignore := NewIgnoreSet("ntp clock-period 17180")
		running := Sequence{"hostname lb1", "ntp clock-period 17180"}.WithoutIgnored(ignore)
		startup := Sequence{"hostname lb1"}.WithoutIgnored(ignore)
		assert.Equal(t, Fingerprint(running), Fingerprint(startup))
	})
}
