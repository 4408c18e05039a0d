package candidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/configsmith/device-reconciler/internal/errors"
	"github.com/configsmith/device-reconciler/pkg/lineseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("before and after splice around lines in order", func(t *testing.T) {
		got := Build(Input{
			Lines:  []string{"ip dns primary 8.8.4.7", "hostname lb1"},
			Before: []string{"no logging console"},
			After:  []string{"logging console"},
		})
		want := lineseq.Sequence{
			"no logging console",
			"ip dns primary 8.8.4.7",
			"hostname lb1",
			"logging console",
		}
		assert.Equal(t, want, got)
	})

	t.Run("parents precede their lines", func(t *testing.T) {
		got := Build(Input{
			Lines:   []string{"port 80 tcp"},
			Parents: []string{"slb server web1 10.0.0.5"},
		})
		want := lineseq.Sequence{"slb server web1 10.0.0.5", "port 80 tcp"}
		assert.Equal(t, want, got)
	})

	t.Run("lines are never reordered", func(t *testing.T) {
		in := []string{"c", "a", "b"}
		got := Build(Input{Lines: in})
		assert.Equal(t, lineseq.Sequence{"c", "a", "b"}, got)
	})

	t.Run("lines trimmed but before and after kept verbatim", func(t *testing.T) {
		got := Build(Input{
			Lines:  []string{"  hostname lb1  "},
			Before: []string{"no logging console"},
		})
		assert.Equal(t, lineseq.Sequence{"no logging console", "hostname lb1"}, got)
	})

	t.Run("empty input yields empty sequence", func(t *testing.T) {
		assert.Empty(t, Build(Input{}))
	})
}

func TestFromFile(t *testing.T) {
	t.Run("reads ordered commands, dropping comments and blanks", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "candidate.cfg")
		content := "!candidate config\nslb server web1 10.0.0.5\n   port 80 tcp\n\n!trailer\nslb virtual-server vip1 10.0.0.9\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		got, err := FromFile(path)
		require.NoError(t, err)
		want := lineseq.Sequence{
			"slb server web1 10.0.0.5",
			"port 80 tcp",
			"slb virtual-server vip1 10.0.0.9",
		}
		assert.Equal(t, want, got)
	})

	t.Run("missing file is a resource-not-found error", func(t *testing.T) {
		got, err := FromFile(filepath.Join(t.TempDir(), "nope.cfg"))
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, errors.CodeResourceNotFound, errors.GetCode(err))
	})
}
