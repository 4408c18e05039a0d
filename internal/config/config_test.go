package config

import (
	"testing"

	"github.com/configsmith/device-reconciler/internal/core/domain"
	"github.com/configsmith/device-reconciler/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Device.Host = "lb1.example.net"
	cfg.Device.User = "admin"
	cfg.Device.Password = "secret"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("default save_when is never", func(t *testing.T) {
		assert.Equal(t, domain.SaveNever, DefaultConfig().Run.SaveWhen)
	})

	t.Run("lines and file_path are mutually exclusive", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.Lines = []string{"hostname lb1"}
		cfg.Run.FilePath = "candidate.cfg"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	})

	t.Run("parents and file_path are mutually exclusive", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.Parents = []string{"slb server web1 10.0.0.5"}
		cfg.Run.FilePath = "candidate.cfg"
		assert.Error(t, cfg.Validate())
	})

	t.Run("strict match requires lines", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.Match = domain.MatchStrict
		assert.Error(t, cfg.Validate())

		cfg.Run.Lines = []string{"hostname lb1"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("exact match requires lines", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.Match = domain.MatchExact
		assert.Error(t, cfg.Validate())
	})

	t.Run("block replace requires lines", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.Replace = domain.ReplaceBlock
		assert.Error(t, cfg.Validate())
	})

	t.Run("multiline delimiter length", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.MultilineDelimiter = "abc"
		assert.Error(t, cfg.Validate())

		cfg.Run.MultilineDelimiter = "/n"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid save_when rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.SaveWhen = domain.SaveWhen("sometimes")
		assert.Error(t, cfg.Validate())
	})

	t.Run("diff_against accepts only startup", func(t *testing.T) {
		cfg := validConfig()
		cfg.Run.DiffAgainst = "running"
		assert.Error(t, cfg.Validate())

		cfg.Run.DiffAgainst = domain.DiffAgainstStartup
		assert.NoError(t, cfg.Validate())
	})

	t.Run("credentials required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Device.Password = ""
		assert.Error(t, cfg.Validate())

		cfg.Device.KeyFile = "/home/user/.ssh/id_ed25519"
		assert.NoError(t, cfg.Validate())
	})
}
