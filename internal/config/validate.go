package config

import (
	"github.com/configsmith/device-reconciler/internal/core/domain"
	"github.com/configsmith/device-reconciler/internal/errors"
)

// Validate enforces the structural option constraints that cannot be
// expressed as field tags: mutual exclusions and required-if dependencies.
// All violations are fatal before any device I/O.
func (c *Config) Validate() error {
	r := &c.Run

	// Empty enum values fall back to their defaults; flag binding can
	// surface unset options as empty strings.
	if r.SaveWhen == "" {
		r.SaveWhen = domain.SaveNever
	}
	if r.Match == "" {
		r.Match = domain.MatchLine
	}
	if r.Replace == "" {
		r.Replace = domain.ReplaceLine
	}

	if r.FilePath != "" && len(r.Lines) > 0 {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"lines and file_path are mutually exclusive",
			"Provide either explicit lines or a source file, not both.")
	}
	if r.FilePath != "" && len(r.Parents) > 0 {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"parents and file_path are mutually exclusive",
			"Parents only apply to explicit lines.")
	}

	if !r.Match.Valid() {
		return errors.Newf(errors.CodeConfigValidation, "invalid match mode %q", r.Match)
	}
	if !r.Replace.Valid() {
		return errors.Newf(errors.CodeConfigValidation, "invalid replace mode %q", r.Replace)
	}
	if r.Match.RequiresLines() && len(r.Lines) == 0 {
		return errors.Newf(errors.CodeConfigValidation,
			"match mode %q requires lines", r.Match)
	}
	if r.Replace == domain.ReplaceBlock && len(r.Lines) == 0 {
		return errors.New(errors.CodeConfigValidation, "replace mode \"block\" requires lines")
	}

	if n := len(r.MultilineDelimiter); n != 0 && n > 2 {
		return errors.New(errors.CodeConfigValidation,
			"multiline_delimiter value can only be one or two characters")
	}

	if !r.SaveWhen.Valid() {
		return errors.Newf(errors.CodeConfigValidation, "invalid save_when value %q", r.SaveWhen)
	}

	if r.DiffAgainst != "" && r.DiffAgainst != domain.DiffAgainstStartup {
		return errors.Newf(errors.CodeConfigValidation,
			"diff_against supports only %q, got %q", domain.DiffAgainstStartup, r.DiffAgainst)
	}

	if c.Device.KeyFile == "" && c.Device.Password == "" {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"no device credentials configured",
			"Set device.password or device.key_file.")
	}

	return nil
}
