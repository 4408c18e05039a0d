package domain

// SaveWhen governs when the running configuration is persisted to the
// startup configuration at the end of a reconciliation run.
type SaveWhen string

const (
	// SaveAlways persists on every run.
	SaveAlways SaveWhen = "always"
	// SaveNever is the default; the running config is never persisted.
	SaveNever SaveWhen = "never"
	// SaveModified persists only when running and startup configurations
	// differ by content fingerprint.
	SaveModified SaveWhen = "modified"
	// SaveChanged persists only when this run changed the device.
	SaveChanged SaveWhen = "changed"
)

func (w SaveWhen) Valid() bool {
	switch w {
	case SaveAlways, SaveNever, SaveModified, SaveChanged:
		return true
	}
	return false
}

func (w SaveWhen) String() string {
	return string(w)
}

// MatchMode selects how candidate lines are matched against the device
// configuration. Only the surface is declared and validated; all modes
// apply line-wise merge semantics.
type MatchMode string

const (
	MatchLine   MatchMode = "line"
	MatchStrict MatchMode = "strict"
	MatchExact  MatchMode = "exact"
	MatchNone   MatchMode = "none"
)

func (m MatchMode) Valid() bool {
	switch m {
	case MatchLine, MatchStrict, MatchExact, MatchNone:
		return true
	}
	return false
}

// RequiresLines reports whether the mode is meaningless without explicit
// candidate lines.
func (m MatchMode) RequiresLines() bool {
	return m == MatchStrict || m == MatchExact
}

// ReplaceMode selects the replacement granularity for candidate application.
type ReplaceMode string

const (
	ReplaceLine  ReplaceMode = "line"
	ReplaceBlock ReplaceMode = "block"
)

func (r ReplaceMode) Valid() bool {
	return r == ReplaceLine || r == ReplaceBlock
}

// DiffAgainstStartup is the only accepted diff_against target: report the
// startup lines absent from the running configuration.
const DiffAgainstStartup = "startup"
