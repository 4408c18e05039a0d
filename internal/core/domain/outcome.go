package domain

// Outcome aggregates everything a reconciliation run reports back to the
// caller. Fields mirror the module's documented output surface; optional
// sections stay nil/empty when their feature was not requested.
type Outcome struct {
	Changed  bool     `json:"changed"`
	Commands []string `json:"commands,omitempty"`
	Updates  []string `json:"updates,omitempty"`
	Warnings []string `json:"warnings"`

	// Intent verification, populated only when an intended config was given.
	Success                                 *bool    `json:"success,omitempty"`
	FailedDiffLinesBetweenIntendedCandidate []string `json:"failed_diff_lines_between_intended_candidate,omitempty"`

	// Startup comparison, populated only when diff_against=startup.
	DiffAgainstFound string   `json:"diff_against_found,omitempty"`
	StartupDiff      []string `json:"startup_diff,omitempty"`

	BackupPath string `json:"backup_path,omitempty"`
	Saved      bool   `json:"saved"`
}

// Warn appends a warning. Warnings are ordered and non-fatal;
// the run completes normally regardless of how many accumulate.
func (o *Outcome) Warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// SetSuccess records the intent-verification verdict.
func (o *Outcome) SetSuccess(ok bool) {
	o.Success = &ok
}
