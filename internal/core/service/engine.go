package service

import (
	"context"
	"fmt"

	"github.com/configsmith/device-reconciler/internal/candidate"
	"github.com/configsmith/device-reconciler/internal/config"
	"github.com/configsmith/device-reconciler/internal/core/domain"
	"github.com/configsmith/device-reconciler/internal/core/ports"
	"github.com/configsmith/device-reconciler/internal/errors"
	"github.com/configsmith/device-reconciler/pkg/lineseq"
)

const (
	cmdShowRunning    = "show running-config"
	cmdShowRunningAll = "show running-config all"
	cmdShowStartup    = "show startup-config"
	cmdEnterConfig    = "configure"
	cmdExitConfig     = "exit"
)

// Engine reconciles a device's running configuration with a candidate and
// drives the save-to-startup decision. One Engine runs one strictly
// sequential reconciliation against one device session; it assumes
// exclusive access to the device for the duration of the run.
type Engine struct {
	session ports.DeviceSession
	backups ports.BackupStore
	logger  ports.Logger
	cfg     *config.Config
}

func NewEngine(session ports.DeviceSession, backups ports.BackupStore, logger ports.Logger, cfg *config.Config) (*Engine, error) {
	if session == nil {
		return nil, errors.New(errors.CodeConfigValidation, "device session cannot be nil")
	}
	if backups == nil {
		return nil, errors.New(errors.CodeConfigValidation, "backup store cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New(errors.CodeConfigValidation, "config cannot be nil")
	}
	return &Engine{session: session, backups: backups, logger: logger, cfg: cfg}, nil
}

// Run executes one reconciliation: snapshot, apply, re-snapshot, reconcile,
// save decision, optional startup diff. The ordering of device round-trips
// is fixed; diff computation and change detection depend on snapshots being
// taken at exactly these points.
func (e *Engine) Run(ctx context.Context) (*domain.Outcome, error) {
	run := &e.cfg.Run
	out := &domain.Outcome{Warnings: []string{}}
	ignore := lineseq.NewIgnoreSet(run.DiffIgnoreLines...)

	beforeText, err := e.session.Fetch(ctx, cmdShowRunning)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to fetch running configuration")
	}
	beforeRunning := lineseq.FromText(beforeText)
	e.logger.Debugf(ctx, "Captured pre-apply running config (%d lines)", len(beforeRunning))

	var fileLines lineseq.Sequence
	if run.FilePath != "" {
		// The file is read in full before any device mutation so a missing
		// source aborts the run with the device untouched.
		fileLines, err = candidate.FromFile(run.FilePath)
		if err != nil {
			return nil, err
		}
		if err = e.applyFromFile(ctx, out, fileLines); err != nil {
			return nil, err
		}
	}

	if run.Backup {
		if err = e.backupRunning(ctx, out); err != nil {
			return nil, err
		}
	}

	if len(run.Lines) > 0 {
		if err = e.applyLines(ctx, out); err != nil {
			return nil, err
		}
	}

	runningText, err := e.session.Fetch(ctx, cmdShowRunning)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to fetch post-apply running configuration")
	}
	startupText, err := e.session.Fetch(ctx, cmdShowStartup)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to fetch startup configuration")
	}
	running := lineseq.FromText(runningText)
	startup := lineseq.FromText(startupText)

	out.Changed = !running.EqualAsSet(beforeRunning)

	driftExpected := lineseq.FromLines(run.Lines)
	if run.FilePath != "" {
		driftExpected = fileLines
	}
	if drift := lineseq.Diff(driftExpected, running, ignore); len(drift) > 0 {
		msg := fmt.Sprintf("could not execute the following commands or they are absent from the running config after execution, check on the device: %v", []string(drift))
		out.Warn(msg)
		e.logger.Warnf(ctx, msg)
	}

	if len(run.IntendedConfig) > 0 {
		intended := lineseq.FromLines(run.IntendedConfig)
		missing := lineseq.Diff(intended, lineseq.FromLines(run.Lines), ignore)
		if len(missing) > 0 {
			out.SetSuccess(false)
			out.FailedDiffLinesBetweenIntendedCandidate = missing
			e.logger.Warnf(ctx, "Intended config lines missing from candidate: %v", []string(missing))
		} else {
			out.SetSuccess(true)
		}
	}

	if err = e.decideSave(ctx, out, ignore); err != nil {
		return nil, err
	}

	if run.DiffAgainst == domain.DiffAgainstStartup {
		startupDiff := lineseq.Diff(startup, running, ignore)
		if len(startupDiff) > 0 {
			out.DiffAgainstFound = "yes"
			out.Changed = true
			out.StartupDiff = startupDiff
		} else {
			out.DiffAgainstFound = "no"
			out.Changed = false
		}
	}

	// The changed flag is recomputed one final time from a fresh snapshot
	// and overrides any earlier value, including the one that drove a
	// changed-based save. Last writer wins.
	finalText, err := e.session.Fetch(ctx, cmdShowRunning)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to fetch final running configuration")
	}
	out.Changed = !lineseq.FromText(finalText).EqualAsSet(beforeRunning)

	e.logger.Infof(ctx, "Reconciliation complete (changed=%t, saved=%t, warnings=%d)",
		out.Changed, out.Saved, len(out.Warnings))
	return out, nil
}

// applyFromFile pushes each file line individually inside one configure
// session, as devices expect for file-sourced candidates.
func (e *Engine) applyFromFile(ctx context.Context, out *domain.Outcome, lines lineseq.Sequence) error {
	out.Commands = lines
	out.Updates = lines

	if e.cfg.Run.CheckMode {
		e.logger.Infof(ctx, "Check mode: %d file commands recorded but not applied", len(lines))
		return nil
	}

	if err := e.session.SubmitSingle(ctx, cmdEnterConfig); err != nil {
		return errors.Wrap(err, errors.CodeSessionError, "failed to enter configuration mode")
	}
	for _, line := range lines {
		if err := e.session.SubmitSingle(ctx, line); err != nil {
			return errors.Wrap(err, errors.CodeDeviceRejected, "device rejected command: "+line)
		}
	}
	if err := e.session.SubmitSingle(ctx, cmdExitConfig); err != nil {
		return errors.Wrap(err, errors.CodeSessionError, "failed to exit configuration mode")
	}
	e.logger.Infof(ctx, "Applied %d commands from %s", len(lines), e.cfg.Run.FilePath)
	return nil
}

// applyLines builds the explicit candidate and submits it as one batch.
func (e *Engine) applyLines(ctx context.Context, out *domain.Outcome) error {
	run := &e.cfg.Run
	cand := candidate.Build(candidate.Input{
		Lines:   run.Lines,
		Parents: run.Parents,
		Before:  run.Before,
		After:   run.After,
	})
	if len(cand) == 0 {
		return nil
	}

	out.Commands = cand
	out.Updates = cand

	if run.CheckMode {
		e.logger.Infof(ctx, "Check mode: %d commands recorded but not applied", len(cand))
		return nil
	}

	if err := e.session.SubmitBatch(ctx, cand); err != nil {
		return errors.Wrap(err, errors.CodeDeviceRejected, "device rejected candidate configuration")
	}
	e.logger.Infof(ctx, "Applied %d commands", len(cand))
	return nil
}

// backupRunning captures the raw running-config text and hands it to the
// backup store. A caller-supplied running_config stands in for the fetch
// unless defaults are requested.
func (e *Engine) backupRunning(ctx context.Context, out *domain.Outcome) error {
	run := &e.cfg.Run

	contents := run.RunningConfig
	if contents == "" || run.Defaults {
		cmd := cmdShowRunning
		if run.Defaults {
			cmd = cmdShowRunningAll
		}
		text, err := e.session.Fetch(ctx, cmd)
		if err != nil {
			return errors.Wrap(err, errors.CodeSessionError, "failed to fetch running configuration for backup")
		}
		contents = text
	}

	path, err := e.backups.Write(ctx, e.session.Host(), contents)
	if err != nil {
		return errors.Wrap(err, errors.CodeBackupError, "failed to write backup")
	}
	out.BackupPath = path
	e.logger.Infof(ctx, "Running configuration backed up to %s", path)
	return nil
}
