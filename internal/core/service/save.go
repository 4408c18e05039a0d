package service

import (
	"context"

	"github.com/configsmith/device-reconciler/internal/core/domain"
	"github.com/configsmith/device-reconciler/internal/errors"
	"github.com/configsmith/device-reconciler/pkg/lineseq"
)

// decideSave applies the save-when policy. For the modified policy, fresh
// running and startup snapshots are fetched, ignore lines removed and
// content fingerprints compared; the device is saved only when they differ.
func (e *Engine) decideSave(ctx context.Context, out *domain.Outcome, ignore lineseq.IgnoreSet) error {
	switch e.cfg.Run.SaveWhen {
	case domain.SaveAlways:
		return e.persist(ctx, out)

	case domain.SaveNever:
		return nil

	case domain.SaveModified:
		runningText, err := e.session.Fetch(ctx, cmdShowRunning)
		if err != nil {
			return errors.Wrap(err, errors.CodeSessionError, "failed to fetch running configuration for save comparison")
		}
		startupText, err := e.session.Fetch(ctx, cmdShowStartup)
		if err != nil {
			return errors.Wrap(err, errors.CodeSessionError, "failed to fetch startup configuration for save comparison")
		}

		runningFP := lineseq.Fingerprint(lineseq.FromText(runningText).WithoutIgnored(ignore))
		startupFP := lineseq.Fingerprint(lineseq.FromText(startupText).WithoutIgnored(ignore))
		if runningFP != startupFP {
			return e.persist(ctx, out)
		}
		e.logger.Debugf(ctx, "Running and startup fingerprints match, skipping save")
		return nil

	case domain.SaveChanged:
		if out.Changed {
			return e.persist(ctx, out)
		}
		return nil
	}
	return nil
}

// persist issues the save command, or records a warning instead when
// running in check mode. Check mode never persists, regardless of policy.
func (e *Engine) persist(ctx context.Context, out *domain.Outcome) error {
	if e.cfg.Run.CheckMode {
		const msg = "Skipping command `write memory` due to check mode. Configuration not copied to non-volatile storage"
		out.Warn(msg)
		e.logger.Warnf(ctx, msg)
		return nil
	}

	if err := e.session.Persist(ctx); err != nil {
		return errors.Wrap(err, errors.CodeSessionError, "failed to persist running configuration")
	}
	out.Saved = true
	e.logger.Infof(ctx, "Running configuration copied to startup configuration")
	return nil
}
