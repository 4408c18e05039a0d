package app

import (
	"context"
	"io"

	"github.com/configsmith/device-reconciler/internal/core/ports"
)

// Application ties one reconciliation engine to its reporter and the
// session it must close when the run ends.
type Application struct {
	Engine   ports.ReconcileEngine
	Reporter ports.Reporter
	Logger   ports.Logger

	closer io.Closer
}

func NewApplication(engine ports.ReconcileEngine, reporter ports.Reporter, logger ports.Logger, closer io.Closer) *Application {
	return &Application{
		Engine:   engine,
		Reporter: reporter,
		Logger:   logger,
		closer:   closer,
	}
}

// Run executes the reconciliation and reports the outcome.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting configuration reconciliation...")
	defer func() {
		if a.closer != nil {
			if err := a.closer.Close(); err != nil {
				a.Logger.Warnf(ctx, "Failed to close device session: %v", err)
			}
		}
	}()

	outcome, err := a.Engine.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Reconciliation failed")
		return err
	}

	if err = a.Reporter.Report(ctx, outcome); err != nil {
		a.Logger.Errorf(ctx, err, "Failed to report outcome")
		return err
	}

	a.Logger.Infof(ctx, "Reconciliation completed successfully")
	return nil
}
