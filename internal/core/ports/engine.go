package ports

import (
	"context"

	"github.com/configsmith/device-reconciler/internal/core/domain"
)

type ReconcileEngine interface {
	Run(ctx context.Context) (*domain.Outcome, error)
}
