package ports

import (
	"context"

	"github.com/configsmith/device-reconciler/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, outcome *domain.Outcome) error
}
