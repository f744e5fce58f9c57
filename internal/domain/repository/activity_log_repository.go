package repository

import (
	"context"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ActivityLogRepository bitácora de solo inserción.
type ActivityLogRepository interface {
	Append(ctx context.Context, log *entity.ActivityLog) error
	List(ctx context.Context, filter entity.ActivityFilter) ([]*entity.ActivityLog, error)
}
