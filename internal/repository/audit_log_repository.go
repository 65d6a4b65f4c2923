package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/model"
)

type AuditLogFilter struct {
	ActorUserID  *uuid.UUID
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// List returns newest first.
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
