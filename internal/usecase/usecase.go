package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

type Clock interface {
	Now() time.Time
}

// IDGenerator hands out entity ids.
type IDGenerator interface {
	NewID() uuid.UUID
}

// AuditIDGenerator hands out time ordered audit log ids.
type AuditIDGenerator interface {
	NextID() int64
}

// RoleChecker is the authorization half of the access guard.
type RoleChecker interface {
	RequireRole(user *model.User, role model.Role) (*model.User, error)
}

// AuditRecorder writes admin audit entries through whichever repository it is given,
// so callers can keep the entry inside their transaction.
type AuditRecorder struct {
	ids   AuditIDGenerator
	clock Clock
}

func NewAuditRecorder(ids AuditIDGenerator, clock Clock) *AuditRecorder {
	return &AuditRecorder{ids: ids, clock: clock}
}

type auditEntry struct {
	actor        uuid.UUID
	action       model.AuditAction
	resourceType model.AuditResourceType
	resourceID   string
	before       any
	after        any
}

func (a *AuditRecorder) record(ctx context.Context, logs repo.AuditLogRepository, e auditEntry) error {
	before, err := marshalAudit(e.before)
	if err != nil {
		return err
	}
	after, err := marshalAudit(e.after)
	if err != nil {
		return err
	}

	return logs.Create(ctx, model.AuditLog{
		ID:           a.ids.NextID(),
		ActorUserID:  e.actor,
		Action:       e.action,
		ResourceType: e.resourceType,
		ResourceID:   e.resourceID,
		BeforeJSON:   before,
		AfterJSON:    after,
		CreatedAt:    a.clock.Now(),
	})
}

func marshalAudit(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// pageLimit returns def when the caller sent no limit. An explicit limit must be in [1, maxLimit].
func pageLimit(limit *int, def, maxLimit int) (int, error) {
	if limit == nil {
		return def, nil
	}
	if *limit < 1 || *limit > maxLimit {
		return 0, apperr.ErrValidation.WithMessage(fmt.Sprintf("limit must be between 1 and %d", maxLimit))
	}
	return *limit, nil
}
