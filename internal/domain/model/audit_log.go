package model

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionUpdateStock    AuditAction = "UPDATE_STOCK"
	AuditActionCreateProduct  AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct  AuditAction = "UPDATE_PRODUCT"
	AuditActionDeleteProduct  AuditAction = "DELETE_PRODUCT"
	AuditActionChangeRole     AuditAction = "CHANGE_ROLE"
	AuditActionActivateUser   AuditAction = "ACTIVATE_USER"
	AuditActionDeactivateUser AuditAction = "DEACTIVATE_USER"
	AuditActionUpdateUser     AuditAction = "UPDATE_USER"
	AuditActionDeleteUser     AuditAction = "DELETE_USER"
	AuditActionCreateCategory AuditAction = "CREATE_CATEGORY"
	AuditActionUpdateCategory AuditAction = "UPDATE_CATEGORY"
	AuditActionDeleteCategory AuditAction = "DELETE_CATEGORY"
)

type AuditResourceType string

const (
	AuditResourceProduct  AuditResourceType = "product"
	AuditResourceCategory AuditResourceType = "category"
	AuditResourceUser     AuditResourceType = "user"
)

// AuditLog records an admin operation: who, what, on which resource, before and after.
type AuditLog struct {
	// snowflake id, time ordered
	ID int64 `gorm:"primaryKey;autoIncrement:false" json:"id,string"`

	ActorUserID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(64);not null;index" json:"resource_id"`

	// JSON text
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
