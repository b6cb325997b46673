package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"gorm.io/gorm"
)

// AuditLog records one mutation an operator sent to the loyalty API through the console
type AuditLog struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OperatorID string           `gorm:"size:64;not null;index" json:"operator_id"`
	Operator   string           `gorm:"size:255" json:"operator"`
	Action     enum.AuditAction `gorm:"size:32;not null" json:"action"`
	Resource   string           `gorm:"size:64;not null;index" json:"resource"`
	RecordID   string           `gorm:"size:64" json:"record_id,omitempty"`
	Succeeded  bool             `gorm:"not null" json:"succeeded"`
	Message    string           `gorm:"type:text" json:"message,omitempty"`
	RequestID  string           `gorm:"size:64" json:"request_id,omitempty"`
	CreatedAt  time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

// BeforeCreate generates a UUID before inserting the entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
