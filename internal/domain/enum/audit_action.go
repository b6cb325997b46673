package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AuditAction represents a console mutation recorded in the audit log
type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionSoftDelete AuditAction = "soft_delete"
	AuditActionDelete     AuditAction = "delete"
	AuditActionReorder    AuditAction = "reorder"
)

func (a AuditAction) String() string {
	return string(a)
}

func (a AuditAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a AuditAction) Value() (driver.Value, error) {
	return string(a), nil
}

func (a *AuditAction) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*a = AuditAction(v)
	case []byte:
		*a = AuditAction(string(v))
	}
	return nil
}
