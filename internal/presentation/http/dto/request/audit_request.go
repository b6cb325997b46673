package request

// AuditLogFilterRequest represents audit log filter parameters
type AuditLogFilterRequest struct {
	Resource string `form:"resource"`
	Action   string `form:"action"`
	RecordID string `form:"record_id"`
	Mine     bool   `form:"mine"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
