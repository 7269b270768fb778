package models

import "time"

// AuditChanges is stored in the changes JSONB column.
type AuditChanges struct {
	Before any `json:"before,omitempty"`
	After  any `json:"after,omitempty"`
}

// AuditMetadata is stored in the metadata JSONB column.
type AuditMetadata struct {
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// AuditLog represents a row of the append-only audit_logs table.
type AuditLog struct {
	AuditLogID   string        `db:"audit_log_id"`
	UserID       *string       `db:"user_id"`
	ActorRole    string        `db:"actor_role"`
	Action       string        `db:"action"`
	ResourceType string        `db:"resource_type"`
	ResourceID   string        `db:"resource_id"`
	Changes      *AuditChanges `db:"changes"`
	Status       string        `db:"status"`
	ErrorMessage *string       `db:"error_message"`
	Metadata     AuditMetadata `db:"metadata"`
	Timestamp    time.Time     `db:"timestamp"`
}
