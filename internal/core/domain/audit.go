package domain

import "time"

// AuditAction is the kind of operation an audit entry records.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionSend   AuditAction = "send"
	AuditActionSign   AuditAction = "sign"
	AuditActionExport AuditAction = "export"
	AuditActionRead   AuditAction = "read"
)

// AuditStatus is the outcome of the audited attempt.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailure AuditStatus = "failure"
)

// Resource types recorded in the audit log besides the document types.
const (
	ResourceAccessToken    = "access_token"
	ResourceSignature      = "signature"
	ResourcePaymentRequest = "payment_request"
)

// AuditChanges holds before/after snapshots. Creates only carry After, deletes only Before.
type AuditChanges struct {
	Before any `json:"before,omitempty"`
	After  any `json:"after,omitempty"`
}

// AuditLogEntry is one write-once row of the audit ledger.
type AuditLogEntry struct {
	AuditLogID   string          `json:"auditLogID"`
	UserID       string          `json:"userID,omitempty"`
	ActorRole    ActorRole       `json:"actorRole"`
	Action       AuditAction     `json:"action"`
	ResourceType string          `json:"resourceType"`
	ResourceID   string          `json:"resourceID"`
	Changes      *AuditChanges   `json:"changes,omitempty"`
	Status       AuditStatus     `json:"status"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Metadata     RequestMetadata `json:"metadata"`
	Timestamp    time.Time       `json:"timestamp"`
}

// AuditFilter narrows an owner's audit log listing.
type AuditFilter struct {
	ResourceType string
	ResourceID   string
	Limit        int
	NextToken    *string
}
