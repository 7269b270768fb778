package dto

import "github.com/SscSPs/bizdoc_app/internal/core/domain"

// ListAuditLogsParams defines query parameters for listing audit entries.
type ListAuditLogsParams struct {
	ResourceType string  `form:"resource_type" binding:"omitempty,oneof=quote contract access_token signature payment_request"`
	ResourceID   string  `form:"resource_id" binding:"omitempty,uuid"`
	Limit        int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken    *string `form:"nextToken"`
}

// ListAuditLogsResponse is a page of audit entries.
type ListAuditLogsResponse struct {
	Entries   []domain.AuditLogEntry `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToAuditFilter converts query parameters.
func (p ListAuditLogsParams) ToAuditFilter() domain.AuditFilter {
	return domain.AuditFilter{
		ResourceType: p.ResourceType,
		ResourceID:   p.ResourceID,
		Limit:        p.Limit,
		NextToken:    p.NextToken,
	}
}
