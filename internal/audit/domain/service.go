package domain

import (
	"context"
	"errors"
)

type ListAuditLogRequest struct {
	EntityID string
	Action   string
	Actor    string
	Limit    int
}

type ListAuditLogResponse struct {
	AuditLogs []AuditLog `json:"audit_logs"`
}

// Service records trail entries best-effort: Record never fails the caller,
// a lost entry is logged and counted, nothing more.
type Service interface {
	Record(ctx context.Context, entityID, action, detail, actor string, metadata map[string]any)
	RecordChanges(ctx context.Context, entityID, action, actor string, changes []FieldChange)
	List(ctx context.Context, req ListAuditLogRequest) (ListAuditLogResponse, error)
}

var (
	ErrInvalidAction = errors.New("invalid_action")
)
