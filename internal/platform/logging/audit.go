package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit outcome values.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// LogAuditEvent records a security-relevant mutation (profile upsert,
// appointment create, credential change) in a shape log-based alerting can
// filter on. All fields live under the audit.* prefix.
func LogAuditEvent(ctx context.Context, action, userID, resourceType, resourceID, result string, details map[string]any) {
	LoggerFromContext(ctx).Info("Audit event",
		zap.String("audit.action", action),
		zap.String("audit.user_id", userID),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
