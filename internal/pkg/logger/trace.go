package logger

import (
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/security"
	"context"
	log "log/slog"
)

// TraceIDKey 请求链路 ID 在 Context 中的键
const TraceIDKey = "trace_id"

// AdminKey 日志中已登录管理员的字段名
const AdminKey = "admin"

// ContextHandler 从 ctx 取出 trace_id 与已校验的管理员身份附加到每条日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
		if claims, ok := ctx.Value(consts.ClaimsKey).(*security.AdminClaims); ok && claims != nil {
			r.AddAttrs(log.String(AdminKey, claims.Username))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}
