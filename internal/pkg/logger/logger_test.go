package logger

import (
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/security"
	"bytes"
	"context"
	"errors"
	log "log/slog"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	ctx := context.WithValue(context.Background(), TraceIDKey, "trace-1")
	l.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "trace-1", rec["trace_id"])
}

func TestRemoteFilterOnlyTraced(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{tee})

	l.Info("startup")
	assert.NotEmpty(t, local.String())
	assert.Empty(t, remote.String())

	l.InfoContext(context.WithValue(context.Background(), TraceIDKey, "t"), "request")
	assert.Contains(t, remote.String(), `"trace_id":"t"`)
}

func TestContextHandlerAddsAdmin(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)}).With("component", "test")

	claims := &security.AdminClaims{Username: "root"}
	ctx := context.WithValue(context.Background(), consts.ClaimsKey, claims)
	l.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "root", rec[AdminKey])
	assert.Equal(t, "test", rec["component"])
}

type failingHandler struct{ log.Handler }

func (failingHandler) Handle(context.Context, log.Record) error { return errors.New("sink down") }

func TestTeeHandlerKeepsWritingAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		failingHandler{log.NewJSONHandler(&bytes.Buffer{}, nil)},
		log.NewJSONHandler(&buf, &log.HandlerOptions{Level: log.LevelDebug}),
	}}

	assert.True(t, tee.Enabled(context.Background(), log.LevelDebug))
	err := tee.Handle(context.Background(), log.NewRecord(time.Now(), log.LevelInfo, "msg", 0))
	assert.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"msg"`)
}

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { log.SetDefault(prev) })
	return &buf
}

func TestRedisHookRedactsRevocationKeys(t *testing.T) {
	buf := captureDefault(t)
	ctx := context.Background()
	hook := NewRedisLogger()

	slow := hook.ProcessHook(func(context.Context, redis.Cmder) error {
		time.Sleep(120 * time.Millisecond)
		return nil
	})
	require.NoError(t, slow(ctx, redis.NewStringCmd(ctx, "get", consts.TokenRevokedKey+"jti-secret")))

	failing := hook.ProcessHook(func(context.Context, redis.Cmder) error { return errors.New("boom") })
	assert.Error(t, failing(ctx, redis.NewStatusCmd(ctx, "set", consts.TokenRevokedKey+"jti-secret", 1)))

	assert.Contains(t, buf.String(), "Redis Slow")
	assert.Contains(t, buf.String(), "Redis Error")
	assert.Contains(t, buf.String(), redactedArgs)
	assert.NotContains(t, buf.String(), "jti-secret")
}

func TestRedisHookLogsOrdinaryArgs(t *testing.T) {
	buf := captureDefault(t)
	ctx := context.Background()

	failing := NewRedisLogger().ProcessHook(func(context.Context, redis.Cmder) error { return errors.New("boom") })
	assert.Error(t, failing(ctx, redis.NewIntCmd(ctx, "sadd", consts.MediaOrphanKey, "2026/01/01/a.png")))
	assert.Contains(t, buf.String(), "2026/01/01/a.png")

	buf.Reset()
	missing := NewRedisLogger().ProcessHook(func(context.Context, redis.Cmder) error { return redis.Nil })
	assert.ErrorIs(t, missing(ctx, redis.NewStringCmd(ctx, "get", "k")), redis.Nil)
	assert.Empty(t, buf.String())
}
