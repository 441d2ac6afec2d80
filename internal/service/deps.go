package service

import (
	"context"
	"io"
	"time"
)

// MediaStorage 媒体对象存储
type MediaStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
	GetPublicURL(objectName string) string
}

// OrphanQueue 待清理媒体队列
type OrphanQueue interface {
	EnqueueOrphans(ctx context.Context, keys ...string) error
}

// TokenRevoker 令牌吊销表
type TokenRevoker interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}
