package service

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/pkg/security"
	"Chronicle/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"
)

type AuthService interface {
	Authenticate(ctx context.Context, cred *dto.CredentialDTO) (string, *dto.SessionDTO, error)
	Authorize(ctx context.Context, token string) (*security.AdminClaims, error)
	Logout(ctx context.Context, token string)
	TokenTTL() time.Duration
}

type authServiceImpl struct {
	adminRepo repository.AdminRepo
	tokens    *security.TokenManager
	revoker   TokenRevoker
}

func NewAuthService(adminRepo repository.AdminRepo, tokens *security.TokenManager, revoker TokenRevoker) AuthService {
	return &authServiceImpl{
		adminRepo: adminRepo,
		tokens:    tokens,
		revoker:   revoker,
	}
}

// Authenticate 校验账号密码并签发令牌
func (s *authServiceImpl) Authenticate(ctx context.Context, cred *dto.CredentialDTO) (string, *dto.SessionDTO, error) {
	admin, err := s.adminRepo.GetAdminByUsername(ctx, cred.Username)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if admin == nil {
		return "", nil, ErrAccountNotFound
	}
	if err = security.CheckPasswordHash(cred.Password, admin.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(admin.ID.Hex(), admin.Username)
	if err != nil {
		return "", nil, err
	}
	log.InfoContext(ctx, "admin logged in", "username", admin.Username)
	return token, &dto.SessionDTO{
		Username:  admin.Username,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// Authorize 校验令牌, 已吊销的令牌视为无效
func (s *authServiceImpl) Authorize(ctx context.Context, token string) (*security.AdminClaims, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	revoked, err := s.revoker.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		// 吊销表不可用时拒绝放行
		log.ErrorContext(ctx, "check token revocation failed", "err", err)
		return nil, ErrTokenInvalid
	}
	if revoked {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Logout 仍有效令牌的 jti 加入吊销表直到过期, 失败只记录日志
func (s *authServiceImpl) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err = s.revoker.RevokeToken(ctx, claims.ID, ttl); err != nil {
		log.WarnContext(ctx, "revoke token failed", "username", claims.Username, "err", err)
	}
}

func (s *authServiceImpl) TokenTTL() time.Duration {
	return s.tokens.TTL()
}
