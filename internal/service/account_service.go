package service

import (
	"Chronicle/internal/model"
	"Chronicle/internal/pkg/security"
	"Chronicle/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const minPasswordLength = 8

// AccountService 管理员账号维护, 仅供命令行使用
type AccountService interface {
	CreateAdmin(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, username, password string) error
}

type accountServiceImpl struct {
	adminRepo repository.AdminRepo
	now       func() time.Time
}

func NewAccountService(adminRepo repository.AdminRepo) AccountService {
	return &accountServiceImpl{
		adminRepo: adminRepo,
		now:       time.Now,
	}
}

func (s *accountServiceImpl) CreateAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrValidation
	}
	hash, err := hashNewPassword(password)
	if err != nil {
		return err
	}

	now := s.now()
	err = s.adminRepo.CreateAdmin(ctx, &model.Admin{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAdminExists) {
			return ErrAccountExists
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *accountServiceImpl) ChangePassword(ctx context.Context, username, password string) error {
	hash, err := hashNewPassword(password)
	if err != nil {
		return err
	}
	if err = s.adminRepo.UpdatePassword(ctx, strings.TrimSpace(username), hash, s.now()); err != nil {
		if repository.IsNotFound(err) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func hashNewPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	return security.HashPassword(password)
}
