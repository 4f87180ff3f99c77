// Package application 实现注册、登录与会话识别
package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/agrigrow/storefront/internal/auth/domain"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 会话有效期
const sessionTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials 邮箱或密码不正确
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrEmailTaken 邮箱已注册
	ErrEmailTaken = errors.New("auth: email already registered")
	// ErrSessionNotFound 会话不存在或已过期
	ErrSessionNotFound = errors.New("auth: session not found")
)

// CartCleaner 购物车协作方端口，登出时清空购物车
type CartCleaner interface {
	ClearCart(ctx context.Context, userID string) error
}

// AuthApplicationService 认证应用服务
type AuthApplicationService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	carts    CartCleaner
}

// NewAuthApplicationService 创建认证应用服务实例
func NewAuthApplicationService(users domain.UserRepository, sessions domain.SessionRepository, carts CartCleaner) *AuthApplicationService {
	return &AuthApplicationService{users: users, sessions: sessions, carts: carts}
}

// Register 注册新用户
func (s *AuthApplicationService) Register(ctx context.Context, email, password string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(email, string(hash))
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(user.ID), 10), nil
}

// Login 校验凭证并建立会话，返回会话令牌
func (s *AuthApplicationService) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.AuthSession{
		Token:     uuid.New().String(),
		UserID:    strconv.FormatUint(uint64(user.ID), 10),
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Logout 删除会话并清空用户购物车
func (s *AuthApplicationService) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}
	if s.carts != nil {
		if err := s.carts.ClearCart(ctx, session.UserID); err != nil {
			logger.Warn(ctx, "failed to clear cart on logout", "user_id", session.UserID, "error", err)
		}
	}
	return nil
}

// Identify 根据令牌识别当前用户
func (s *AuthApplicationService) Identify(ctx context.Context, token string) (*domain.AuthSession, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetProfile 获取用户资料
func (s *AuthApplicationService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q", userID)
	}
	return s.users.GetByID(ctx, uint(id))
}

// UpdateProfile 更新用户资料
func (s *AuthApplicationService) UpdateProfile(ctx context.Context, user *domain.User) error {
	return s.users.Save(ctx, user)
}
