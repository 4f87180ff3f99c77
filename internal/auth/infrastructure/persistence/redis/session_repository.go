// Package redis 提供会话仓储的 Redis 实现
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrigrow/storefront/internal/auth/domain"
	"github.com/redis/go-redis/v9"
)

type sessionRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionRepository 创建 Redis 会话仓储
func NewSessionRepository(client redis.UniversalClient) domain.SessionRepository {
	return &sessionRepository{client: client, prefix: "auth:session:"}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.AuthSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	return r.client.Set(ctx, r.prefix+session.Token, data, ttl).Err()
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*domain.AuthSession, error) {
	data, err := r.client.Get(ctx, r.prefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session domain.AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.prefix+token).Err()
}
