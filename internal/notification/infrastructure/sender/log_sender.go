// Package sender 提供通知发送实现。短信/邮件渠道尚未接入，
// 当前仅有结构化日志实现。
package sender

import (
	"context"

	"github.com/agrigrow/storefront/internal/notification/domain"
	"github.com/agrigrow/storefront/pkg/logger"
)

type logSender struct{}

// NewLogSender 创建日志发送器
func NewLogSender() domain.Sender {
	return &logSender{}
}

func (s *logSender) Send(ctx context.Context, userID, subject, content string) error {
	logger.Info(ctx, "notification sent", "user_id", userID, "subject", subject, "content", content)
	return nil
}
