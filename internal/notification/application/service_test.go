package application

import (
	"context"
	"errors"
	"testing"

	"github.com/agrigrow/storefront/internal/notification/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryNotificationRepository struct {
	notifications []*domain.Notification
	nextID        uint
}

func newMemoryNotificationRepository() *memoryNotificationRepository {
	return &memoryNotificationRepository{nextID: 1}
}

func (r *memoryNotificationRepository) Save(_ context.Context, n *domain.Notification) error {
	if n.ID == 0 {
		n.ID = r.nextID
		r.nextID++
		r.notifications = append(r.notifications, n)
		return nil
	}
	for i, existing := range r.notifications {
		if existing.ID == n.ID {
			r.notifications[i] = n
			return nil
		}
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *memoryNotificationRepository) ListByUser(_ context.Context, userID string, offset, limit int) ([]*domain.Notification, int64, error) {
	var matched []*domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			matched = append(matched, n)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type failingSender struct{ err error }

func (s *failingSender) Send(_ context.Context, _, _, _ string) error { return s.err }

func TestOrderPlacedNotificationIsRecordedAndSent(t *testing.T) {
	repo := newMemoryNotificationRepository()
	svc := NewNotificationApplicationService(repo, &failingSender{})
	ctx := context.Background()

	err := svc.HandleOrderPlaced(ctx, OrderPlacedNotice{
		OrderID:     "ORD000001",
		UserID:      "42",
		TotalAmount: "532.00",
		ItemCount:   2,
	})
	require.NoError(t, err)

	list, total, err := svc.ListNotifications(ctx, "42", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationTypeOrderPlaced, list[0].Type)
	assert.Equal(t, domain.NotificationStatusSent, list[0].Status)
	assert.NotNil(t, list[0].SentAt)
	assert.Contains(t, list[0].Content, "ORD000001")
}

func TestSendFailureIsRecorded(t *testing.T) {
	repo := newMemoryNotificationRepository()
	svc := NewNotificationApplicationService(repo, &failingSender{err: errors.New("sms gateway down")})
	ctx := context.Background()

	err := svc.HandleOrderStatusChanged(ctx, OrderStatusNotice{
		OrderID:   "ORD000001",
		UserID:    "42",
		NewStatus: "CONFIRMED",
	})
	require.Error(t, err)

	list, _, err := svc.ListNotifications(ctx, "42", 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationStatusFailed, list[0].Status)
	assert.Contains(t, list[0].ErrorMessage, "sms gateway down")
}

func TestNotificationsAreScopedToUser(t *testing.T) {
	repo := newMemoryNotificationRepository()
	svc := NewNotificationApplicationService(repo, &failingSender{})
	ctx := context.Background()

	require.NoError(t, svc.HandleOrderPlaced(ctx, OrderPlacedNotice{OrderID: "ORD1", UserID: "42"}))
	require.NoError(t, svc.HandleOrderPlaced(ctx, OrderPlacedNotice{OrderID: "ORD2", UserID: "99"}))

	_, total, err := svc.ListNotifications(ctx, "42", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
