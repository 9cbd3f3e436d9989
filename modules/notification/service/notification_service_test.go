package service

import (
	"context"
	"testing"
	"trainhub-api/core/entity"
	"trainhub-api/core/params"
	notificationEntity "trainhub-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotifications struct {
	items []notificationEntity.Notification
}

func (m *memNotifications) Create(_ context.Context, n *notificationEntity.Notification) error {
	n.ID = uuid.New()
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) ListForUser(_ context.Context, userID uuid.UUID, unreadOnly bool, p params.QueryParams) (*notificationEntity.PaginatedNotificationEntity, error) {
	var out []notificationEntity.Notification
	for _, n := range m.items {
		if n.UserID == userID && !(unreadOnly && n.IsRead) {
			out = append(out, n)
		}
	}
	return entity.NewPagination(out, len(out), p.PageNumber, p.PageSize), nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	for i := range m.items {
		for _, id := range ids {
			if m.items[i].ID == id && m.items[i].UserID == userID {
				m.items[i].IsRead = true
			}
		}
	}
	return nil
}

func (m *memNotifications) MarkAllAsRead(_ context.Context, userID uuid.UUID) error {
	for i := range m.items {
		if m.items[i].UserID == userID {
			m.items[i].IsRead = true
		}
	}
	return nil
}

func (m *memNotifications) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, item := range m.items {
		if item.UserID == userID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func TestNotificationService_NotifyAndRead(t *testing.T) {
	ctx := context.Background()
	store := &memNotifications{}
	svc := NewNotificationService(store)
	user, other := uuid.New(), uuid.New()

	require.NoError(t, svc.Notify(ctx, user, "Class scheduled", "Math on MON", "schedule", map[string]any{"schedule_id": "x"}))
	require.NoError(t, svc.Notify(ctx, user, "Export ready", "report.xlsx", "report", nil))
	require.NoError(t, svc.Notify(ctx, other, "Class cancelled", "Art", "schedule", nil))

	count, appErr := svc.CountUnread(ctx, user)
	require.Nil(t, appErr)
	assert.Equal(t, 2, count)

	page, appErr := svc.GetMyNotifications(ctx, user, false, params.QueryParams{PageNumber: 1, PageSize: 10})
	require.Nil(t, appErr)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "x", page.Items[0].Data["schedule_id"])

	require.Nil(t, svc.MarkAsRead(ctx, user, []uuid.UUID{page.Items[0].ID}))
	count, _ = svc.CountUnread(ctx, user)
	assert.Equal(t, 1, count)

	unread, appErr := svc.GetMyNotifications(ctx, user, true, params.QueryParams{PageNumber: 1, PageSize: 10})
	require.Nil(t, appErr)
	require.Len(t, unread.Items, 1)
	assert.Equal(t, page.Items[1].ID, unread.Items[0].ID)

	require.Nil(t, svc.MarkAllAsRead(ctx, user))
	count, _ = svc.CountUnread(ctx, user)
	assert.Equal(t, 0, count)

	count, _ = svc.CountUnread(ctx, other)
	assert.Equal(t, 1, count)
}
