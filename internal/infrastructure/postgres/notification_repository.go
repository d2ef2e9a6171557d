package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo inserción masiva de notificaciones (usable con pool o tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

var notificationColumns = []string{"id", "company_id", "user_id", "title", "message", "read", "url", "created_at"}

// CreateBatch inserta todas las notificaciones con COPY.
func (r *NotificationRepo) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"notifications"}, notificationColumns,
		pgx.CopyFromSlice(len(notifications), func(i int) ([]any, error) {
			nt := notifications[i]
			return []any{nt.ID, nt.CompanyID, nt.UserID, nt.Title, nt.Message, nt.Read, nt.URL, nt.CreatedAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	if int(n) != len(notifications) {
		return fmt.Errorf("insert notifications: %d de %d filas", n, len(notifications))
	}
	return nil
}
