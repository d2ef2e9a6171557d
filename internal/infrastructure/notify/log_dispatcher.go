package notify

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/application/ordering"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

var _ ordering.NotificationDispatcher = (*LogDispatcher)(nil)

// LogDispatcher registra cada notificación en el log en lugar de enviarla (push/email).
// Es el adaptador por defecto hasta conectar un proveedor externo.
type LogDispatcher struct {
	log *logger.Logger
}

// NewLogDispatcher construye el dispatcher.
func NewLogDispatcher(log *logger.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

// Dispatch no devuelve error: una falla de entrega no afecta al pedido ya confirmado.
func (d *LogDispatcher) Dispatch(ctx context.Context, notifications []*entity.Notification) {
	for _, n := range notifications {
		if ctx.Err() != nil {
			d.log.Warn().Int("pending", len(notifications)).Msg("notify: contexto cancelado")
			return
		}
		d.log.Info().
			Str("tenant_id", n.CompanyID).
			Str("user_id", n.UserID).
			Str("notification_id", n.ID).
			Str("title", n.Title).
			Str("url", n.URL).
			Msg("notificación despachada")
	}
}
