package ordering

import (
	"fmt"
	"time"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// Prefijos de número de pedido por canal.
const (
	PrefixDelivery = "DLV"
	PrefixPickup   = "PKP"
)

// FormatNumber arma el número visible del pedido: <canal>-<aaaammdd>-<consecutivo>.
// El consecutivo es por empresa y monótono, así dos pedidos del mismo segundo no colisionan.
func FormatNumber(orderType string, placedAt time.Time, seq int64) string {
	prefix := PrefixPickup
	if orderType == entity.OrderTypeDelivery {
		prefix = PrefixDelivery
	}
	return fmt.Sprintf("%s-%s-%06d", prefix, placedAt.Format("20060102"), seq)
}

// ChannelLabel nombre legible del canal para notificaciones.
func ChannelLabel(orderType string) string {
	if orderType == entity.OrderTypeDelivery {
		return "Delivery"
	}
	return "Retiro en local"
}
