package entity

import "time"

// Ámbitos de claves de idempotencia.
const (
	IdempotencyScopeCreateOrder     = "order.create"
	IdempotencyScopeReceivePurchase = "purchase.receive"
)

// IdempotencyRecord respuesta guardada para una clave del cliente; una repetición la devuelve tal cual.
type IdempotencyRecord struct {
	CompanyID  string
	Scope      string
	Key        string
	ResourceID string
	Response   []byte // JSON de la respuesta original
	CreatedAt  time.Time
}
