package ordering

import (
	"github.com/maxsonaraujo/pdc-api/internal/domain/coupon"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Config parámetros del caso de uso de pedidos.
type Config struct {
	Tolerance      decimal.Decimal // diferencia aceptada en totales informados por el cliente
	NotifyRoles    []string        // roles que reciben aviso de pedido nuevo
	PublicURL      string          // base del enlace de la notificación
	Locale         string          // BCP 47, para formatear montos en el aviso
	CurrencySymbol string
}

func (c Config) withDefaults() Config {
	if !c.Tolerance.IsPositive() {
		c.Tolerance = coupon.DefaultTolerance
	}
	if len(c.NotifyRoles) == 0 {
		c.NotifyRoles = []string{entity.RoleAdmin, entity.RoleManager}
	}
	if c.PublicURL == "" {
		c.PublicURL = "/orders"
	}
	if c.Locale == "" {
		c.Locale = "pt-BR"
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = "R$"
	}
	return c
}
