package repository

import (
	"context"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
)

// UserRepository consulta usuarios de la empresa para atribución y notificaciones.
type UserRepository interface {
	ListActiveByRoles(ctx context.Context, companyID string, roles []string) ([]*entity.User, error)
}
