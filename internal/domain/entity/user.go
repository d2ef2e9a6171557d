package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// User representa un usuario de la empresa. La autenticación vive fuera del core;
// aquí solo importa para atribuir movimientos y repartir notificaciones.
type User struct {
	ID        string
	CompanyID string
	Email     string
	Name      string
	Role      string // admin, manager, operator
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
