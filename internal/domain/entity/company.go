package entity

import "time"

// Company representa un tenant del sistema (un restaurante o negocio).
// Todas las demás entidades se aíslan por CompanyID.
type Company struct {
	ID        string
	Name      string
	Slug      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el tenant puede operar.
func (c *Company) IsActive() bool { return c.Status == "active" }
