package postgres

import (
	"context"
	"fmt"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// ListActiveByRoles usuarios activos de la empresa con alguno de los roles, en orden estable.
func (r *UserRepo) ListActiveByRoles(ctx context.Context, companyID string, roles []string) ([]*entity.User, error) {
	query := `
		SELECT id, company_id, email, name, role, status, created_at, updated_at
		FROM users
		WHERE company_id = $1 AND status = 'active' AND role = ANY($2)
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, companyID, roles)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Email, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
