package postgres

import (
	"context"
	"fmt"

	"github.com/maxsonaraujo/pdc-api/internal/domain"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var _ repository.IdempotencyRepository = (*IdempotencyRepo)(nil)

// IdempotencyRepo claves de idempotencia, únicas por (company_id, scope, key).
type IdempotencyRepo struct {
	q Querier
}

// NewIdempotencyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIdempotencyRepository(q Querier) *IdempotencyRepo {
	return &IdempotencyRepo{q: q}
}

// Get devuelve el registro guardado o (nil, nil).
func (r *IdempotencyRepo) Get(ctx context.Context, companyID, scope, key string) (*entity.IdempotencyRecord, error) {
	query := `
		SELECT company_id, scope, key, resource_id, response, created_at
		FROM idempotency_keys WHERE company_id = $1 AND scope = $2 AND key = $3`
	var rec entity.IdempotencyRecord
	err := r.q.QueryRow(ctx, query, companyID, scope, key).Scan(
		&rec.CompanyID, &rec.Scope, &rec.Key, &rec.ResourceID, &rec.Response, &rec.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	return &rec, nil
}

// Create guarda la respuesta. Una clave repetida devuelve domain.ErrDuplicate y, dentro de una tx,
// la deja abortada: el caso de uso debe hacer Rollback y releer fuera de ella.
func (r *IdempotencyRepo) Create(ctx context.Context, rec *entity.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_keys (company_id, scope, key, resource_id, response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, rec.CompanyID, rec.Scope, rec.Key, rec.ResourceID, rec.Response, rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert idempotency key: %w", err)
	}
	return nil
}
