package postgres

import (
	"context"
	"fmt"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/repository"
)

var (
	_ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)
	_ repository.CityRepository          = (*CityRepo)(nil)
)

// PaymentMethodRepo formas de pago por empresa.
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

// GetByID obtiene la forma de pago de la empresa; (nil, nil) si no existe o es de otra empresa.
func (r *PaymentMethodRepo) GetByID(ctx context.Context, companyID, id string) (*entity.PaymentMethod, error) {
	query := `
		SELECT id, company_id, code, name, accepts_change, active
		FROM payment_methods WHERE id = $1 AND company_id = $2`
	var m entity.PaymentMethod
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&m.ID, &m.CompanyID, &m.Code, &m.Name, &m.AcceptsChange, &m.Active,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

// CityRepo catálogo global de ciudades (ver cmd/seed_cities).
type CityRepo struct {
	q Querier
}

// NewCityRepository construye el adaptador.
func NewCityRepository(q Querier) *CityRepo {
	return &CityRepo{q: q}
}

// GetByID obtiene una ciudad del catálogo.
func (r *CityRepo) GetByID(ctx context.Context, id string) (*entity.City, error) {
	var c entity.City
	err := r.q.QueryRow(ctx, `SELECT id, code, name, state FROM cities WHERE id = $1`, id).Scan(
		&c.ID, &c.Code, &c.Name, &c.State,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get city: %w", err)
	}
	return &c, nil
}
