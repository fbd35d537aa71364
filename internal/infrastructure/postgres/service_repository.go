package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo catálogo de servicios.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, name, default_price_cents, is_active, created_at, updated_at`

func scanService(row interface{ Scan(dest ...any) error }) (*entity.Service, error) {
	var s entity.Service
	if err := row.Scan(&s.ID, &s.Name, &s.DefaultPriceCents, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.DefaultPriceCents, s.IsActive, s.CreatedAt, s.UpdatedAt); err != nil {
		return wrapWrite("insert service", "servicio "+s.Name, err)
	}
	return nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	s, err := scanService(r.q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	return noRows(s, err, "get service")
}

func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services
		SET name = $2, default_price_cents = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.DefaultPriceCents, s.IsActive, s.UpdatedAt)
	if err != nil {
		return wrapWrite("update service", "servicio "+s.Name, err)
	}
	return expectOne(tag, "servicio", s.ID)
}

func (r *ServiceRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE ($1 = FALSE OR is_active) ORDER BY name`
	rows, err := r.q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
