package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, password_hash, is_admin, is_active, commission_pct, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.IsActive, &u.CommissionPct,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario. Nombre repetido = domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.PasswordHash, u.IsAdmin, u.IsActive, u.CommissionPct, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return wrapWrite("insert user", "usuario "+u.Name, err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return noRows(u, err, "get user by id")
}

// GetByName búsqueda exacta para el login.
func (r *UserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1`, name))
	return noRows(u, err, "get user by name")
}

// Update actualiza datos del usuario (incluido el hash si cambió).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, password_hash = $3, is_admin = $4, is_active = $5, commission_pct = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Name, u.PasswordHash, u.IsAdmin, u.IsActive, u.CommissionPct, u.UpdatedAt)
	if err != nil {
		return wrapWrite("update user", "usuario "+u.Name, err)
	}
	return expectOne(tag, "usuario", u.ID)
}

// List ordenado por nombre.
func (r *UserRepo) List(ctx context.Context, activeOnly bool) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ($1 = FALSE OR is_active) ORDER BY name`
	rows, err := r.q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UserRepo) CountActiveAdmins(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_admin AND is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active admins: %w", err)
	}
	return n, nil
}
