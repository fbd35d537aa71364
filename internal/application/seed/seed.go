// Package seed carga los datos iniciales del taller: el admin, y opcionalmente
// maestros de ejemplo y el catálogo de servicios. Todas las altas son upsert por nombre,
// así que se puede ejecutar varias veces.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// AdminName nombre del administrador inicial.
const AdminName = "admin"

// Options contraseñas y alcance del seed.
type Options struct {
	AdminPassword  string
	MasterPassword string
	SampleData     bool
	Catalog        []ServiceRow // se suma al catálogo de ejemplo; mismo nombre = actualiza precio
}

// ServiceRow fila del catálogo (nombre + precio sugerido en centavos).
type ServiceRow struct {
	Name              string
	DefaultPriceCents int64
}

// Result resumen para el log del comando.
type Result struct {
	Users    int
	Services int
}

var sampleMasters = []struct {
	name string
	pct  int
}{
	{"master1", 40},
	{"master2", 35},
}

var sampleServices = []ServiceRow{
	{"Диагностика", 100_000},
	{"Настройка", 150_000},
	{"Пайка", 50_000},
	{"Экранирование", 250_000},
}

// Run aplica el seed en una sola transacción.
func Run(ctx context.Context, tx ports.TxRunner, opts Options, now func() time.Time) (Result, error) {
	if now == nil {
		now = time.Now
	}
	if opts.AdminPassword == "" {
		return Result{}, fmt.Errorf("seed: contraseña de admin vacía")
	}
	var res Result
	err := tx.Run(ctx, func(r ports.Repos) error {
		ts := now().UTC()
		if err := upsertUser(ctx, r, AdminName, opts.AdminPassword, 0, true, ts); err != nil {
			return err
		}
		res.Users++

		catalog := opts.Catalog
		if opts.SampleData {
			if opts.MasterPassword == "" {
				return fmt.Errorf("seed: contraseña de maestros vacía")
			}
			for _, m := range sampleMasters {
				if err := upsertUser(ctx, r, m.name, opts.MasterPassword, m.pct, false, ts); err != nil {
					return err
				}
				res.Users++
			}
			catalog = append(append([]ServiceRow{}, sampleServices...), catalog...)
		}
		if len(catalog) == 0 {
			return nil
		}

		existing, err := r.Services.List(ctx, false)
		if err != nil {
			return err
		}
		byName := make(map[string]*entity.Service, len(existing))
		for _, s := range existing {
			byName[s.Name] = s
		}
		for _, row := range catalog {
			if cur, ok := byName[row.Name]; ok {
				cur.DefaultPriceCents = row.DefaultPriceCents
				cur.IsActive = true
				cur.UpdatedAt = ts
				if err := r.Services.Update(ctx, cur); err != nil {
					return fmt.Errorf("seed: servicio %q: %w", row.Name, err)
				}
			} else {
				s := &entity.Service{
					ID:                uuid.New().String(),
					Name:              row.Name,
					DefaultPriceCents: row.DefaultPriceCents,
					IsActive:          true,
					CreatedAt:         ts,
					UpdatedAt:         ts,
				}
				if err := r.Services.Create(ctx, s); err != nil {
					return fmt.Errorf("seed: servicio %q: %w", row.Name, err)
				}
				byName[s.Name] = s
			}
			res.Services++
		}
		return nil
	})
	return res, err
}

func upsertUser(ctx context.Context, r ports.Repos, name, password string, pct int, isAdmin bool, ts time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash de %s: %w", name, err)
	}
	cur, err := r.Users.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if cur != nil {
		cur.PasswordHash = string(hash)
		cur.IsAdmin = isAdmin
		cur.IsActive = true
		cur.CommissionPct = pct
		cur.UpdatedAt = ts
		return r.Users.Update(ctx, cur)
	}
	return r.Users.Create(ctx, &entity.User{
		ID:            uuid.New().String(),
		Name:          name,
		PasswordHash:  string(hash),
		IsAdmin:       isAdmin,
		IsActive:      true,
		CommissionPct: pct,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	})
}
