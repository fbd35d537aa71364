package entity

import "time"

// User usuario del taller: administrador o maestro (ejecutor de trabajos).
// Nunca se elimina; sólo se desactiva.
type User struct {
	ID            string
	Name          string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	IsAdmin       bool
	IsActive      bool
	CommissionPct int // 0..100; siempre 0 para admin
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveCommissionPct porcentaje aplicable al crear una línea de trabajo.
func (u *User) EffectiveCommissionPct() int {
	if u.IsAdmin {
		return 0
	}
	return u.CommissionPct
}

// Actor identidad ya autenticada que invoca una operación.
type Actor struct {
	UserID  string
	Name    string
	IsAdmin bool
}
