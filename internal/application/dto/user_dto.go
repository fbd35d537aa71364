package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name          string `json:"name"`     // 1..32, sin espacios
	Password      string `json:"password"` // ≥ 6
	IsAdmin       bool   `json:"is_admin"`
	IsActive      *bool  `json:"is_active"` // nil = true
	CommissionPct int    `json:"commission_pct"`
}

// UpdateUserRequest PATCH de usuario (admin).
type UpdateUserRequest struct {
	IsAdmin       *bool `json:"is_admin"`
	IsActive      *bool `json:"is_active"`
	CommissionPct *int  `json:"commission_pct"`
}

// ResetPasswordRequest POST /api/admin/users/:id/password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	IsAdmin       bool      `json:"is_admin"`
	IsActive      bool      `json:"is_active"`
	CommissionPct int       `json:"commission_pct"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PerformerResponse ejecutor activo seleccionable en una línea de trabajo.
type PerformerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsAdmin       bool   `json:"is_admin"`
	CommissionPct int    `json:"commission_pct"`
}

// LoginRequest entrada para login por nombre de usuario.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// MeResponse identidad de la sesión.
type MeResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string     `json:"token"`
	User  MeResponse `json:"user"`
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// CreateServiceRequest POST /api/admin/services.
type CreateServiceRequest struct {
	Name              string `json:"name"` // 1..60, único
	DefaultPriceCents int64  `json:"default_price_cents"`
	IsActive          *bool  `json:"is_active"`
}

// UpdateServiceRequest PATCH /api/admin/services/:id.
type UpdateServiceRequest struct {
	Name              *string `json:"name"`
	DefaultPriceCents *int64  `json:"default_price_cents"`
	IsActive          *bool   `json:"is_active"`
}

// ServiceResponse servicio del catálogo.
type ServiceResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DefaultPriceCents int64  `json:"default_price_cents"`
	IsActive          bool   `json:"is_active"`
}
