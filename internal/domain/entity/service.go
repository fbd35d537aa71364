package entity

import "time"

// Service servicio del catálogo con precio sugerido.
type Service struct {
	ID                string
	Name              string
	DefaultPriceCents int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
