package entity

import (
	"time"

	"github.com/jhoicas/taller-api/internal/domain/audit"
)

// AuditAction acción registrada en el log.
type AuditAction string

const (
	ActionCreate       AuditAction = "CREATE"
	ActionUpdate       AuditAction = "UPDATE"
	ActionDelete       AuditAction = "DELETE"
	ActionStatusChange AuditAction = "STATUS_CHANGE"
	ActionLogin        AuditAction = "LOGIN"
	ActionLogout       AuditAction = "LOGOUT"
)

// AuditEntity tipo de entidad afectada.
type AuditEntity string

const (
	AuditOrder     AuditEntity = "ORDER"
	AuditOrderWork AuditEntity = "ORDER_WORK"
	AuditOrderPart AuditEntity = "ORDER_PART"
	AuditExpense   AuditEntity = "EXPENSE"
	AuditComment   AuditEntity = "COMMENT"
	AuditUser      AuditEntity = "USER"
	AuditService   AuditEntity = "SERVICE"
	AuditAuth      AuditEntity = "AUTH"
)

// ValidAuditAction valida el filtro de acción recibido por query.
func ValidAuditAction(s string) bool {
	switch AuditAction(s) {
	case ActionCreate, ActionUpdate, ActionDelete, ActionStatusChange, ActionLogin, ActionLogout:
		return true
	}
	return false
}

// ValidAuditEntity valida el filtro de entidad recibido por query.
func ValidAuditEntity(s string) bool {
	switch AuditEntity(s) {
	case AuditOrder, AuditOrderWork, AuditOrderPart, AuditExpense, AuditComment, AuditUser, AuditService, AuditAuth:
		return true
	}
	return false
}

// AuditLog fila inmutable del historial. Nunca se actualiza ni se borra.
type AuditLog struct {
	ID        string
	ActorID   string
	Action    AuditAction
	Entity    AuditEntity
	EntityID  string
	OrderID   *string // nil para entidades sin orden (usuarios, servicios, gastos generales)
	Diff      audit.Diff
	CreatedAt time.Time
}
