package entity

import "time"

// WorkSource origen de una línea de trabajo: servicio del catálogo o trabajo libre.
// Sólo las líneas libres (CustomSource) admiten editar el nombre.
type WorkSource interface {
	isWorkSource()
}

// CatalogSource la línea proviene de un servicio del catálogo.
type CatalogSource struct {
	ServiceID string
}

// CustomSource línea de trabajo libre, sin servicio asociado.
type CustomSource struct{}

func (CatalogSource) isWorkSource() {}
func (CustomSource) isWorkSource()  {}

// ServiceIDOf devuelve el id del servicio o nil para trabajos libres (columna nullable).
func ServiceIDOf(src WorkSource) *string {
	if c, ok := src.(CatalogSource); ok {
		id := c.ServiceID
		return &id
	}
	return nil
}

// SourceFromServiceID reconstruye el origen a partir de la columna service_id.
func SourceFromServiceID(serviceID *string) WorkSource {
	if serviceID == nil || *serviceID == "" {
		return CustomSource{}
	}
	return CatalogSource{ServiceID: *serviceID}
}

// OrderWork línea de mano de obra de una orden.
// CommissionPctSnapshot y CommissionCentsSnapshot quedan congelados al crear la línea;
// sólo cambian cuando se edita la propia línea.
type OrderWork struct {
	ID                      string
	OrderID                 string
	Source                  WorkSource
	ServiceName             string
	UnitPriceCents          int64
	Quantity                int
	PerformerID             string
	CommissionPctSnapshot   int
	CommissionCentsSnapshot int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsCustom indica si la línea es un trabajo libre.
func (w *OrderWork) IsCustom() bool {
	_, ok := w.Source.(CatalogSource)
	return !ok
}
