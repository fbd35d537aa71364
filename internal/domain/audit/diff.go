// Package audit define el payload estructurado (diff) de cada fila del log de auditoría.
//
// Esquema persistido (jsonb) y expuesto por la API:
//
//	{"created": {"campo": valor, ...}}
//	{"changed": {"campo": {"from": a, "to": b}, ...}}
//	{"deleted": {"id": "..."}}
//
// Los eventos de sesión (LOGIN/LOGOUT) y el reseteo de contraseña usan un objeto plano (Event).
package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Kind variante del diff.
type Kind string

const (
	KindCreated Kind = "created"
	KindChanged Kind = "changed"
	KindDeleted Kind = "deleted"
	KindEvent   Kind = "event"
)

// Diff unión etiquetada: Created | Changed | Deleted | Event.
type Diff interface {
	Kind() Kind
	json.Marshaler
}

// Created proyección inicial completa de la entidad (sin timestamps de fila).
type Created map[string]any

// Changed sólo los campos que realmente difieren.
type Changed map[string]Change

// Change par antes/después de un campo.
type Change struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Deleted identificador de la entidad eliminada.
type Deleted struct {
	ID string `json:"id"`
}

// Event payload plano para eventos que no son mutaciones de entidad.
type Event map[string]any

func (Created) Kind() Kind { return KindCreated }
func (Changed) Kind() Kind { return KindChanged }
func (Deleted) Kind() Kind { return KindDeleted }
func (Event) Kind() Kind   { return KindEvent }

func (c Created) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]any{"created": c})
}

func (c Changed) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]Change{"changed": c})
}

func (d Deleted) MarshalJSON() ([]byte, error) {
	type plain Deleted
	return json.Marshal(map[string]plain{"deleted": plain(d)})
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(e))
}

// Empty indica que no hubo cambios efectivos.
func (c Changed) Empty() bool { return len(c) == 0 }

// Decode reconstruye un Diff desde su JSON persistido. null o vacío devuelve nil.
func Decode(raw []byte) (Diff, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("audit: decode diff: %w", err)
	}
	if len(top) == 1 {
		for key, body := range top {
			switch Kind(key) {
			case KindCreated:
				var c Created
				if err := decodeNumbers(body, (*map[string]any)(&c)); err != nil {
					return nil, err
				}
				return c, nil
			case KindChanged:
				var c map[string]Change
				if err := decodeNumbers(body, &c); err != nil {
					return nil, err
				}
				return Changed(c), nil
			case KindDeleted:
				var d struct {
					ID string `json:"id"`
				}
				if err := json.Unmarshal(body, &d); err != nil {
					return nil, fmt.Errorf("audit: decode deleted: %w", err)
				}
				return Deleted{ID: d.ID}, nil
			}
		}
	}
	var e map[string]any
	if err := decodeNumbers(raw, &e); err != nil {
		return nil, err
	}
	return Event(e), nil
}

func decodeNumbers(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("audit: decode diff: %w", err)
	}
	return nil
}

// Track registra field sólo si from != to.
func Track[T comparable](c Changed, field string, from, to T) {
	if from != to {
		c[field] = Change{From: from, To: to}
	}
}

// TrackOptional igual que Track para campos nullable; nil se emite como null.
func TrackOptional[T comparable](c Changed, field string, from, to *T) {
	switch {
	case from == nil && to == nil:
		return
	case from != nil && to != nil && *from == *to:
		return
	}
	c[field] = Change{From: Value(from), To: Value(to)}
}

// TrackTime compara instantes (no representación) y emite ambos lados en ISO-8601.
func TrackTime(c Changed, field string, from, to *time.Time) {
	switch {
	case from == nil && to == nil:
		return
	case from != nil && to != nil && from.Equal(*to):
		return
	}
	c[field] = Change{From: Timestamp(from), To: Timestamp(to)}
}

// Value desreferencia un puntero; nil queda como null en JSON.
func Value[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// Timestamp formato ISO-8601 UTC con milisegundos; nil queda como null.
func Timestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
