package dto

import "encoding/json"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Nullable distingue un campo ausente (Set=false) de un null explícito (Set=true, Value=nil)
// en cuerpos PATCH.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON sólo se invoca si el campo viene en el cuerpo.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Of construye un Nullable presente con valor.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null construye un Nullable presente con null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}
