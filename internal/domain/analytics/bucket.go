// Package analytics contiene la aritmética de buckets temporales (UTC) usada por los reportes.
package analytics

import (
	"fmt"
	"time"
)

// Bucket granularidad de la serie temporal.
type Bucket string

const (
	Day   Bucket = "day"
	Week  Bucket = "week"
	Month Bucket = "month"
)

// ParseBucket valida la granularidad; vacío usa def.
func ParseBucket(s string, def Bucket) (Bucket, error) {
	if s == "" {
		return def, nil
	}
	switch b := Bucket(s); b {
	case Day, Week, Month:
		return b, nil
	}
	return "", fmt.Errorf("bucket inválido %q (day|week|month)", s)
}

// Truncate devuelve el inicio del bucket que contiene t, en UTC.
// Las semanas empiezan en lunes.
func Truncate(t time.Time, b Bucket) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch b {
	case Week:
		offset := (int(day.Weekday()) + 6) % 7 // lunes=0 … domingo=6
		return day.AddDate(0, 0, -offset)
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// Next inicio del bucket siguiente a start (start ya truncado).
func Next(start time.Time, b Bucket) time.Time {
	switch b {
	case Week:
		return start.AddDate(0, 0, 7)
	case Month:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// Starts lista continua de inicios de bucket entre from y to (ambos incluidos).
func Starts(from, to time.Time, b Bucket) []time.Time {
	if to.Before(from) {
		return nil
	}
	var out []time.Time
	for s := Truncate(from, b); !s.After(to); s = Next(s, b) {
		out = append(out, s)
	}
	return out
}

// Range intervalo cerrado [From, To] en UTC.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains indica si t cae dentro del rango.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// DateLayout formato de fecha aceptado en query params.
const DateLayout = "2006-01-02"

// ParseRange interpreta fechas YYYY-MM-DD; to es inclusivo hasta el final del día.
// Vacíos: desde el primer día del mes de now hasta hoy.
func ParseRange(fromStr, toStr string, now time.Time) (Range, error) {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var err error
	if fromStr != "" {
		if from, err = time.ParseInLocation(DateLayout, fromStr, time.UTC); err != nil {
			return Range{}, fmt.Errorf("from inválido (use YYYY-MM-DD): %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.ParseInLocation(DateLayout, toStr, time.UTC); err != nil {
			return Range{}, fmt.Errorf("to inválido (use YYYY-MM-DD): %w", err)
		}
	}
	if from.After(to) {
		return Range{}, fmt.Errorf("from (%s) posterior a to (%s)", from.Format(DateLayout), to.Format(DateLayout))
	}
	return Range{From: from, To: EndOfDay(to)}, nil
}

// EndOfDay último instante representable del día de t (UTC).
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
