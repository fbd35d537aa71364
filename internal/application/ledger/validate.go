package ledger

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/money"
)

const (
	minQuantity = 1
	maxQuantity = 999
)

// text recorta espacios y valida longitud en caracteres.
func text(field, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < min {
		if min == 1 {
			return "", domain.Validation(field + " es requerido")
		}
		return "", domain.Validation(fmt.Sprintf("%s: mínimo %d caracteres", field, min))
	}
	if n > max {
		return "", domain.Validation(fmt.Sprintf("%s: máximo %d caracteres", field, max))
	}
	return s, nil
}

// optionalText nil = no tocar; "" tras recortar = vaciar (null).
func optionalText(field string, s *string, max int) (*string, bool, error) {
	if s == nil {
		return nil, false, nil
	}
	v, err := text(field, *s, 0, max)
	if err != nil {
		return nil, false, err
	}
	if v == "" {
		return nil, true, nil
	}
	return &v, true, nil
}

func quantity(q *int) (int, error) {
	if q == nil {
		return minQuantity, nil
	}
	if *q < minQuantity || *q > maxQuantity {
		return 0, domain.Validation("quantity debe estar entre 1 y 999")
	}
	return *q, nil
}

func nonNegativeCents(field string, v int64) error {
	if v < 0 {
		return domain.Validation(field + " no puede ser negativo")
	}
	return maxCents(field, v)
}

func positiveCents(field string, v int64) error {
	if v <= 0 {
		return domain.Validation(field + " debe ser mayor que 0")
	}
	return maxCents(field, v)
}

func maxCents(field string, v int64) error {
	if v > money.MaxCents {
		return domain.Validation(fmt.Sprintf("%s no puede superar %d", field, money.MaxCents))
	}
	return nil
}

func requiredID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation(field + " es requerido")
	}
	return nil
}

// ParseExpenseDate acepta YYYY-MM-DD (medianoche UTC) o RFC3339; vacío = now.
func ParseExpenseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.UTC(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Validation("expense_date: use YYYY-MM-DD o fecha ISO")
	}
	return t.UTC(), nil
}
