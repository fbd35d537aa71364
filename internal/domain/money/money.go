// Package money implementa la aritmética monetaria en centavos (unidades menores enteras).
// No se usa punto flotante en ningún cálculo que se persista.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount el texto no representa un importe válido.
var ErrInvalidAmount = errors.New("importe inválido")

// MaxCents tope de cualquier importe de entrada (2^53-1).
// Con cantidad ≤ 999 el total de la línea sigue cabiendo en int64.
const MaxCents int64 = 1<<53 - 1

// LineTotal = max(0,precio) × max(0,cantidad).
func LineTotal(unitPriceCents int64, quantity int) int64 {
	return nonNegative(unitPriceCents) * nonNegative(int64(quantity))
}

// Commission = floor(max(0,línea) × max(0,pct) / 100).
// Se separa línea = 100q + r para no desbordar el producto intermedio.
func Commission(lineTotalCents int64, pct int) int64 {
	line, p := nonNegative(lineTotalCents), nonNegative(int64(pct))
	return (line/100)*p + (line%100)*p/100
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(MaxCents)
)

// Format muestra centavos como rublos: "1 234,56 ₽".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	d := decimal.New(cents, -2)
	whole := d.Truncate(0).String()
	frac := d.Sub(d.Truncate(0)).Mul(hundred).IntPart()

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + twoDigits(frac) + " ₽"
}

func twoDigits(v int64) string {
	return fmt.Sprintf("%02d", v)
}

var (
	amountPattern = regexp.MustCompile(`^\d+(?:\.\d{1,2})?$`)
	currencyMarks = strings.NewReplacer("руб.", "", "руб", "", "₽", "", " ", "", "\u00a0", "", "\u202f", "")
)

// Parse convierte texto como "1 234,56 ₽", "1234.5" o "12 руб." a centavos.
// Se aceptan hasta dos decimales; negativos no, ni importes por encima de MaxCents.
func Parse(input string) (int64, error) {
	s := currencyMarks.Replace(strings.ToLower(strings.TrimSpace(input)))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = normalizeSeparators(s)
	if !amountPattern.MatchString(s) {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Mul(hundred)
	if cents.GreaterThan(maxCents) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// normalizeSeparators deja un único punto decimal. Si aparecen ambos separadores,
// el último en aparecer es el decimal y el otro se toma como separador de miles.
func normalizeSeparators(s string) string {
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0 && dot > comma:
		return strings.ReplaceAll(s, ",", "")
	case dot >= 0 && comma >= 0:
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case comma >= 0:
		return strings.ReplaceAll(s, ",", ".")
	}
	return s
}
