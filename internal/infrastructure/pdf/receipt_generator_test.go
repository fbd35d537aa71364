package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/billing"
)

func TestGenerateReceiptPDF(t *testing.T) {
	paid := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rc := &billing.Receipt{
		ShopName: "Taller", OrderID: "0f3c2a9e-1111", Title: "Les Paul refret", Status: "PAID", PaidAt: &paid,
		IssuedAt: paid,
		Works:    []billing.ReceiptLine{{Name: "Refret", UnitPriceCents: 100000, Quantity: 1, TotalCents: 100000}},
		LaborSubtotalCents: 100000, InvoiceTotalCents: 100000,
	}

	out, err := NewReceiptGenerator().GenerateReceiptPDF(context.Background(), rc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f3c2a9e", shortID("0f3c2a9e-1111"))
	assert.Equal(t, "abc", shortID("abc"))
}
