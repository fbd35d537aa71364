package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func TestSnapshot_UsaPorcentajeActual(t *testing.T) {
	master := &entity.User{CommissionPct: 40}
	pct, cents := Snapshot(master, 100000, 1)
	assert.Equal(t, 40, pct)
	assert.Equal(t, int64(40000), cents)
}

func TestSnapshot_AdminSiempreCero(t *testing.T) {
	admin := &entity.User{IsAdmin: true, CommissionPct: 50}
	pct, cents := Snapshot(admin, 100000, 3)
	assert.Zero(t, pct)
	assert.Zero(t, cents)
}

func TestCommissionFor_Piso(t *testing.T) {
	assert.Equal(t, int64(1166), CommissionFor(35, 3333, 1))
}

func TestAssertMutable(t *testing.T) {
	assert.NoError(t, AssertMutable(&entity.Order{Status: entity.StatusReadyForPickup}))

	err := AssertMutable(&entity.Order{Status: entity.StatusPaid})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAssertStatusChange(t *testing.T) {
	master := entity.Actor{UserID: "m"}
	admin := entity.Actor{UserID: "a", IsAdmin: true}

	assert.NoError(t, AssertStatusChange(master, entity.StatusNew, entity.StatusWaitingParts))
	assert.NoError(t, AssertStatusChange(master, entity.StatusReadyForPickup, entity.StatusNew))
	assert.ErrorIs(t, AssertStatusChange(master, entity.StatusReadyForPickup, entity.StatusPaid), domain.ErrConflict)
	assert.ErrorIs(t, AssertStatusChange(master, entity.StatusPaid, entity.StatusInProgress), domain.ErrConflict)
	assert.NoError(t, AssertStatusChange(admin, entity.StatusReadyForPickup, entity.StatusPaid))
	assert.NoError(t, AssertStatusChange(admin, entity.StatusPaid, entity.StatusInProgress))
	assert.ErrorIs(t, AssertStatusChange(admin, entity.StatusNew, "ARCHIVED"), domain.ErrInvalidInput)
}

func TestNextPaidAt(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	got := NextPaidAt(entity.StatusPaid, now)
	require.NotNil(t, got)
	assert.True(t, got.Equal(now))
	assert.Nil(t, NextPaidAt(entity.StatusInProgress, now))
}
