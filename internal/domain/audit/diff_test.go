package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_SchemaEstable(t *testing.T) {
	created, err := json.Marshal(Created{"id": "w1", "quantity": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"created":{"id":"w1","quantity":2}}`, string(created))

	changed, err := json.Marshal(Changed{"quantity": {From: 1, To: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"changed":{"quantity":{"from":1,"to":2}}}`, string(changed))

	deleted, err := json.Marshal(Deleted{ID: "p9"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"deleted":{"id":"p9"}}`, string(deleted))

	event, err := json.Marshal(Event{"name": "admin"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"admin"}`, string(event))
}

func TestDecode_Variantes(t *testing.T) {
	d, err := Decode([]byte(`{"changed":{"status":{"from":"NEW","to":"PAID"}}}`))
	require.NoError(t, err)
	c, ok := d.(Changed)
	require.True(t, ok)
	assert.Equal(t, "NEW", c["status"].From)
	assert.Equal(t, "PAID", c["status"].To)

	d, err = Decode([]byte(`{"deleted":{"id":"x"}}`))
	require.NoError(t, err)
	assert.Equal(t, Deleted{ID: "x"}, d)

	d, err = Decode([]byte(`{"created":{"amountCents":1500}}`))
	require.NoError(t, err)
	assert.Equal(t, KindCreated, d.Kind())
	assert.Equal(t, json.Number("1500"), d.(Created)["amountCents"])

	d, err = Decode([]byte(`{"passwordReset":true}`))
	require.NoError(t, err)
	assert.Equal(t, KindEvent, d.Kind())

	d, err = Decode([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = Decode([]byte(`{`))
	assert.Error(t, err)
}

func TestTrack_SoloDiferencias(t *testing.T) {
	c := Changed{}
	Track(c, "quantity", 1, 1)
	Track(c, "unitPriceCents", int64(100), int64(150))
	assert.Len(t, c, 1)
	assert.Equal(t, Change{From: int64(100), To: int64(150)}, c["unitPriceCents"])
}

func TestTrackOptional(t *testing.T) {
	a, b := int64(5), int64(5)
	c := Changed{}
	TrackOptional(c, "costCents", &a, &b)
	TrackOptional[int64](c, "nada", nil, nil)
	assert.True(t, c.Empty())

	TrackOptional(c, "costCents", &a, nil)
	assert.Equal(t, Change{From: int64(5), To: nil}, c["costCents"])
}

func TestTrackTime_ComparaInstantes(t *testing.T) {
	utc := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	other := utc.In(time.FixedZone("MSK", 3*3600))
	c := Changed{}
	TrackTime(c, "paidAt", &utc, &other)
	assert.True(t, c.Empty(), "mismo instante en otra zona no es cambio")

	TrackTime(c, "paidAt", nil, &utc)
	assert.Equal(t, Change{From: nil, To: "2024-03-01T12:00:00.000Z"}, c["paidAt"])
}
