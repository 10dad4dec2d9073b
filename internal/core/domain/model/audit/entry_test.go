package audit_test

import (
	"testing"
	"time"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("should create entry timestamped now", func(t *testing.T) {
		before := time.Now().UTC()

		e, err := audit.NewEntry(orderID, "pipeline-worker", audit.ActionOrderAdvanced,
			map[string]string{audit.MetaKeyFromStatus: "PENDING", audit.MetaKeyToStatus: "SUPPLIER_ORDERING"})

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.True(t, e.OrderID().IsEqual(orderID))
		assert.Equal(t, "pipeline-worker", e.Actor())
		assert.Equal(t, audit.ActionOrderAdvanced, e.Action())
		assert.Equal(t, "PENDING", e.Meta()[audit.MetaKeyFromStatus])
		assert.False(t, e.Timestamp().Before(before))
	})

	t.Run("should accept nil meta", func(t *testing.T) {
		e, err := audit.NewEntry(orderID, "api", audit.ActionOrderCreated, nil)

		require.NoError(t, err)
		assert.Empty(t, e.Meta())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := audit.NewEntry(invalidID, "api", audit.ActionOrderCreated, nil)

		require.Error(t, err)
	})

	t.Run("should fail with missing actor or action", func(t *testing.T) {
		_, err := audit.NewEntry(orderID, "", "", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "actor")
		assert.Contains(t, err.Error(), "action")
	})
}

func TestEntry_Immutability(t *testing.T) {
	t.Run("meta accessor returns a copy", func(t *testing.T) {
		e, err := audit.NewEntry(kernel.NewUUID(), "api", audit.ActionOrderCreated,
			map[string]string{"k": "v"})
		require.NoError(t, err)

		e.Meta()["k"] = "mutated"

		assert.Equal(t, "v", e.Meta()["k"])
	})

	t.Run("source map changes do not leak in", func(t *testing.T) {
		meta := map[string]string{"k": "v"}
		e, err := audit.NewEntry(kernel.NewUUID(), "api", audit.ActionOrderCreated, meta)
		require.NoError(t, err)

		meta["k"] = "mutated"

		assert.Equal(t, "v", e.Meta()["k"])
	})
}

func TestRestoreEntry(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	e, err := audit.RestoreEntry(kernel.NewUUID(), "operator:alice", audit.ActionReviewResolved,
		map[string]string{audit.MetaKeyReason: "stock re-confirmed"}, ts)

	require.NoError(t, err)
	assert.Equal(t, ts, e.Timestamp())
	assert.Equal(t, "operator:alice", e.Actor())
}

func TestEntry_Validate(t *testing.T) {
	var e audit.Entry
	require.ErrorIs(t, e.Validate(), audit.ErrEntryIsNotConstructed)

	var nilEntry *audit.Entry
	require.ErrorIs(t, nilEntry.Validate(), audit.ErrEntryIsNotConstructed)
}
