package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	productID := uuid.New()
	actorID := uuid.New()
	refID := uuid.New()

	t.Run("creates inbound movement", func(t *testing.T) {
		mvt, err := NewStockMovement(productID, MovementTypeIn, 10, 5, 15, ReferenceTypePurchase, &refID, "receiving", &actorID)

		require.NoError(t, err)
		assert.Equal(t, productID, mvt.ProductID)
		assert.Equal(t, MovementTypeIn, mvt.MovementType)
		assert.Equal(t, int64(10), mvt.Quantity)
		assert.Equal(t, int64(5), mvt.BalanceBefore)
		assert.Equal(t, int64(15), mvt.BalanceAfter)
		assert.Equal(t, ReferenceTypePurchase, mvt.ReferenceType)
		assert.Equal(t, &refID, mvt.ReferenceID)
		assert.False(t, mvt.OccurredAt.IsZero())
	})

	t.Run("allows nil reference and actor", func(t *testing.T) {
		mvt, err := NewStockMovement(productID, MovementTypeIn, 1, 0, 1, ReferenceTypeAdjustment, nil, "", nil)

		require.NoError(t, err)
		assert.Nil(t, mvt.ReferenceID)
		assert.Nil(t, mvt.ActorID)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewStockMovement(uuid.Nil, MovementTypeIn, 1, 0, 1, ReferenceTypeAdjustment, nil, "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockMovement(productID, MovementTypeOut, 0, 5, 5, ReferenceTypeSale, &refID, "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewStockMovement(productID, MovementTypeOut, -3, 5, 8, ReferenceTypeSale, &refID, "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid movement type", func(t *testing.T) {
		_, err := NewStockMovement(productID, MovementType("sideways"), 1, 0, 1, ReferenceTypeSale, &refID, "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid reference type", func(t *testing.T) {
		_, err := NewStockMovement(productID, MovementTypeIn, 1, 0, 1, ReferenceType("transfer"), nil, "", nil)
		assert.Error(t, err)
	})
}

func TestStockMovement_SignedQuantity(t *testing.T) {
	productID := uuid.New()

	in, err := NewStockMovement(productID, MovementTypeIn, 7, 0, 7, ReferenceTypeAdjustment, nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), in.SignedQuantity())

	out, err := NewStockMovement(productID, MovementTypeOut, 7, 7, 0, ReferenceTypeAdjustment, nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-7), out.SignedQuantity())
}
