package mysql

import (
	"testing"

	"storefront-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAggregateReservations_MergesDuplicateLines(t *testing.T) {
	items := []domain.OrderItem{
		{ProductID: 7, ProductName: "Fresh Milk", Quantity: 2},
		{ProductID: 12, ProductName: "Brown Bread", Quantity: 1},
		{ProductID: 7, ProductName: "Fresh Milk", Quantity: 2},
	}

	reservations := aggregateReservations(items)

	assert.Len(t, reservations, 2)
	assert.Equal(t, uint64(7), reservations[0].productID)
	// Both milk lines count against the same row: stock 3 must fail a
	// combined request of 4 even though each line alone fits.
	assert.Equal(t, int64(4), reservations[0].quantity)
	assert.Equal(t, uint64(12), reservations[1].productID)
	assert.Equal(t, int64(1), reservations[1].quantity)
}

func TestAggregateReservations_LockOrder(t *testing.T) {
	items := []domain.OrderItem{
		{ProductID: 12, ProductName: "Brown Bread", Quantity: 1},
		{ProductID: 7, ProductName: "Fresh Milk", Quantity: 2},
		{ProductID: 3, ProductName: "Basmati Rice", Quantity: 1},
	}

	reservations := aggregateReservations(items)

	assert.Len(t, reservations, 3)
	for i := 1; i < len(reservations); i++ {
		assert.Less(t, reservations[i-1].productID, reservations[i].productID)
	}
}

func TestAggregateReservations_SingleLinePassthrough(t *testing.T) {
	items := []domain.OrderItem{
		{ProductID: 7, ProductName: "Fresh Milk", Quantity: 2},
	}

	reservations := aggregateReservations(items)

	assert.Len(t, reservations, 1)
	assert.Equal(t, reservation{productID: 7, name: "Fresh Milk", quantity: 2}, reservations[0])
}
