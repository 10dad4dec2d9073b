package queries_test

import (
	"testing"

	"dropship/internal/core/application/usecases/queries"
	"dropship/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersByStatusQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrdersByStatusQuery(order.Pending, order.ManualReview)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, []order.Status{order.Pending, order.ManualReview}, query.Statuses())
}

func TestNewGetOrdersByStatusQuery_NoFilter(t *testing.T) {
	query, err := queries.NewGetOrdersByStatusQuery()
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Empty(t, query.Statuses())
}

func TestNewGetOrdersByStatusQuery_UnknownStatus(t *testing.T) {
	_, err := queries.NewGetOrdersByStatusQuery(order.Unknown)
	require.Error(t, err)
}

func TestGetOrdersByStatusQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrdersByStatusQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrdersByStatusQueryIsNotConstructed)
}
