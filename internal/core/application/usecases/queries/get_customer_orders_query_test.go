package queries_test

import (
	"testing"

	"bookstore/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCustomerOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetCustomerOrdersQuery("customer-1")

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "customer-1", query.CustomerID())
}

func TestNewGetCustomerOrdersQuery_EmptyCustomerID(t *testing.T) {
	_, err := queries.NewGetCustomerOrdersQuery("")

	require.ErrorIs(t, err, queries.ErrCustomerIDIsRequired)
}

func TestGetCustomerOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCustomerOrdersQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCustomerOrdersQueryIsNotConstructed)
}
