package queries_test

import (
	"testing"
	"time"

	"routing/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListActiveCompaniesQuery_Success(t *testing.T) {
	query, err := queries.NewListActiveCompaniesQuery(7 * 24 * time.Hour)

	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, query.Lookback())
	assert.NoError(t, query.Validate())
}

func TestNewListActiveCompaniesQuery_NegativeLookback(t *testing.T) {
	_, err := queries.NewListActiveCompaniesQuery(-time.Hour)
	require.Error(t, err)
}

func TestListActiveCompaniesQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.ListActiveCompaniesQuery
	require.ErrorIs(t, query.Validate(), queries.ErrListActiveCompaniesQueryIsNotConstructed)
}
