package commands_test

import (
	"testing"

	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	companyID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, companyID)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, companyID, cmd.CompanyID())
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidIDs(t *testing.T) {
	valid := kernel.NewUUID()

	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, valid)
	require.Error(t, err)

	_, err = commands.NewCreateOrderCommand(valid, kernel.UUID{})
	require.Error(t, err)
}

func TestCreateOrderCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
