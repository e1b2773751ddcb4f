package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrune/botcore/internal/errors"
)

func TestWrapPreservesCode(t *testing.T) {
	base := errors.NotFound("reputation record missing")
	wrapped := errors.Wrap(base, "load counterpart")

	assert.True(t, errors.IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "load counterpart")
}

func TestWrapForeignErrorIsInternal(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("socket closed"), "persist record")

	assert.Equal(t, errors.CodeInternal, errors.GetCode(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
}

func TestGetCodeNil(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors builds nil", func(t *testing.T) {
		assert.NoError(t, errors.NewValidationBuilder().Build())
	})

	t.Run("accumulates field errors", func(t *testing.T) {
		err := errors.NewValidationBuilder().
			RequiredField("ReputationRepo").
			InvalidField("EmergencyHPRatio", "must be in (0,1]").
			Build()
		require.Error(t, err)

		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "ReputationRepo")
		assert.Contains(t, err.Error(), "EmergencyHPRatio")
	})
}
