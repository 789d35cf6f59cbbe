package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapsCause(t *testing.T) {
	err := NewAppError("LOAD_FAILED", "opening invoice", ErrUnreadablePDF)
	assert.Equal(t, "LOAD_FAILED: opening invoice: unreadable PDF", err.Error())
	assert.True(t, errors.Is(err, ErrUnreadablePDF))
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := NewAppError("BAD_INPUT", "not a PDF", nil)
	assert.Equal(t, "BAD_INPUT: not a PDF", err.Error())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "load"))

	wrapped := WrapError(ErrNoShipments, "load")
	require.Error(t, wrapped)
	assert.True(t, errors.Is(wrapped, ErrNoShipments))
	assert.Contains(t, wrapped.Error(), "load: ")
}
