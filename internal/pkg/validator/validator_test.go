package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Count int64  `validate:"gt=0"`
	Note  string `validate:"omitempty,max=5"`
}

func TestValidate(t *testing.T) {
	Init()

	t.Run("passes a valid struct", func(t *testing.T) {
		assert.NoError(t, Validate(sample{Name: "ok", Count: 1}))
	})

	t.Run("roots failures at the sentinel", func(t *testing.T) {
		err := Validate(sample{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("reports every offending field", func(t *testing.T) {
		err := Validate(sample{Count: -1, Note: "too long"})
		require.Error(t, err)
		assert.ErrorContains(t, err, "'Name'")
		assert.ErrorContains(t, err, "'Count'")
		assert.ErrorContains(t, err, "'Note'")
	})

	t.Run("omitempty skips unset optional fields", func(t *testing.T) {
		assert.NoError(t, Validate(sample{Name: "ok", Count: 1, Note: ""}))
	})
}
