package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceNotFoundError(t *testing.T) {
	err := NewReferenceNotFound("library", 7)

	assert.Equal(t, "library 7 not found", err.Error())
	assert.True(t, errors.Is(err, ErrReferenceNotFound))
	assert.True(t, IsReferenceNotFound(fmt.Errorf("load owner: %w", err)))
	assert.False(t, IsReferenceNotFound(errors.New("boom")))
}

func TestValidationError(t *testing.T) {
	t.Run("lists field messages", func(t *testing.T) {
		err := NewValidationError(
			FieldError{Field: "name", Message: "name is required"},
			FieldError{Field: "libraryId", Message: "libraryId is required"},
		)
		assert.Equal(t, "validation failed: name is required; libraryId is required", err.Error())
	})

	t.Run("without fields", func(t *testing.T) {
		assert.Equal(t, "validation failed", NewValidationError().Error())
	})

	t.Run("unwraps through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("bind: %w", NewValidationError(FieldError{Field: "name"}))
		ve, ok := AsValidationError(wrapped)
		assert.True(t, ok)
		assert.Len(t, ve.Fields, 1)

		_, ok = AsValidationError(errors.New("other"))
		assert.False(t, ok)
	})
}
