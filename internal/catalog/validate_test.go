package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name      string `json:"name" validate:"required,max=10"`
	LibraryID uint   `json:"libraryId" validate:"required,gt=0"`
}

func TestValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, Validate(samplePayload{Name: "Dune", LibraryID: 1}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Validate(samplePayload{})
		require.Error(t, err)

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		require.Len(t, ve.Fields, 2)
		assert.Equal(t, "name", ve.Fields[0].Field)
		assert.Equal(t, "name is required", ve.Fields[0].Message)
		assert.Equal(t, "libraryId", ve.Fields[1].Field)
	})

	t.Run("max length", func(t *testing.T) {
		err := Validate(samplePayload{Name: strings.Repeat("x", 11), LibraryID: 1})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "name must be at most 10 characters", ve.Fields[0].Message)
	})
}
