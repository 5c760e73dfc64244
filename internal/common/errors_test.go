package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewUserError("could not load model", ErrMissingArtifact)

		assert.Equal(t, "could not load model: missing artifact", err.Error())
		assert.ErrorIs(t, err, ErrMissingArtifact)
	})

	t.Run("message only", func(t *testing.T) {
		err := &UserError{UserMessage: "something went wrong"}

		assert.Equal(t, "something went wrong", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
