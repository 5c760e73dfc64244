package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryEncoderEncode(t *testing.T) {
	enc := NewCategoryEncoder("channel", []string{"ATM", "POS", "WEB"})

	assert.Equal(t, 0, enc.Encode("ATM"))
	assert.Equal(t, 1, enc.Encode("POS"))
	assert.Equal(t, 2, enc.Encode("WEB"))
	assert.False(t, enc.Grown())
}

func TestCategoryEncoderUnseenValue(t *testing.T) {
	enc := NewCategoryEncoder("channel", []string{"ATM", "POS"})

	// First unseen value registers the sentinel at the next free code.
	assert.Equal(t, 2, enc.Encode("Teleporter"))
	assert.True(t, enc.Grown())
	assert.Equal(t, []string{"ATM", "POS", UnknownCategory}, enc.Classes())

	// Every later unseen value reuses the same code.
	assert.Equal(t, 2, enc.Encode("Hologram"))
	assert.Equal(t, []string{"ATM", "POS", UnknownCategory}, enc.Classes())
}

func TestCategoryEncoderSentinelAlreadyFitted(t *testing.T) {
	enc := NewCategoryEncoder("channel", []string{"ATM", UnknownCategory})

	// A vocabulary fitted with the sentinel resolves unseen values to it
	// without growing.
	assert.Equal(t, 1, enc.Encode("Teleporter"))
	assert.False(t, enc.Grown())
	assert.Len(t, enc.Classes(), 2)
}

func TestCategoryEncoderClassesIsACopy(t *testing.T) {
	enc := NewCategoryEncoder("channel", []string{"ATM", "POS"})

	classes := enc.Classes()
	classes[0] = "mutated"

	assert.Equal(t, []string{"ATM", "POS"}, enc.Classes())
}
