package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	tests := []struct {
		name string
		base error
	}{
		{"not found", ErrNotFound},
		{"constraint", ErrConstraintViolation},
		{"unavailable", ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("update note %q: %w", "n1", tt.base)
			assert.True(t, errors.Is(wrapped, tt.base))
		})
	}
}

func TestSentinels_AreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrStoreUnavailable))
	assert.False(t, errors.Is(ErrConstraintViolation, ErrNotFound))
}
