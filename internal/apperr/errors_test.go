package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	sentinel := New(KindInvalidState, "AC_ALREADY_ON", "ac already on")

	wrapped := fmt.Errorf("turn on room 3: %w", sentinel.Wrap(errors.New("cause")))
	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, ErrConflict)

	detailed := sentinel.With("room 3")
	assert.ErrorIs(t, detailed, sentinel)
	assert.Equal(t, "ac already on: room 3", detailed.Error())
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := ErrDataIntegrity.Wrap(errors.New("bad timestamp"))
	assert.Equal(t, "stored data is inconsistent: bad timestamp", err.Error())
	assert.Equal(t, "bad timestamp", errors.Unwrap(err).Error())
}

func TestKindOfAndCodeOf(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantKind Kind
		wantCode string
	}{
		{"plain error", errors.New("boom"), KindInternal, "INTERNAL_ERROR"},
		{"conflict", fmt.Errorf("commit: %w", ErrConflict), KindConflict, "STORAGE_CONFLICT"},
		{"integrity", ErrDataIntegrity.Wrap(errors.New("x")), KindDataIntegrity, "DATA_INTEGRITY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantKind, KindOf(tc.err))
			assert.Equal(t, tc.wantCode, CodeOf(tc.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrConflict.Wrap(errors.New("database is locked"))))
	assert.False(t, IsRetryable(ErrDataIntegrity))
	assert.False(t, IsRetryable(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "invalid_state", KindInvalidState.String())
	assert.Equal(t, "internal", Kind(99).String())
}
