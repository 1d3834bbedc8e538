package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"authorization", Authorization(MsgNotOwner), KindAuthorization},
		{"not found", NotFound("gone"), KindNotFound},
		{"plain error", errors.New("boom"), KindStorage},
		{"wrapped validation", fmt.Errorf("ctx: %w", Validation("bad")), KindValidation},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestStorage_HidesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset by peer")
	err := Storage(cause)

	assert.Equal(t, KindStorage, err.Kind)
	assert.Equal(t, msgStorage, err.Error())
	assert.NotContains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestStorage_PassesClassifiedErrorsThrough(t *testing.T) {
	t.Parallel()

	original := Validationf("Account #%d does not belong to user", 7)
	got := Storage(fmt.Errorf("in tx: %w", original))

	require.Same(t, original, got)
	assert.Equal(t, "Account #7 does not belong to user", got.Message)
}

func TestIs(t *testing.T) {
	t.Parallel()

	assert.True(t, Is(NotFound("x"), KindNotFound))
	assert.False(t, Is(NotFound("x"), KindValidation))
	assert.False(t, Is(nil, KindStorage))
	assert.Equal(t, "not_found", KindNotFound.String())
}
