package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/cinecritic/internal/apperr"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind apperr.Kind
	}{
		{apperr.Validation("bad"), apperr.KindValidation},
		{apperr.Unauthorized("who"), apperr.KindUnauthorized},
		{apperr.Forbidden("no"), apperr.KindForbidden},
		{apperr.NotFound("gone"), apperr.KindNotFound},
		{apperr.Conflict("dup"), apperr.KindConflict},
		{apperr.Internal(errors.New("boom")), apperr.KindInternal},
		{errors.New("plain"), apperr.KindInternal},
		{fmt.Errorf("wrapped: %w", apperr.NotFound("gone")), apperr.KindNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, apperr.KindOf(tc.err), tc.err.Error())
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Title too long", apperr.MessageOf(apperr.Validation("Title too long")))
	assert.Equal(t, "internal error", apperr.MessageOf(apperr.Internal(errors.New("pq: connection refused"))))
	assert.Equal(t, "internal error", apperr.MessageOf(errors.New("raw")))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestIs(t *testing.T) {
	assert.False(t, apperr.Is(nil, apperr.KindInternal))
	assert.True(t, apperr.Is(apperr.Forbidden("x"), apperr.KindForbidden))
	assert.False(t, apperr.Is(apperr.Forbidden("x"), apperr.KindUnauthorized))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", apperr.KindNotFound.String())
	assert.Equal(t, "internal", apperr.Kind(99).String())
}
