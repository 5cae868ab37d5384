package odin

import (
	"context"
	"testing"

	"pet-care-planner/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls  int
	claims auth.Claims
	err    error
}

func (c *countingClient) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	c.calls++
	return c.claims, c.err
}

func TestVerifier_CachesSuccess(t *testing.T) {
	client := &countingClient{claims: auth.Claims{UserID: " u1 ", Email: "a@b.c"}}
	v := NewVerifier(client, VerifierOptions{})

	for range 3 {
		c, err := v.Verify(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "u1", c.UserID)
	}
	assert.Equal(t, 1, client.calls)

	_, err := v.Verify(context.Background(), "other")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestVerifier_Failures(t *testing.T) {
	client := &countingClient{err: ErrOdinUnauthorized}
	v := NewVerifier(client, VerifierOptions{})

	_, err := v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrOdinUnauthorized)
	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrOdinUnauthorized)
	assert.Equal(t, 2, client.calls)

	_, err = v.Verify(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	noSubject := NewVerifier(&countingClient{claims: auth.Claims{Email: "x@y.z"}}, VerifierOptions{CacheTTL: -1})
	_, err = noSubject.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrMissingSubject)

	var nilVerifier *Verifier
	_, err = nilVerifier.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrOdinNotConfigured)
}
