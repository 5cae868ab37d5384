package odin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-planner/internal/ports/auth"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrMissingSubject = errors.New("odin claims missing user id")
)

const (
	defaultCacheSize = 512
	defaultCacheTTL  = time.Minute
)

// TokenVerifier es lo que el Verifier necesita de Client (tests usan un fake).
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (auth.Claims, error)
}

type VerifierOptions struct {
	// CacheTTL: cuánto se reutiliza un token ya verificado. <0 desactiva el cache.
	CacheTTL  time.Duration
	CacheSize int
}

// Verifier implementa auth.AuthVerifier usando Odin.
// Cada request del planner trae el mismo bearer; se cachea el resultado
// exitoso por hash del token durante CacheTTL. Los rechazos no se cachean.
type Verifier struct {
	client TokenVerifier
	cache  *expirable.LRU[string, auth.Claims]
}

func NewVerifier(client TokenVerifier, opts VerifierOptions) *Verifier {
	v := &Verifier{client: client}
	if opts.CacheTTL < 0 {
		return v
	}

	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	v.cache = expirable.NewLRU[string, auth.Claims](size, nil, ttl)
	return v
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	key := tokenKey(token)
	if v.cache != nil {
		if c, ok := v.cache.Get(key); ok {
			return c, nil
		}
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("odin verify failed: %w", err)
	}

	claims.UserID = strings.TrimSpace(claims.UserID)
	if claims.UserID == "" {
		return auth.Claims{}, ErrMissingSubject
	}

	if v.cache != nil {
		v.cache.Add(key, claims)
	}
	return claims, nil
}

// no guardamos el token en claro en memoria
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
