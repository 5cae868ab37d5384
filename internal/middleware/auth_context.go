package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-planner/internal/platform/logger"
	"pet-care-planner/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader identifica al dueño en modo dev (sin verifier).
const DebugUserHeader = "X-Debug-User-ID"

type AuthOptions struct {
	// Verifier nil = modo dev: la identidad sale de DebugUserHeader.
	Verifier auth.AuthVerifier
	Log      logger.Logger

	// RejectInvalid corta con 401 un bearer que no verifica. Sin él el request
	// sigue anónimo y cada handler decide.
	RejectInvalid bool
}

// AuthContext deja auth.Claims en el contexto cuando hay identidad.
// Requests sin credenciales siguen de largo; /health no exige nada.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := identify(r, opts.Verifier)
			switch {
			case err != nil:
				log.Debug("token verification failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
				if opts.RejectInvalid {
					w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
			case claims.UserID == "":
				next.ServeHTTP(w, r)
			default:
				noteUser(r.Context(), strings.TrimSpace(claims.UserID))
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
			}
		})
	}
}

// identify devuelve claims vacíos y nil si el request no trae credenciales.
func identify(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, error) {
	if verifier == nil {
		return auth.Claims{UserID: strings.TrimSpace(r.Header.Get(DebugUserHeader))}, nil
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, nil
	}
	return verifier.Verify(r.Context(), token)
}

// WithClaims deja claims en el contexto (CLI, cron y tests).
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// UserID es "" para requests anónimos.
func UserID(ctx context.Context) string {
	c, _ := GetClaims(ctx)
	return strings.TrimSpace(c.UserID)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
