package middleware

import (
	"context"
	"net/http"
	"time"

	"pet-care-planner/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestInfoKey ctxKey = "request_info"

// requestInfo lo crea RequestLogger; AuthContext anota el usuario al identificarlo.
type requestInfo struct {
	userID string
}

func noteUser(ctx context.Context, userID string) {
	if ri, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		ri.userID = userID
	}
}

// RequestLogger registra una línea por request. Va después de chimw.RequestID
// y antes de AuthContext, así también quedan los 401.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "http"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ri := &requestInfo{}

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestInfoKey, ri)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}
			if uid := ri.userID; uid != "" {
				fields["user_id"] = uid
			}

			switch {
			case status >= 500:
				log.Error("request", fields)
			case status >= 400:
				log.Warn("request", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}
