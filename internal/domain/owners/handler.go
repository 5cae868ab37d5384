package owners

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-care-planner/internal/middleware"
	"pet-care-planner/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me", getOwnerHandler(svc))
	r.Put("/me", putOwnerHandler(svc))
}

// upsertOwnerRequest: campos ausentes no se tocan.
type upsertOwnerRequest struct {
	Name          *string        `json:"name"`
	TimeAvailable *int           `json:"time_available"` // minutos por día
	Preferences   map[string]any `json:"preferences"`    // null en una clave = borrar
}

type ownerResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	TimeAvailable int            `json:"time_available"`
	Preferences   map[string]any `json:"preferences"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

// getOwnerHandler godoc
// @Summary Perfil del dueño
// @Description Devuelve nombre, minutos disponibles por día y preferencias. Si nunca se configuró, devuelve los valores por defecto.
// @Tags owner
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} ownerResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		o, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

// putOwnerHandler godoc
// @Summary Configurar dueño
// @Description Crea o actualiza el perfil del dueño. time_available no puede ser negativo.
// @Tags owner
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body upsertOwnerRequest true "Perfil"
// @Success 200 {object} ownerResponse
// @Failure 400 {string} string "mensaje de validación"
// @Failure 401 {string} string "unauthorized"
// @Router /me [put]
func putOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req upsertOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Upsert(r.Context(), claims.UserID, UpsertInput{
			Name:          req.Name,
			TimeAvailable: req.TimeAvailable,
			Preferences:   req.Preferences,
		})
		if err != nil {
			if ve, ok := validation.As(err); ok {
				http.Error(w, ve.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	resp := ownerResponse{
		ID:            o.ID,
		Name:          o.Name,
		TimeAvailable: o.AvailableTime(),
		Preferences:   o.Preferences,
	}
	if resp.Preferences == nil {
		resp.Preferences = map[string]any{}
	}
	if !o.CreatedAt.IsZero() {
		c, u := o.CreatedAt, o.UpdatedAt
		resp.CreatedAt = &c
		resp.UpdatedAt = &u
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
