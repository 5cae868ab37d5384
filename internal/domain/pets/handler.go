package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-planner/internal/middleware"
	"pet-care-planner/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

type createPetRequest struct {
	Name         string   `json:"name"`
	Species      string   `json:"species" enums:"dog,cat,rabbit,bird,other"`
	Breed        string   `json:"breed"`
	Age          int      `json:"age"`
	SpecialNeeds []string `json:"special_needs"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string   `json:"name"`
	Species      *string   `json:"species"`
	Breed        *string   `json:"breed"`
	Age          *int      `json:"age"`
	SpecialNeeds *[]string `json:"special_needs"`
}

type petResponse struct {
	ID           string    `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	Name         string    `json:"name"`
	Species      Species   `json:"species"`
	Breed        string    `json:"breed"`
	Age          int       `json:"age"`
	SpecialNeeds []string  `json:"special_needs"`
	Info         string    `json:"info"`
	TaskCount    *int      `json:"task_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "mensaje de validación"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Age:          req.Age,
			SpecialNeeds: req.SpecialNeeds,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p, false))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p, false))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Description Incluye la cantidad de tareas registradas.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadOwnedPet(w, r, svc)
		if !ok {
			return
		}

		full, err := svc.WithTasks(r.Context(), p)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(full, true))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description PATCH parcial del perfil. Renombrar actualiza pet_name en sus tareas.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "mensaje de validación"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedPet(w, r, svc)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), current.ID, UpdateProfileInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Age:          req.Age,
			SpecialNeeds: req.SpecialNeeds,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated, false))
	}
}

func loadOwnedPet(w http.ResponseWriter, r *http.Request, svc *Service) (Pet, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Pet{}, false
	}

	p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return Pet{}, false
	}
	if p.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return Pet{}, false
	}
	return p, true
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.As(err); ok {
		http.Error(w, ve.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "pet not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toPetResponse(p Pet, withCount bool) petResponse {
	resp := petResponse{
		ID:           p.ID,
		OwnerUserID:  p.OwnerUserID,
		Name:         p.Name,
		Species:      p.Species,
		Breed:        p.Breed,
		Age:          p.Age,
		SpecialNeeds: p.SpecialNeeds,
		Info:         p.Info(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if resp.SpecialNeeds == nil {
		resp.SpecialNeeds = []string{}
	}
	if withCount {
		n := p.TaskCount()
		resp.TaskCount = &n
	}
	return resp
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/caretasks/...)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
