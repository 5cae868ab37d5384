package schedules

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/middleware"
	"pet-care-planner/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets/{petID}/schedule", generateScheduleHandler(svc))
	r.Get("/pets/{petID}/conflicts", petConflictsHandler(svc))
	r.Get("/pets/{petID}/agenda", agendaHandler(svc))

	r.Get("/me/tasks", ownerTasksHandler(svc))
	r.Get("/me/conflicts", ownerConflictsHandler(svc))
}

type excludedResponse struct {
	Task   caretasks.TaskResponse `json:"task"`
	Reason string                 `json:"reason"`
}

// scheduleResponse es el plan del día de una mascota.
type scheduleResponse struct {
	Date          string                   `json:"date"`
	PetID         string                   `json:"pet_id"`
	PetName       string                   `json:"pet_name"`
	TimeAvailable int                      `json:"time_available"`
	Tasks         []caretasks.TaskResponse `json:"tasks"`
	Excluded      []excludedResponse       `json:"excluded"`
	TotalDuration int                      `json:"total_duration"`
	Feasible      bool                     `json:"feasible"`
	Conflicts     []string                 `json:"conflicts"`
	Explanation   string                   `json:"explanation"`
}

type conflictsResponse struct {
	Conflicts []string `json:"conflicts"`
}

// generateScheduleHandler godoc
// @Summary Generar plan del día
// @Description Ordena las tareas pendientes por prioridad, elige las que entran en el tiempo disponible del dueño y reporta conflictos de horario.
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param date query string false "YYYY-MM-DD (default: hoy)"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "date inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/schedule [post]
func generateScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var date time.Time
		if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
			d, err := time.Parse(caretasks.DateLayout, v)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = d
		}

		sch, err := svc.Generate(r.Context(), userID, chi.URLParam(r, "petID"), date)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toScheduleResponse(sch))
	}
}

// petConflictsHandler godoc
// @Summary Conflictos de horario de la mascota
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} conflictsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/conflicts [get]
func petConflictsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.PetConflicts(r.Context(), userID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, conflictsResponse{Conflicts: items})
	}
}

// agendaHandler godoc
// @Summary Tareas ordenadas de la mascota
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param sort query string false "priority | time"
// @Param completed query bool false "filtrar por estado"
// @Success 200 {array} caretasks.TaskResponse
// @Failure 400 {string} string "sort/completed inválido"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/agenda [get]
func agendaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		order, err := ParseSortOrder(r.URL.Query().Get("sort"))
		if err != nil {
			writeError(w, err)
			return
		}
		completed, err := parseCompleted(r)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := svc.Agenda(r.Context(), userID, chi.URLParam(r, "petID"), order, completed)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, caretasks.ToResponses(items))
	}
}

// ownerTasksHandler godoc
// @Summary Tareas de todas mis mascotas
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param completed query bool false "filtrar por estado"
// @Param pet query string false "nombre de la mascota"
// @Success 200 {array} caretasks.TaskResponse
// @Failure 400 {string} string "completed inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /me/tasks [get]
func ownerTasksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		completed, err := parseCompleted(r)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := svc.OwnerTasks(r.Context(), userID, completed, r.URL.Query().Get("pet"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, caretasks.ToResponses(items))
	}
}

// ownerConflictsHandler godoc
// @Summary Conflictos entre todas mis mascotas
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} conflictsResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/conflicts [get]
func ownerConflictsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.OwnerConflicts(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, conflictsResponse{Conflicts: items})
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func parseCompleted(r *http.Request) (*bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get("completed"))
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, validation.New("completed", "must be true or false (got %q)", v)
	}
	return &b, nil
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.As(err); ok {
		http.Error(w, ve.Error(), http.StatusBadRequest)
		return
	}
	switch {
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toScheduleResponse(s *Schedule) scheduleResponse {
	excluded := make([]excludedResponse, 0, len(s.Excluded))
	for _, e := range s.Excluded {
		excluded = append(excluded, excludedResponse{Task: caretasks.ToResponse(e.Task), Reason: e.Reason})
	}
	conflicts := s.Conflicts
	if conflicts == nil {
		conflicts = []string{}
	}
	return scheduleResponse{
		Date:          s.Date.Format(caretasks.DateLayout),
		PetID:         s.Pet.ID,
		PetName:       s.Pet.Name,
		TimeAvailable: s.Owner.AvailableTime(),
		Tasks:         caretasks.ToResponses(s.Tasks),
		Excluded:      excluded,
		TotalDuration: s.TotalDuration,
		Feasible:      s.IsFeasible(),
		Conflicts:     conflicts,
		Explanation:   s.Explanation,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
