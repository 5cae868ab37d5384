package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-planner/internal/middleware"
	"pet-care-planner/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// PetOwners resuelve el dueño de una mascota (lo implementa *pets.Service).
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petOwners PetOwners) {
	r.Route("/pets/{petID}/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc, petOwners))
		er.Get("/", listEventsHandler(svc, petOwners))

		// Anular (void) evento; queda en el historial como voided
		er.Post("/{eventID}/void", voidEventHandler(svc, petOwners))
	})
}

// createEventRequest es una nota manual del dueño en el registro de actividad.
type createEventRequest struct {
	OccurredAt string `json:"occurred_at"` // RFC3339, opcional
	TaskID     string `json:"task_id"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
}

// eventResponse representa una entrada del registro de actividad.
type eventResponse struct {
	ID         string      `json:"id"`
	PetID      string      `json:"pet_id"`
	TaskID     string      `json:"task_id,omitempty"`
	Type       EventType   `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	RecordedAt time.Time   `json:"recorded_at"`
	Title      string      `json:"title"`
	Notes      string      `json:"notes"`
	ActorType  ActorType   `json:"actor_type"`
	ActorID    string      `json:"actor_id"`
	Source     Source      `json:"source"`
	Status     EventStatus `json:"status"`
}

// createEventHandler godoc
// @Summary Agregar nota al registro de actividad
// @Description Crea un evento NOTE para la mascota. Solo el dueño. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createEventRequest true "Nota; occurred_at en formato RFC3339"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / occurred_at inválido / title vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/events [post]
func createEventHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var occurred time.Time
		if v := strings.TrimSpace(req.OccurredAt); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
				return
			}
			occurred = t
		}

		e, err := svc.Create(r.Context(), chi.URLParam(r, "petID"), Actor{
			Type: ActorTypeOwnerUser,
			ID:   userID,
		}, CreateInput{
			Type:       EventTypeNote,
			TaskID:     req.TaskID,
			OccurredAt: occurred,
			Title:      req.Title,
			Notes:      req.Notes,
			Source:     SourceManual,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar actividad de una mascota
// @Description Tareas completadas, recurrencias generadas, planes generados y notas, lo más reciente primero. Permite filtrar por tipos, rango de fechas y texto.
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo de eventos a devolver (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: TASK_COMPLETED,SCHEDULE_GENERATED)"
// @Param from query string false "occurred_at mínimo (RFC3339 o YYYY-MM-DD)"
// @Param to query string false "occurred_at máximo (RFC3339 o YYYY-MM-DD)"
// @Param task_id query string false "Solo eventos de esa tarea"
// @Param status query string false "active para ocultar anulados"
// @Param q query string false "Texto de búsqueda libre en título/notas"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/events [get]
func listEventsHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorizePet(w, r, petOwners); !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// voidEventHandler godoc
// @Summary Anular (void) un evento
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/events/{eventID}/void [post]
func voidEventHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Permisos primero, para no filtrar si existe el evento
		if _, ok := authorizePet(w, r, petOwners); !ok {
			return
		}

		petID := chi.URLParam(r, "petID")
		eventID := chi.URLParam(r, "eventID")

		ev, err := svc.GetByID(r.Context(), eventID)
		if err != nil || ev.PetID != petID {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		updated, err := svc.Void(r.Context(), eventID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(updated))
	}
}

func authorizePet(w http.ResponseWriter, r *http.Request, petOwners PetOwners) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	owner, err := petOwners.OwnerOf(r.Context(), chi.URLParam(r, "petID"))
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return "", false
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return claims.UserID, true
}

// parseListFilter lee ?types=A,B&task_id=&from=&to=&q=&status=active&limit=
func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	var filter ListFilter

	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxListLimit {
			return ListFilter{}, validation.New("limit", "must be between 1 and %d", MaxListLimit)
		}
		filter.Limit = n
	}

	for _, p := range strings.Split(q.Get("types"), ",") {
		t := EventType(strings.ToUpper(strings.TrimSpace(p)))
		if t == "" {
			continue
		}
		if !t.Valid() {
			return ListFilter{}, validation.New("types", "unknown event type %q", p)
		}
		filter.Types = append(filter.Types, t)
	}

	var err error
	if filter.From, err = parseInstant(q.Get("from"), "from"); err != nil {
		return ListFilter{}, err
	}
	if filter.To, err = parseInstant(q.Get("to"), "to"); err != nil {
		return ListFilter{}, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return ListFilter{}, validation.New("to", "must not be before from")
	}

	switch strings.ToLower(strings.TrimSpace(q.Get("status"))) {
	case "":
	case string(EventStatusActive):
		filter.ActiveOnly = true
	default:
		return ListFilter{}, validation.New("status", "only %q is supported", EventStatusActive)
	}

	filter.TaskID = strings.TrimSpace(q.Get("task_id"))
	filter.Query = strings.TrimSpace(q.Get("q"))
	return filter, nil
}

// parseInstant acepta RFC3339 o una fecha YYYY-MM-DD (medianoche UTC).
func parseInstant(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, validation.New(field, "must be RFC3339 or YYYY-MM-DD")
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.As(err); ok {
		http.Error(w, ve.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toEventResponse(e PetEvent) eventResponse {
	return eventResponse{
		ID:         e.ID,
		PetID:      e.PetID,
		TaskID:     e.TaskID,
		Type:       e.Type,
		OccurredAt: e.OccurredAt,
		RecordedAt: e.RecordedAt,
		Title:      e.Title,
		Notes:      e.Notes,
		ActorType:  e.Actor.Type,
		ActorID:    e.Actor.ID,
		Source:     e.Source,
		Status:     e.Status,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
