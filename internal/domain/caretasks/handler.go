package caretasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-planner/internal/middleware"
	"pet-care-planner/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// PetDirectory expone lo que las rutas de tareas necesitan de pets
// sin importar el paquete (pets ya importa caretasks).
type PetDirectory interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
	NameOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petDir PetDirectory) {
	r.Route("/pets/{petID}/tasks", func(tr chi.Router) {
		tr.Post("/", createTaskHandler(svc, petDir))
		tr.Get("/", listTasksHandler(svc, petDir))
		tr.Get("/{taskID}", getTaskHandler(svc, petDir))
		tr.Patch("/{taskID}", updateTaskHandler(svc, petDir))
		tr.Delete("/{taskID}", deleteTaskHandler(svc, petDir))
		tr.Post("/{taskID}/complete", completeTaskHandler(svc, petDir))
	})
}

// createTaskRequest es el cuerpo para crear una tarea de cuidado.
type createTaskRequest struct {
	Name          string `json:"name"`
	TaskType      string `json:"task_type"`
	Duration      int    `json:"duration"` // minutos
	Priority      string `json:"priority" enums:"high,medium,low"`
	PreferredTime string `json:"preferred_time"` // HH:MM o H:MM AM/PM, opcional
	Notes         string `json:"notes"`
	Frequency     string `json:"frequency" enums:"once,daily,biweekly,weekly,monthly,quarterly,yearly"`
	DueDate       string `json:"due_date"` // YYYY-MM-DD, opcional (default hoy)
}

type updateTaskRequest struct {
	Name          *string `json:"name"`
	TaskType      *string `json:"task_type"`
	Duration      *int    `json:"duration"`
	Priority      *string `json:"priority"`
	PreferredTime *string `json:"preferred_time"`
	Notes         *string `json:"notes"`
	Frequency     *string `json:"frequency"`
	DueDate       *string `json:"due_date"`
}

// TaskResponse es la representación pública de una tarea (la reutiliza schedules).
type TaskResponse struct {
	ID            string     `json:"id"`
	PetID         string     `json:"pet_id"`
	PetName       string     `json:"pet_name"`
	Name          string     `json:"name"`
	TaskType      string     `json:"task_type"`
	Duration      int        `json:"duration"`
	Priority      Priority   `json:"priority"`
	PreferredTime string     `json:"preferred_time,omitempty"`
	Notes         string     `json:"notes"`
	Frequency     Frequency  `json:"frequency"`
	DueDate       string     `json:"due_date"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type completeTaskResponse struct {
	Completed TaskResponse  `json:"completed"`
	Next      *TaskResponse `json:"next"`
}

// createTaskHandler godoc
// @Summary Crear tarea de cuidado
// @Description Crea una tarea para la mascota. Valida prioridad, frecuencia, duración y formato de hora (estricto).
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body createTaskRequest true "Datos de la tarea"
// @Success 201 {object} TaskResponse
// @Failure 400 {string} string "mensaje de validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/tasks [post]
func createTaskHandler(svc *Service, petDir PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petDir)
		if !ok {
			return
		}

		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var due time.Time
		if strings.TrimSpace(req.DueDate) != "" {
			d, err := time.Parse(DateLayout, req.DueDate)
			if err != nil {
				http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			due = d
		}

		// sin pet_name la tarea no aparece en los filtros por mascota
		petName, err := petDir.NameOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		t, err := svc.Create(r.Context(), NewInput{
			PetID:         petID,
			PetName:       petName,
			Name:          req.Name,
			TaskType:      req.TaskType,
			Duration:      req.Duration,
			Priority:      req.Priority,
			PreferredTime: req.PreferredTime,
			Notes:         req.Notes,
			Frequency:     req.Frequency,
			DueDate:       due,
			StrictTime:    true,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(t))
	}
}

// listTasksHandler godoc
// @Summary Listar tareas de una mascota
// @Description Lista las tareas en orden de inserción (pendientes y completadas).
// @Tags tasks
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} TaskResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/tasks [get]
func listTasksHandler(svc *Service, petDir PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petDir)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

// getTaskHandler godoc
// @Summary Obtener tarea
// @Tags tasks
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param taskID path string true "ID de la tarea"
// @Success 200 {object} TaskResponse
// @Failure 404 {string} string "task not found"
// @Router /pets/{petID}/tasks/{taskID} [get]
func getTaskHandler(svc *Service, petDir PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := loadTask(w, r, svc, petDir)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(t))
	}
}

// updateTaskHandler godoc
// @Summary Actualizar tarea
// @Description PATCH parcial; due_date solo puede avanzar. Las tareas completadas son historial y no se editan.
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param taskID path string true "ID de la tarea"
// @Param payload body updateTaskRequest true "Campos a modificar"
// @Success 200 {object} TaskResponse
// @Failure 400 {string} string "mensaje de validación"
// @Failure 404 {string} string "task not found"
// @Failure 409 {string} string "task already completed"
// @Router /pets/{petID}/tasks/{taskID} [patch]
func updateTaskHandler(svc *Service, petDir PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := loadTask(w, r, svc, petDir)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateTaskRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:          req.Name,
			TaskType:      req.TaskType,
			Duration:      req.Duration,
			Priority:      req.Priority,
			PreferredTime: req.PreferredTime,
			Notes:         req.Notes,
			Frequency:     req.Frequency,
			StrictTime:    true,
		}
		if req.DueDate != nil {
			d, err := time.Parse(DateLayout, *req.DueDate)
			if err != nil {
				http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.DueDate = &d
		}

		updated, err := svc.Update(r.Context(), t.ID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(updated))
	}
}

// deleteTaskHandler godoc
// @Summary Eliminar tarea
// @Tags tasks
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param taskID path string true "ID de la tarea"
// @Success 204
// @Failure 404 {string} string "task not found"
// @Router /pets/{petID}/tasks/{taskID} [delete]
func deleteTaskHandler(svc *Service, petDir PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := loadTask(w, r, svc, petDir)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), t.ID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// completeTaskHandler godoc
// @Summary Completar tarea
// @Description Marca la tarea como completada. Si es recurrente devuelve la siguiente ocurrencia en `next`.
// @Tags tasks
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param taskID path string true "ID de la tarea"
// @Success 200 {object} completeTaskResponse
// @Failure 404 {string} string "task not found"
// @Failure 409 {string} string "task already completed"
// @Router /pets/{petID}/tasks/{taskID}/complete [post]
func completeTaskHandler(svc *Service, petDir PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := loadTask(w, r, svc, petDir)
		if !ok {
			return
		}

		done, next, err := svc.Complete(r.Context(), t.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := completeTaskResponse{Completed: ToResponse(done)}
		if next != nil {
			n := ToResponse(*next)
			resp.Next = &n
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// authorizePet exige identidad y que la mascota sea del usuario.
func authorizePet(w http.ResponseWriter, r *http.Request, petDir PetDirectory) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	petID := chi.URLParam(r, "petID")
	owner, err := petDir.OwnerOf(r.Context(), petID)
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return "", false
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return petID, true
}

func loadTask(w http.ResponseWriter, r *http.Request, svc *Service, petDir PetDirectory) (CareTask, bool) {
	petID, ok := authorizePet(w, r, petDir)
	if !ok {
		return CareTask{}, false
	}

	t, err := svc.GetByID(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil || t.PetID != petID {
		http.Error(w, "task not found", http.StatusNotFound)
		return CareTask{}, false
	}
	return t, true
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.As(err); ok {
		http.Error(w, ve.Error(), http.StatusBadRequest)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func ToResponse(t CareTask) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		PetID:         t.PetID,
		PetName:       t.PetName,
		Name:          t.Name,
		TaskType:      t.TaskType,
		Duration:      t.Duration,
		Priority:      t.Priority,
		PreferredTime: t.PreferredTime,
		Notes:         t.Notes,
		Frequency:     t.Frequency,
		DueDate:       t.DueDate.Format(DateLayout),
		Completed:     t.Completed,
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func ToResponses(items []CareTask) []TaskResponse {
	out := make([]TaskResponse, 0, len(items))
	for _, t := range items {
		out = append(out, ToResponse(t))
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
