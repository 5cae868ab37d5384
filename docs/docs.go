// Package docs registra la especificación OpenAPI que sirve /swagger.
// Se mantiene a mano: cada @Router de los handlers debe tener su entrada en docTemplate.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owner"],
                "summary": "Perfil del dueño autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.ownerResponse"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owner"],
                "summary": "Crear o actualizar el perfil del dueño",
                "parameters": [
                    {"description": "Perfil", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/owners.putOwnerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.ownerResponse"}},
                    "400": {"description": "invalid body", "schema": {"type": "string"}}
                }
            }
        },
        "/me/tasks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Tareas de todas las mascotas del dueño",
                "parameters": [
                    {"type": "boolean", "name": "completed", "in": "query"},
                    {"type": "string", "name": "pet", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/caretasks.TaskResponse"}}}
                }
            }
        },
        "/me/conflicts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Conflictos de horario entre todas las mascotas",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schedules.conflictsResponse"}}
                }
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas del dueño",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"description": "Mascota", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid body", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Perfil de la mascota con cantidad de tareas",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Editar perfil de la mascota",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"description": "Cambios", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.updatePetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}}
                }
            }
        },
        "/pets/{petID}/tasks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Listar tareas de la mascota",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/caretasks.TaskResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Crear tarea de cuidado",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"description": "Tarea", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/caretasks.createTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/caretasks.TaskResponse"}}
                }
            }
        },
        "/pets/{petID}/tasks/{taskID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Obtener tarea",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "name": "taskID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/caretasks.TaskResponse"}},
                    "404": {"description": "task not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Actualizar tarea",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "name": "taskID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/caretasks.updateTaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/caretasks.TaskResponse"}},
                    "400": {"description": "mensaje de validación", "schema": {"type": "string"}},
                    "404": {"description": "task not found", "schema": {"type": "string"}},
                    "409": {"description": "task already completed", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Eliminar tarea",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "name": "taskID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "task not found", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}/tasks/{taskID}/complete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Completar tarea (crea la siguiente si recurre)",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "name": "taskID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/caretasks.completeTaskResponse"}},
                    "409": {"description": "task already completed", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}/schedule": {
            "post": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Generar el plan del día",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD (default hoy)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schedules.scheduleResponse"}}
                }
            }
        },
        "/pets/{petID}/agenda": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Tareas de la mascota ordenadas",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"enum": ["priority", "time"], "type": "string", "name": "sort", "in": "query"},
                    {"type": "boolean", "name": "completed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/caretasks.TaskResponse"}}}
                }
            }
        },
        "/pets/{petID}/conflicts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Conflictos de horario de la mascota",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schedules.conflictsResponse"}}
                }
            }
        },
        "/pets/{petID}/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Registro de actividad de la mascota",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "description": "lista separada por comas", "name": "types", "in": "query"},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "string", "name": "task_id", "in": "query"},
                    {"type": "string", "description": "active", "name": "status", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/events.eventResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Agregar una nota",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"description": "Nota", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/events.createEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/events.eventResponse"}}
                }
            }
        },
        "/pets/{petID}/events/{eventID}/void": {
            "post": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Anular un evento",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/events.eventResponse"}}
                }
            }
        }
    },
    "definitions": {
        "caretasks.TaskResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "pet_id": {"type": "string"},
                "pet_name": {"type": "string"},
                "name": {"type": "string"},
                "task_type": {"type": "string"},
                "duration": {"type": "integer"},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]},
                "preferred_time": {"type": "string"},
                "notes": {"type": "string"},
                "frequency": {"type": "string", "enum": ["once", "daily", "biweekly", "weekly", "monthly", "quarterly", "yearly"]},
                "due_date": {"type": "string"},
                "completed": {"type": "boolean"},
                "completed_at": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "caretasks.createTaskRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "task_type": {"type": "string"},
                "duration": {"type": "integer"},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]},
                "preferred_time": {"type": "string"},
                "notes": {"type": "string"},
                "frequency": {"type": "string"},
                "due_date": {"type": "string"}
            }
        },
        "caretasks.updateTaskRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "task_type": {"type": "string"},
                "duration": {"type": "integer"},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]},
                "preferred_time": {"type": "string"},
                "notes": {"type": "string"},
                "frequency": {"type": "string"},
                "due_date": {"type": "string"}
            }
        },
        "caretasks.completeTaskResponse": {
            "type": "object",
            "properties": {
                "completed": {"$ref": "#/definitions/caretasks.TaskResponse"},
                "next": {"$ref": "#/definitions/caretasks.TaskResponse"}
            }
        },
        "events.createEventRequest": {
            "type": "object",
            "properties": {
                "occurred_at": {"type": "string"},
                "task_id": {"type": "string"},
                "title": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "events.eventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "pet_id": {"type": "string"},
                "task_id": {"type": "string"},
                "type": {"type": "string", "enum": ["TASK_COMPLETED", "TASK_RECURRED", "SCHEDULE_GENERATED", "NOTE"]},
                "occurred_at": {"type": "string"},
                "recorded_at": {"type": "string"},
                "title": {"type": "string"},
                "notes": {"type": "string"},
                "actor_type": {"type": "string"},
                "actor_id": {"type": "string"},
                "source": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "owners.putOwnerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "time_available": {"type": "integer"},
                "preferences": {"type": "object", "additionalProperties": true}
            }
        },
        "owners.ownerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "time_available": {"type": "integer"},
                "preferences": {"type": "object", "additionalProperties": true},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string", "enum": ["dog", "cat", "rabbit", "bird", "other"]},
                "breed": {"type": "string"},
                "age": {"type": "integer"},
                "special_needs": {"type": "array", "items": {"type": "string"}}
            }
        },
        "pets.updatePetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "integer"},
                "special_needs": {"type": "array", "items": {"type": "string"}}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "integer"},
                "special_needs": {"type": "array", "items": {"type": "string"}},
                "info": {"type": "string"},
                "task_count": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "schedules.conflictsResponse": {
            "type": "object",
            "properties": {
                "conflicts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "schedules.scheduleResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "pet_id": {"type": "string"},
                "pet_name": {"type": "string"},
                "time_available": {"type": "integer"},
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/caretasks.TaskResponse"}},
                "excluded": {"type": "array", "items": {"type": "object", "properties": {"task": {"$ref": "#/definitions/caretasks.TaskResponse"}, "reason": {"type": "string"}}}},
                "total_duration": {"type": "integer"},
                "feasible": {"type": "boolean"},
                "conflicts": {"type": "array", "items": {"type": "string"}},
                "explanation": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Pet Care Planner API",
	Description:      "Mascotas, tareas de cuidado y plan diario dentro del tiempo disponible del dueño.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
