// Package docs registers the OpenAPI description served at /swagger/index.html.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/service.AuthResult"}},
                    "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.AuthResult"}},
                    "401": {"description": "invalid credentials"}}}
        },
        "/api/v1/users/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PublicUser"}}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/users/me/password": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Change password",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/tasks": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "List tasks",
                "parameters": [
                    {"type": "string", "in": "query", "name": "due_date"},
                    {"type": "integer", "in": "query", "name": "priority"},
                    {"type": "string", "in": "query", "name": "status", "enum": ["TODO", "IN_PROGRESS", "DONE"]}
                ],
                "responses": {"200": {"description": "count, tasks"}, "400": {"description": "Bad Request"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Create task",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTaskRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Task"}}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/tasks/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Get task",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Task"}}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Update task",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateTaskRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Task"}}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Delete task",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/tasks/stream": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Stream tasks (WebSocket)",
                "responses": {"101": {"description": "Switching Protocols"}}}
        },
        "/api/v1/events": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "List activity events",
                "parameters": [
                    {"type": "string", "in": "query", "name": "from"},
                    {"type": "string", "in": "query", "name": "to"},
                    {"type": "string", "in": "query", "name": "type"}
                ],
                "responses": {"200": {"description": "count, events"}, "400": {"description": "Bad Request"}}}
        }
    },
    "definitions": {
        "handlers.RegisterRequest": {"type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "full_name": {"type": "string"}, "role": {"type": "string"}}},
        "handlers.LoginRequest": {"type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.CreateTaskRequest": {"type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"},
                "due_date": {"type": "string"}, "priority": {"type": "integer"}}},
        "handlers.UpdateTaskRequest": {"type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"},
                "due_date": {"type": "string"}, "priority": {"type": "integer"}}},
        "models.PublicUser": {"type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "full_name": {"type": "string"},
                "role": {"type": "string"}, "created_at": {"type": "string"}}},
        "models.Task": {"type": "object",
            "properties": {"id": {"type": "string"}, "owner_id": {"type": "string"}, "title": {"type": "string"},
                "description": {"type": "string"}, "status": {"type": "string"}, "due_date": {"type": "string"},
                "priority": {"type": "integer"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "service.AuthResult": {"type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/models.PublicUser"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Task Tracker API",
	Description:      "Multi-tenant task tracker: bearer-token auth and per-user task CRUD.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
