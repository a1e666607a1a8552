// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/auth/sign-up": {"post": {"tags": ["auth"], "summary": "Register a guest", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.signUpRequest"}}], "responses": {"200": {"description": "id"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}, "409": {"description": "USERNAME_TAKEN", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/auth/sign-in": {"post": {"tags": ["auth"], "summary": "Sign in", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.signInRequest"}}], "responses": {"200": {"description": "token"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/api/v1/stay/check-in": {"post": {"security": [{"BearerAuth": []}], "tags": ["stay"], "summary": "Check in", "responses": {"200": {"description": "room_id"}, "409": {"description": "NO_ROOM_AVAILABLE or ALREADY_CHECKED_IN", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/api/v1/stay/check-out": {"post": {"security": [{"BearerAuth": []}], "tags": ["stay"], "summary": "Check out", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Bill"}}, "409": {"description": "NOT_CHECKED_IN", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/api/v1/stay/cost": {"get": {"security": [{"BearerAuth": []}], "tags": ["stay"], "summary": "Running cost", "responses": {"200": {"description": "cost"}}}},
        "/api/v1/stay/bill": {"get": {"security": [{"BearerAuth": []}], "tags": ["stay"], "summary": "Current bill", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Bill"}}}}},
        "/api/v1/ac/on": {"post": {"security": [{"BearerAuth": []}], "tags": ["ac"], "summary": "Turn the AC on", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.acRequest"}}], "responses": {"200": {"description": "status, room_id"}, "403": {"description": "NOT_ROOM_OCCUPANT", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}, "409": {"description": "ROOM_NOT_OCCUPIED or AC_ALREADY_ON", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/api/v1/ac/off": {"post": {"security": [{"BearerAuth": []}], "tags": ["ac"], "summary": "Turn the AC off", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.acRequest"}}], "responses": {"200": {"description": "status, room_id, settings"}, "409": {"description": "AC_ALREADY_OFF", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/api/v1/ac/settings": {"post": {"security": [{"BearerAuth": []}], "tags": ["ac"], "summary": "Change AC settings", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.acSettingsRequest"}}], "responses": {"200": {"description": "status, room_id, settings"}, "400": {"description": "INVALID_SETTINGS", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}, "409": {"description": "AC_OFF", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/api/v1/rooms": {"get": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "List rooms", "responses": {"200": {"description": "count, rooms"}}}},
        "/api/v1/rooms/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Get room", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Room"}}, "404": {"description": "ROOM_NOT_FOUND", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/api/v1/rooms/{id}/usage": {"get": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Room usage report", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Report"}}}}},
        "/api/v1/logs": {"get": {"security": [{"BearerAuth": []}], "tags": ["logs"], "summary": "List room events", "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}, {"enum": ["CHECK_IN", "CHECK_OUT", "AC_ON", "AC_OFF", "SETTINGS_CHANGE"], "type": "string", "name": "type", "in": "query"}, {"type": "integer", "name": "room_id", "in": "query"}], "responses": {"200": {"description": "count, events"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}},
        "/ws": {"get": {"tags": ["rooms"], "summary": "Live room status", "parameters": [{"type": "integer", "name": "room_id", "in": "query", "required": true}, {"type": "string", "name": "interval", "in": "query"}, {"type": "integer", "name": "interval_ms", "in": "query"}], "responses": {"400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}}}}
    },
    "definitions": {
        "handlers.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "string"}}},
        "handlers.signUpRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "phone": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.signInRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.acRequest": {"type": "object", "required": ["room_id"], "properties": {"room_id": {"type": "integer"}}},
        "handlers.acSettingsRequest": {"type": "object", "required": ["room_id", "temperature", "fan_speed", "mode"], "properties": {"room_id": {"type": "integer"}, "temperature": {"type": "integer"}, "fan_speed": {"type": "string"}, "mode": {"type": "string"}}},
        "models.ClimateSettings": {"type": "object", "properties": {"temperature": {"type": "integer"}, "fan_speed": {"type": "string"}, "mode": {"type": "string"}}},
        "models.Room": {"type": "object", "properties": {"id": {"type": "integer"}, "occupied": {"type": "boolean"}, "ac_on": {"type": "boolean"}, "occupant_id": {"type": "integer"}, "checkin_time": {"type": "string"}, "ac_interval_start": {"type": "string"}, "settings": {"$ref": "#/definitions/models.ClimateSettings"}}},
        "models.UsageRecord": {"type": "object", "properties": {"id": {"type": "integer"}, "user_id": {"type": "integer"}, "room_id": {"type": "integer"}, "start_time": {"type": "string"}, "end_time": {"type": "string"}, "settings": {"$ref": "#/definitions/models.ClimateSettings"}, "cost": {"type": "number"}}},
        "models.Bill": {"type": "object", "properties": {"guest_id": {"type": "integer"}, "room_id": {"type": "integer"}, "checkin_time": {"type": "string"}, "cost": {"type": "number"}, "invoices": {"type": "array", "items": {"$ref": "#/definitions/models.UsageRecord"}}}},
        "models.Report": {"type": "object", "properties": {"room_id": {"type": "integer"}, "total_cost": {"type": "number"}, "report": {"type": "array", "items": {"$ref": "#/definitions/models.UsageRecord"}}}}
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
	Title:            "Hotel Climate API",
	Description:      "Room occupancy and metered air-conditioning billing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
