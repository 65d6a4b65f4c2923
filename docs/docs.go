// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Validation error or weak password", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Token"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Inactive account", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "Too many failed attempts", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/me": {
            "get": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}}},
            "put": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Update own profile", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}, "409": {"description": "Email taken", "schema": {"$ref": "#/definitions/Error"}}}},
            "delete": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Delete own account", "responses": {"204": {"description": "No Content"}, "403": {"description": "Admin accounts cannot be deleted", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/users": {
            "get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "List users", "parameters": [{"in": "query", "name": "skip", "type": "integer"}, {"in": "query", "name": "limit", "type": "integer"}, {"in": "query", "name": "search", "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/products": {
            "get": {"tags": ["products"], "summary": "List active products", "parameters": [{"in": "query", "name": "skip", "type": "integer"}, {"in": "query", "name": "limit", "type": "integer"}, {"in": "query", "name": "q", "type": "string"}, {"in": "query", "name": "min_price", "type": "integer"}, {"in": "query", "name": "max_price", "type": "integer"}, {"in": "query", "name": "sort", "type": "string", "enum": ["new", "price_asc", "price_desc", "name", "stock_asc"]}], "responses": {"200": {"description": "OK"}}}
        },
        "/healthz": {
            "get": {"tags": ["ops"], "summary": "Liveness and database check", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"error": {"type": "string"}, "message": {"type": "string"}, "detail": {"type": "object"}}},
        "RegisterRequest": {"type": "object", "required": ["email", "password", "name"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string", "enum": ["client", "admin"]}}},
        "LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "Token": {"type": "object", "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}, "user_role": {"type": "string"}, "expires_in": {"type": "integer"}}},
        "User": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "email": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string"}, "is_active": {"type": "boolean"}, "created_at": {"type": "string", "format": "date-time"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Accounts, authentication and catalog for the storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
