// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/auth/role-selection": {"post": {"tags": ["Auth"], "summary": "Remember the sign-up role", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/auth/callback": {"get": {"tags": ["Auth"], "summary": "Sign-in callback", "responses": {"302": {"description": "Found"}}}},
        "/auth/session": {"get": {"tags": ["Auth"], "summary": "Current session", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/logout": {"post": {"tags": ["Auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}}}},
        "/apartments": {
            "get": {"tags": ["Apartments"], "summary": "Search apartments", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Apartments"], "summary": "Create apartment", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/apartments/map": {"get": {"tags": ["Apartments"], "summary": "Apartment map clusters", "responses": {"200": {"description": "OK"}}}},
        "/apartments/{id}": {
            "get": {"tags": ["Apartments"], "summary": "Get apartment", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["Apartments"], "summary": "Update apartment", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Apartments"], "summary": "Delete apartment", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/bids": {
            "get": {"tags": ["Bids"], "summary": "List bids", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Bids"], "summary": "Place bid", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/bids/validate-amount": {"post": {"tags": ["Bids"], "summary": "Validate bid amount", "responses": {"200": {"description": "OK"}}}},
        "/bids/{id}": {"get": {"tags": ["Bids"], "summary": "Get bid", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/bids/{id}/{action}": {"post": {"tags": ["Bids"], "summary": "Bid action", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/tours": {
            "get": {"tags": ["Tours"], "summary": "List tours", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Tours"], "summary": "Book tour", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/tours/{id}/{action}": {"post": {"tags": ["Tours"], "summary": "Tour action", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/dashboard": {"get": {"tags": ["Dashboard"], "summary": "My dashboard", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/dashboard/{role}": {"get": {"tags": ["Dashboard"], "summary": "Role dashboard", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/profile": {
            "get": {"tags": ["Profile"], "summary": "Get profile", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Profile"], "summary": "Update profile", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/brokerage/brokerages": {"post": {"tags": ["Brokerage"], "summary": "Register brokerage", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/brokerage/managers": {"post": {"tags": ["Brokerage"], "summary": "Create manager", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/brokerage/agents": {"post": {"tags": ["Brokerage"], "summary": "Create agent", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/uaepass/authorize": {"get": {"tags": ["UAE Pass"], "summary": "UAE Pass authorize URL", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/uaepass/userinfo": {"get": {"tags": ["UAE Pass"], "summary": "UAE Pass user info", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/uaepass/signature": {"post": {"tags": ["UAE Pass"], "summary": "Start e-signature", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/uaepass/signature/{id}": {"get": {"tags": ["UAE Pass"], "summary": "E-signature status", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "name": "rw_session", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Rentwise Portal API",
	Description:      "Session, bid, tour and onboarding endpoints of the rental marketplace portal",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
