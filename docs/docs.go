// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "moderndash_session",
            "in": "header",
            "description": "Session token, sent as the moderndash_session cookie or as Authorization: Bearer <token>"
        }
    },
    "paths": {
        "/": {
            "get": {
                "tags": ["public"],
                "summary": "Landing page",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/login": {
            "get": {
                "tags": ["auth"],
                "summary": "Login view",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Demo accounts"},
                    "303": {"description": "Already authenticated"}
                }
            },
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{
                    "in": "body",
                    "name": "body",
                    "required": true,
                    "schema": {"$ref": "#/definitions/handler.loginRequest"}
                }],
                "responses": {
                    "200": {"description": "Token and identity"},
                    "400": {"description": "Missing or malformed fields"},
                    "401": {"description": "Invalid email or password"},
                    "409": {"description": "Authentication already in progress"},
                    "504": {"description": "Authentication timed out"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/session": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Session state"}}
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["dashboard"],
                "summary": "Dashboard overview",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Role-specific overview"},
                    "202": {"description": "Session still loading"},
                    "303": {"description": "Not authenticated"}
                }
            }
        },
        "/dashboard/navigation": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["dashboard"],
                "summary": "Dashboard navigation",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Visible navigation items"}}
            }
        },
        "/dashboard/admin": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["dashboard"],
                "summary": "Admin panel",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "System stats and user table"},
                    "303": {"description": "Not an administrator"}
                }
            }
        },
        "/api/users": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["users"],
                "summary": "List users",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "security": [{"SessionCookie": []}],
                "tags": ["users"],
                "summary": "Create user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid payload"}, "422": {"description": "Not created"}}
            }
        },
        "/api/users/{id}": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["users"],
                "summary": "Get user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "patch": {
                "security": [{"SessionCookie": []}],
                "tags": ["users"],
                "summary": "Update user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid payload"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"SessionCookie": []}],
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/api/projects": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["projects"],
                "summary": "List projects",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"SessionCookie": []}],
                "tags": ["projects"],
                "summary": "Create project",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid payload"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}
            }
        }
    },
    "definitions": {
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ModernDash API",
	Description:      "Role-based admin dashboard backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
