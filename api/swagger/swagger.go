package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Form Builder API",
        "description": "Dynamic form template builder with a dispatch/effect state container",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Demo login and session restore"},
        {"name": "Templates", "description": "Form template CRUD"},
        {"name": "Submissions", "description": "Filled-form capture, validation and export"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "User and session token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "End current session",
                "responses": {
                    "204": {"description": "Session cleared"}
                }
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "Current user", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "No active session"}
                }
            }
        },
        "/api/v1/templates": {
            "get": {
                "tags": ["Templates"],
                "summary": "List form templates",
                "responses": {
                    "200": {"description": "Templates", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Templates"],
                "summary": "Create a form template",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TemplateDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created template"},
                    "403": {"description": "Admin role required"}
                }
            }
        },
        "/api/v1/templates/{id}": {
            "get": {
                "tags": ["Templates"],
                "summary": "Get one form template",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Template"},
                    "404": {"description": "Template not found"}
                }
            },
            "put": {
                "tags": ["Templates"],
                "summary": "Update a form template",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TemplatePatch"}}
                ],
                "responses": {
                    "200": {"description": "Updated template"},
                    "404": {"description": "Template not found"}
                }
            },
            "delete": {
                "tags": ["Templates"],
                "summary": "Delete a form template",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Template not found"}
                }
            }
        },
        "/api/v1/templates/{id}/submissions": {
            "get": {
                "tags": ["Submissions"],
                "summary": "List submissions for one template",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Submissions"}
                }
            },
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit a filled form",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SubmitPayload"}}
                ],
                "responses": {
                    "201": {"description": "Recorded submission"},
                    "422": {"description": "Validation errors, per field in meta.fieldErrors"}
                }
            }
        },
        "/api/v1/templates/{id}/validate": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Dry-run a submission",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SubmitPayload"}}
                ],
                "responses": {
                    "200": {"description": "Validity flag and per-field messages"}
                }
            }
        },
        "/api/v1/templates/{id}/submissions/export": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Export a template's submissions",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "CSV or PDF attachment"}
                }
            }
        },
        "/api/v1/submissions": {
            "get": {
                "tags": ["Submissions"],
                "summary": "List all submissions",
                "responses": {
                    "200": {"description": "Submissions"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "user"]}
            }
        },
        "TemplateDraft": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/FormField"}},
                "createdBy": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "TemplatePatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/FormField"}},
                "isActive": {"type": "boolean"}
            }
        },
        "FormField": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["text", "textarea", "select", "checkbox", "radio", "date", "checkbox-group", "toggle", "button"]},
                "label": {"type": "string"},
                "name": {"type": "string"},
                "required": {"type": "boolean"},
                "placeholder": {"type": "string"},
                "helpText": {"type": "string"},
                "defaultValue": {"type": "object"},
                "options": {"type": "array", "items": {"type": "object"}},
                "validation": {"type": "array", "items": {"type": "object"}},
                "order": {"type": "integer"}
            }
        },
        "SubmitPayload": {
            "type": "object",
            "required": ["data"],
            "properties": {
                "data": {"type": "object", "description": "Values keyed by field id"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
