package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Bitshala Cohort Admin API",
        "description": "Weekly roster, scoring and leaderboard service for cohort administration",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Admin login"},
        {"name": "Roster", "description": "Weekly roster rows and attendance"},
        {"name": "Students", "description": "Per-student history and profile"},
        {"name": "Leaderboard", "description": "Cross-week score aggregates"},
        {"name": "Exports", "description": "Roster downloads"}
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
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weekly_data/{week}": {
            "get": {
                "tags": ["Roster"],
                "summary": "Fetch week roster (seeds from the previous week on first open)",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Bulk-save week roster rows",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/WeekRecord"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid row", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weekly_data/{week}/delete": {
            "post": {
                "tags": ["Roster"],
                "summary": "Delete one roster row",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WeekRecord"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Row not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weekly_data/{week}/export.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the week roster as CSV",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/weekly_data/{week}/export.pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the week roster as PDF",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "PDF file"},
                    "404": {"description": "PDF export disabled"}
                }
            }
        },
        "/attendance/weekly_counts/{week}": {
            "get": {
                "tags": ["Roster"],
                "summary": "Attendance count for one week",
                "parameters": [
                    {"name": "week", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/count": {
            "get": {
                "tags": ["Students"],
                "summary": "Distinct enrolled student count",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/total_scores": {
            "get": {
                "tags": ["Leaderboard"],
                "summary": "Cumulative totals per student, ranked",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{name}/history": {
            "get": {
                "tags": ["Students"],
                "summary": "Week-by-week record and derived stats",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{name}/submission": {
            "get": {
                "tags": ["Students"],
                "summary": "Exercise submission link for one week",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "week", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/background": {
            "get": {
                "tags": ["Students"],
                "summary": "Self-reported enrollment profile",
                "parameters": [
                    {"name": "email", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "WeekRecord": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "group_id": {"type": "string"},
                "ta": {"type": "string"},
                "attendance": {"type": "string", "enum": ["yes", "no"]},
                "fa": {"type": "integer"},
                "fb": {"type": "integer"},
                "fc": {"type": "integer"},
                "fd": {"type": "integer"},
                "bonus_attempt": {"type": "integer"},
                "bonus_answer_quality": {"type": "integer"},
                "bonus_follow_up": {"type": "integer"},
                "exercise_submitted": {"type": "string", "enum": ["yes", "no"]},
                "exercise_test_passing": {"type": "string", "enum": ["yes", "no"]},
                "exercise_good_documentation": {"type": "string", "enum": ["yes", "no"]},
                "exercise_good_structure": {"type": "string", "enum": ["yes", "no"]},
                "total": {"type": "integer"},
                "mail": {"type": "string"},
                "week": {"type": "integer"}
            },
            "required": ["name", "group_id", "mail", "week"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
