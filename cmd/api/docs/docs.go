// Package docs holds the Swagger document served at /swagger. Keep it in step
// with the handler annotations when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/quizzes": {
            "post": {
                "description": "Generates multiple-choice questions on a topic and starts a new session.\nA generation that yields no usable question returns status \"unavailable\" with a notice.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz",
                "parameters": [
                    {
                        "description": "Topic and number of questions",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.StartQuizRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.QuizSessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}": {
            "get": {
                "description": "Returns the current question (without its answer) or the final summary.",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Show the current state of a quiz",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizSessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}/answers": {
            "post": {
                "description": "Records the selected option, reports whether it was correct and advances the quiz.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Answer the current question",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Selected option",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SubmitAnswerRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SubmitAnswerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}/reset": {
            "post": {
                "description": "Clears the session so a new topic can be requested.",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Return home",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizSessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}/scorecard": {
            "get": {
                "description": "Returns the score and the per-question review of a finished quiz.",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Show the scorecard",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ScorecardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorCode": {
            "type": "string"
        },
        "domain.SessionStatus": {
            "type": "string",
            "enum": ["awaiting_topic", "in_progress", "finished", "unavailable"]
        },
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "code": {"$ref": "#/definitions/domain.ErrorCode"},
                "field": {"type": "string"},
                "message": {"type": "string"},
                "value": {}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "dto.QuestionView": {
            "type": "object",
            "properties": {
                "options": {"type": "array", "items": {"type": "string"}},
                "text": {"type": "string"}
            }
        },
        "dto.QuizSessionResponse": {
            "description": "Current state of a quiz session",
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "notice": {"type": "string"},
                "question": {"$ref": "#/definitions/dto.QuestionView"},
                "question_number": {"type": "integer"},
                "score": {"type": "integer"},
                "status": {"allOf": [{"$ref": "#/definitions/domain.SessionStatus"}], "example": "in_progress"},
                "summary": {"$ref": "#/definitions/dto.ScorecardResponse"},
                "topic": {"type": "string"},
                "total_questions": {"type": "integer"}
            }
        },
        "dto.ReviewItemResponse": {
            "type": "object",
            "properties": {
                "answer_listed": {"type": "boolean"},
                "correct": {"type": "boolean"},
                "correct_answer": {"type": "string"},
                "number": {"type": "integer"},
                "question": {"type": "string"},
                "user_answer": {"type": "string"}
            }
        },
        "dto.ScorecardResponse": {
            "description": "Final score and per-question review",
            "type": "object",
            "properties": {
                "perfect": {"type": "boolean"},
                "review": {"type": "array", "items": {"$ref": "#/definitions/dto.ReviewItemResponse"}},
                "score": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "dto.StartQuizRequest": {
            "description": "Request body for generating a quiz",
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 5},
                "session_id": {"type": "string", "example": "01HZX8Y3Q9K6V2D4M7N1P0R5ST"},
                "topic": {"type": "string", "example": "The solar system"}
            }
        },
        "dto.SubmitAnswerRequest": {
            "description": "Request body for answering the current question",
            "type": "object",
            "properties": {
                "selected": {"type": "string", "example": "Jupiter"}
            }
        },
        "dto.SubmitAnswerResponse": {
            "description": "Result of answering a question",
            "type": "object",
            "properties": {
                "correct": {"type": "boolean"},
                "correct_answer": {"type": "string"},
                "session": {"$ref": "#/definitions/dto.QuizSessionResponse"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "MCQ Quiz API",
	Description:      "Generates multiple-choice quizzes with a language model and runs quiz sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
