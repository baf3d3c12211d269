// Package docs holds the OpenAPI document served at /docs/doc.json.
// Code generated by swag init; edits should go through `make swagger-gen`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "agentd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness document",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.RootResponse"}
                    }
                }
            }
        },
        "/api/v1/mcp/execute": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["agent"],
                "summary": "Execute an agent instruction",
                "parameters": [
                    {
                        "description": "Instruction payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.ExecuteRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Synchronous result",
                        "schema": {"$ref": "#/definitions/types.FinalOutput"}
                    },
                    "202": {
                        "description": "Task accepted (polling mode)",
                        "schema": {"$ref": "#/definitions/types.TaskCreationResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "503": {
                        "description": "Backend not ready",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/api/v1/tasks/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Poll an asynchronous task",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Task id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.TaskStatusResponse"}
                    },
                    "404": {
                        "description": "Unknown or expired task id",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Still loading"}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "error": {"type": "string", "example": "invalid JSON body"}
            }
        },
        "types.ExecuteRequest": {
            "type": "object",
            "properties": {
                "INPUT": {"type": "string", "example": "Hello!"},
                "polling": {"type": "boolean", "example": false}
            }
        },
        "types.FinalOutput": {
            "type": "object",
            "properties": {
                "output": {}
            }
        },
        "types.RootResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "agentd is running"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "types.TaskCreationResponse": {
            "type": "object",
            "properties": {
                "task_id": {"type": "string", "example": "6f1c9c2e-8a7b-4d3e-9f10-2b45c1a7e9d0"}
            }
        },
        "types.TaskStatusResponse": {
            "type": "object",
            "properties": {
                "result": {},
                "status": {"type": "string", "example": "completed"},
                "task_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "agentd API",
	Description:      "HTTP API for the agentd model-serving endpoint: execute instructions, poll tasks, health checks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
