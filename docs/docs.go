// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/catalogd/main.go -o docs
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
        "/krm/greet": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["text/plain"],
                "tags": ["krm"],
                "summary": "Greeting",
                "responses": {
                    "200": {"description": "WELCOME TO KRM", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/krm/r": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["text/plain"],
                "tags": ["krm"],
                "summary": "Query greeting",
                "parameters": [{"type": "string", "description": "Value to echo", "name": "k", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/list": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["list"],
                "summary": "List stored elements",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["text/plain"],
                "produces": ["text/plain"],
                "tags": ["list"],
                "summary": "Append an element",
                "parameters": [{"description": "Raw element text", "name": "element", "in": "body", "required": true, "schema": {"type": "string"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "delete": {
                "security": [{"BasicAuth": []}],
                "produces": ["text/plain"],
                "tags": ["list"],
                "summary": "Clear the list",
                "responses": {
                    "200": {"description": "All elements cleared.", "schema": {"type": "string"}}
                }
            }
        },
        "/krm/post": {
            "post": {
                "security": [{"BasicAuth": []}],
                "produces": ["text/plain"],
                "tags": ["krm"],
                "summary": "Post greeting",
                "responses": {
                    "200": {"description": "KRM IS BACK ", "schema": {"type": "string"}}
                }
            }
        },
        "/krm/{id}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["text/plain"],
                "tags": ["krm"],
                "summary": "Echo an integer",
                "parameters": [{"type": "integer", "description": "Any integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/products": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Add a product",
                "parameters": [{"description": "Product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.productRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "put": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Replace a product",
                "parameters": [{"description": "Product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.productRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [{"type": "integer", "description": "Product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "delete": {
                "security": [{"BasicAuth": []}],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [{"type": "integer", "description": "Product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/user/": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List user records",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [{"description": "User", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/user/{id}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user record",
                "parameters": [{"type": "integer", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/homes": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["homes"],
                "summary": "List homes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Home"}}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["homes"],
                "summary": "Upsert a home",
                "parameters": [{"description": "Home", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Home"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Home"}}
                }
            }
        },
        "/homes/{id}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["homes"],
                "summary": "Get a home",
                "parameters": [{"type": "string", "description": "Home id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Home"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current principal",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.meResponse"}}
                }
            }
        },
        "/auth/token": {
            "post": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue a bearer token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "api.errorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.Product": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "price": {"type": "number"}}
        },
        "domain.Home": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "place": {"type": "string"}, "name": {"type": "string"}}
        },
        "handler.productRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"id": {"type": "integer", "minimum": 0}, "name": {"type": "string"}, "price": {"type": "number", "minimum": 0}}
        },
        "handler.registerUserRequest": {
            "type": "object",
            "required": ["UserId", "UserName", "UserPassword"],
            "properties": {"UserId": {"type": "integer"}, "UserName": {"type": "string"}, "UserPassword": {"type": "string"}}
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {"UserId": {"type": "integer"}, "UserName": {"type": "string"}}
        },
        "handler.meResponse": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "roles": {"type": "array", "items": {"type": "string"}}}
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "token_type": {"type": "string"}, "expires_at": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "KRM Catalog API",
	Description:      "Product catalog behind a stateless Basic authentication gate.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
