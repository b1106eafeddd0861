// Package swagger provides API documentation
package swagger

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
        "/health": {"get": {"tags": ["Health"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/conversations": {
            "get": {"tags": ["Conversations"], "summary": "List conversations", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["Conversations"], "summary": "Start a conversation", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/conversations/{id}": {
            "get": {"tags": ["Conversations"], "summary": "Get a conversation", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["Conversations"], "summary": "Continue a conversation", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Conversations"], "summary": "Delete a conversation", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/documents": {
            "get": {"tags": ["Documents"], "summary": "List documents", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Documents"], "summary": "Ingest a document", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/documents/{id}": {
            "get": {"tags": ["Documents"], "summary": "Get a document", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "BOT GPT API",
	Description:      "Conversational API with document-grounded replies",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
