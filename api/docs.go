// Package api contains the swagger documentation. Regenerate it with
// swag init from the annotations of the handlers.
package api

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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/": {
            "get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK"}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/healthz": {
            "get": {"tags": ["General"], "summary": "Get health", "responses": {"204": {"description": "No Content"}, "500": {"description": "Internal Server Error"}}}
        },
        "/version": {
            "get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/users": {
            "post": {"tags": ["Users"], "summary": "Create user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/users/token": {
            "post": {"tags": ["Users"], "summary": "Issue token", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/v1/users/me": {
            "get": {"tags": ["Users"], "summary": "Get authenticated user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/v1/expense-categories": {
            "get": {"tags": ["Expense Categories"], "summary": "Get expense categories", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Expense Categories"], "summary": "Create expense categories", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/v1/expense-categories/{id}": {
            "get": {"tags": ["Expense Categories"], "summary": "Get expense category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Expense Categories"], "summary": "Update expense category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Expense Categories"], "summary": "Delete expense category", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/v1/income-categories": {
            "get": {"tags": ["Income Categories"], "summary": "Get income categories", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Income Categories"], "summary": "Create income categories", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/v1/income-categories/{id}": {
            "get": {"tags": ["Income Categories"], "summary": "Get income category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Income Categories"], "summary": "Update income category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Income Categories"], "summary": "Delete income category", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/v1/expenses": {
            "get": {"tags": ["Expenses"], "summary": "Get expenses", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Expenses"], "summary": "Record expenses", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/expenses/{id}": {
            "get": {"tags": ["Expenses"], "summary": "Get expense", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Expenses"], "summary": "Update expense", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"tags": ["Expenses"], "summary": "Delete expense", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/incomes": {
            "get": {"tags": ["Incomes"], "summary": "Get incomes", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Incomes"], "summary": "Create incomes", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/v1/incomes/{id}": {
            "get": {"tags": ["Incomes"], "summary": "Get income", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Incomes"], "summary": "Update income", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"tags": ["Incomes"], "summary": "Delete income", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/finances": {
            "get": {"tags": ["Finances"], "summary": "Get finances", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/finances/export": {
            "get": {"tags": ["Finances"], "summary": "Export finances", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/investments": {
            "get": {"tags": ["Investments"], "summary": "Get investments", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
