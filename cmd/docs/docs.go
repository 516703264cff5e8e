// Package docs holds the swagger spec served by the swagger UI routes.
// Regenerate with `swag init -g cmd/tapir_backend/main.go -o cmd/docs`
// after changing handler annotations.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in a staff account",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid username or password"}
                }
            }
        },
        "/draft-users/register": {
            "post": {
                "tags": ["draft-users"],
                "summary": "Register as a prospective member",
                "parameters": [
                    {"name": "draft", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "429": {"description": "Too many requests"}
                }
            }
        },
        "/draft-users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "List draft users",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Create a draft user",
                "parameters": [
                    {"name": "draft", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/draft-users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Get a draft user by ID",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Update a draft user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "draft", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Delete a draft user",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"204": {"description": "No content"}, "404": {"description": "Not found"}}
            }
        },
        "/draft-users/{id}/signed-membership-agreement": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Record the signed membership agreement",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/draft-users/{id}/attended-welcome-session": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Record welcome session attendance",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/draft-users/{id}/register-payment": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Record the membership fee payment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/draft-users/{id}/convert": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["draft-users"],
                "summary": "Convert a draft user into a member",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Draft has not completed the required steps"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/members": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "List the member roster",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "as_of", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/members/export/mailchimp": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Export the mailing list",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV content"}}
            }
        },
        "/members/matching-program": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "List matching program participants",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/members/welcome-desk": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["welcome-desk"],
                "summary": "Search members at the welcome desk",
                "parameters": [{"name": "search", "in": "query", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/members/welcome-desk/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["welcome-desk"],
                "summary": "Welcome desk member detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/members/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Get a member by ID",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Update a member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "member", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/members/{id}/log-entries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "List a member's audit trail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/members/{id}/attended-welcome-session": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Record welcome session attendance",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/members/{id}/account": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Create a login account for a member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "account", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Companies cannot have accounts"},
                    "409": {"description": "Member already has an account"}
                }
            }
        },
        "/members/{id}/send-membership-confirmation": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Send the membership confirmation email",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/members/{id}/share-ownerships": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["share-ownerships"],
                "summary": "Create shares for a member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "shares", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not found"}}
            }
        },
        "/share-ownerships/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["share-ownerships"],
                "summary": "Update a share record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "share", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["share-ownerships"],
                "summary": "Delete a share record",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"204": {"description": "No content"}, "403": {"description": "Forbidden"}}
            }
        },
        "/documents/membership-agreement": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Download the blank membership agreement",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/members/{id}/documents/membership-agreement": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Download a member's membership agreement",
                "produces": ["application/pdf"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/members/{id}/documents/membership-confirmation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Download a membership confirmation",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "num_shares", "in": "query", "type": "integer"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/members/{id}/documents/extra-shares-confirmation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Download an extra-shares confirmation",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "num_shares", "in": "query", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Missing parameters"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tapir Members API",
	Description:      "Membership administration backend for a cooperative supermarket.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
