// Package docs holds the OpenAPI description served under /swagger.
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
        "/health": {
            "get": {
                "description": "Liveness probe. Does not touch the database.",
                "produces": ["text/plain"],
                "tags": ["root"],
                "summary": "Show the status of server.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/api/v1/quotes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists the caller's documents, newest first.",
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "List quotes",
                "parameters": [
                    {"type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListDocumentsResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a draft. Line amounts and totals are always computed by the server.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Create a quote",
                "parameters": [
                    {"description": "Document details", "name": "document", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateDocumentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "400": {"description": "Invalid input", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/contracts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists the caller's documents, newest first.",
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "List contracts",
                "parameters": [
                    {"type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListDocumentsResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a draft. Line amounts and totals are always computed by the server.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Create a contract",
                "parameters": [
                    {"description": "Document details", "name": "document", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateDocumentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "400": {"description": "Invalid input", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/quotes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Get a quote",
                "parameters": [{"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Document not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Changes the fields of a draft and recomputes its totals. Sent documents are locked.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Update a draft",
                "parameters": [
                    {"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "document", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "409": {"description": "Document is no longer a draft", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotes"],
                "summary": "Delete a draft",
                "parameters": [{"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Document is no longer a draft", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/contracts/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Get a contract",
                "parameters": [{"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Document not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Changes the fields of a draft and recomputes its totals. Sent documents are locked.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Update a draft",
                "parameters": [
                    {"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "document", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "409": {"description": "Document is no longer a draft", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["contracts"],
                "summary": "Delete a draft",
                "parameters": [{"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Document is no longer a draft", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/quotes/{id}/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Moves the draft to sent and returns the recipient link. The link is shown only once.",
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Send a draft to its client",
                "parameters": [{"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SendDocumentResponse"}},
                    "409": {"description": "Document cannot be sent in its current status", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/contracts/{id}/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Moves the draft to sent and returns the recipient link. The link is shown only once.",
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Send a draft to its client",
                "parameters": [{"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SendDocumentResponse"}},
                    "409": {"description": "Document cannot be sent in its current status", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/quotes/{id}/signatures": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "List captured signatures",
                "parameters": [{"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SignatureResponse"}}}
                }
            }
        },
        "/api/v1/contracts/{id}/signatures": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "List captured signatures",
                "parameters": [{"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SignatureResponse"}}}
                }
            }
        },
        "/api/v1/quotes/{id}/convert": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates the single draft contract derived from an approved quote.",
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Convert an approved quote into a contract",
                "parameters": [{"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "409": {"description": "Quote is not approved or was already converted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/contracts/{id}/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Mark a signed contract as completed",
                "parameters": [{"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}},
                    "409": {"description": "Contract is not signed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/contracts/{id}/payment-request": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Ask the client to pay a signed contract",
                "parameters": [{"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Contract is not signed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/audit-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Includes recipient actions on the caller's documents, newest first.",
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "List audit entries about the caller's documents",
                "parameters": [
                    {"enum": ["quote", "contract", "access_token", "signature", "payment_request"], "type": "string", "description": "Resource type", "name": "resource_type", "in": "query"},
                    {"type": "string", "description": "Resource ID", "name": "resource_id", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAuditLogsResponse"}}
                }
            }
        },
        "/public/quote/{token}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "View a quote through its recipient link",
                "parameters": [{"type": "string", "description": "Access token", "name": "token", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PublicDocumentResponse"}},
                    "404": {"description": "Link unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "Too many requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/public/contract/{token}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "View a contract through its recipient link",
                "parameters": [{"type": "string", "description": "Access token", "name": "token", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PublicDocumentResponse"}},
                    "404": {"description": "Link unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "Too many requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/public/quote/{token}/approve": {
            "post": {
                "description": "The signature image is optional.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Approve a quote",
                "parameters": [
                    {"type": "string", "description": "Access token", "name": "token", "in": "path", "required": true},
                    {"description": "Signature", "name": "decision", "in": "body", "schema": {"$ref": "#/definitions/dto.PublicApproveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PublicActionResponse"}},
                    "400": {"description": "Invalid signature", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Link unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Action no longer possible", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/public/contract/{token}/approve": {
            "post": {
                "description": "Requires a signature image.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Sign a contract",
                "parameters": [
                    {"type": "string", "description": "Access token", "name": "token", "in": "path", "required": true},
                    {"description": "Signature", "name": "decision", "in": "body", "schema": {"$ref": "#/definitions/dto.PublicApproveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PublicActionResponse"}},
                    "400": {"description": "Invalid signature", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Link unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Action no longer possible", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/public/quote/{token}/reject": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Reject a quote",
                "parameters": [
                    {"type": "string", "description": "Access token", "name": "token", "in": "path", "required": true},
                    {"description": "Reason", "name": "decision", "in": "body", "schema": {"$ref": "#/definitions/dto.PublicRejectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PublicActionResponse"}},
                    "404": {"description": "Link unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Action no longer possible", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/public/contract/{token}/reject": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Decline a contract",
                "parameters": [
                    {"type": "string", "description": "Access token", "name": "token", "in": "path", "required": true},
                    {"description": "Reason", "name": "decision", "in": "body", "schema": {"$ref": "#/definitions/dto.PublicRejectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PublicActionResponse"}},
                    "404": {"description": "Link unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Action no longer possible", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.PartyRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}, "company": {"type": "string"}, "email": {"type": "string"},
                "phone": {"type": "string"}, "address": {"type": "string"}, "businessNumber": {"type": "string"}
            }
        },
        "dto.LineItemRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}, "description": {"type": "string"},
                "quantity": {"type": "string"}, "unitPrice": {"type": "string"}, "amount": {"type": "string"}
            }
        },
        "dto.CreateDocumentRequest": {
            "type": "object",
            "required": ["client", "items", "title"],
            "properties": {
                "title": {"type": "string"},
                "client": {"$ref": "#/definitions/dto.PartyRequest"},
                "supplier": {"$ref": "#/definitions/dto.PartyRequest"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.LineItemRequest"}},
                "taxRate": {"type": "string"}, "discountAmount": {"type": "string"}, "discountRate": {"type": "string"},
                "expiresAt": {"type": "string"}, "notes": {"type": "string"},
                "subtotal": {"type": "string"}, "tax": {"type": "string"}, "total": {"type": "string"}
            }
        },
        "dto.UpdateDocumentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "client": {"$ref": "#/definitions/dto.PartyRequest"},
                "supplier": {"$ref": "#/definitions/dto.PartyRequest"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.LineItemRequest"}},
                "taxRate": {"type": "string"}, "discountAmount": {"type": "string"}, "discountRate": {"type": "string"},
                "clearDiscount": {"type": "boolean"}, "expiresAt": {"type": "string"}, "notes": {"type": "string"}
            }
        },
        "dto.DocumentResponse": {
            "type": "object",
            "properties": {
                "documentID": {"type": "string"}, "type": {"type": "string"}, "status": {"type": "string"},
                "title": {"type": "string"}, "client": {"type": "object"}, "supplier": {"type": "object"},
                "items": {"type": "array", "items": {"type": "object"}},
                "taxRate": {"type": "string"}, "discountAmount": {"type": "string"}, "discountRate": {"type": "string"},
                "subtotal": {"type": "string"}, "tax": {"type": "string"}, "discount": {"type": "string"}, "total": {"type": "string"},
                "expiresAt": {"type": "string"}, "sourceQuoteID": {"type": "string"}, "notes": {"type": "string"},
                "allowedActions": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"}, "createdBy": {"type": "string"},
                "lastUpdatedAt": {"type": "string"}, "lastUpdatedBy": {"type": "string"}
            }
        },
        "dto.ListDocumentsResponse": {
            "type": "object",
            "properties": {
                "documents": {"type": "array", "items": {"$ref": "#/definitions/dto.DocumentResponse"}},
                "nextToken": {"type": "string"}
            }
        },
        "dto.SendDocumentResponse": {
            "type": "object",
            "properties": {
                "document": {"$ref": "#/definitions/dto.DocumentResponse"},
                "publicURL": {"type": "string"},
                "tokenExpiresAt": {"type": "string"}
            }
        },
        "dto.SignatureResponse": {
            "type": "object",
            "properties": {
                "signatureID": {"type": "string"}, "signerType": {"type": "string"}, "signerName": {"type": "string"},
                "signerEmail": {"type": "string"}, "signatureData": {"type": "string"}, "contentType": {"type": "string"},
                "payloadDigest": {"type": "string"}, "signedAt": {"type": "string"}, "ipAddress": {"type": "string"}
            }
        },
        "dto.ListAuditLogsResponse": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"type": "object"}},
                "nextToken": {"type": "string"}
            }
        },
        "dto.PublicDocumentResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string"}, "status": {"type": "string"}, "title": {"type": "string"},
                "client": {"type": "object"}, "supplier": {"type": "object"},
                "items": {"type": "array", "items": {"type": "object"}},
                "subtotal": {"type": "string"}, "tax": {"type": "string"}, "discount": {"type": "string"}, "total": {"type": "string"},
                "expiresAt": {"type": "string"}, "notes": {"type": "string"},
                "allowedActions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.PublicApproveRequest": {
            "type": "object",
            "properties": {
                "signature_data": {"type": "string"}, "signer_name": {"type": "string"}, "signer_email": {"type": "string"}
            }
        },
        "dto.PublicRejectRequest": {
            "type": "object",
            "properties": {"reason": {"type": "string"}}
        },
        "dto.PublicActionResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bizdoc Backend API",
	Description:      "Quotes, contracts and tokenized recipient signing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
