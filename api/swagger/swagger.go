package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Print Shop Inventory Stub",
        "description": "In-memory development backend for the print shop console",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": ["http"],
    "tags": [
        {"name": "Die cuts", "description": "Cutting dies by number and project"},
        {"name": "Raw materials", "description": "Substrate rolls received from suppliers"},
        {"name": "Inks", "description": "Ink containers; listing answers a bare array"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/api/die-cuts": {
            "get": {
                "tags": ["Die cuts"],
                "summary": "List die cuts",
                "parameters": [
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/size"},
                    {"$ref": "#/parameters/sort"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["ACTIVE", "INACTIVE", "AWAY", "ARCHIVED"]},
                    {"name": "projectId", "in": "query", "type": "integer"},
                    {"name": "dieNumber", "in": "query", "type": "string"},
                    {"name": "machine", "in": "query", "type": "string"},
                    {"name": "createdDateFrom", "in": "query", "type": "string", "format": "date"},
                    {"name": "createdDateTo", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "Page envelope", "schema": {"$ref": "#/definitions/PageEnvelope"}}}
            },
            "post": {
                "tags": ["Die cuts"],
                "summary": "Create a die cut",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DieCutPayload"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/DieCut"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/die-cuts/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["Die cuts"], "summary": "Get a die cut", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DieCut"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Die cuts"], "summary": "Replace a die cut", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DieCutPayload"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DieCut"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["Die cuts"], "summary": "Delete a die cut", "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        },
        "/api/raw-materials/search": {
            "get": {
                "tags": ["Raw materials"],
                "summary": "List raw material rolls",
                "parameters": [
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/size"},
                    {"$ref": "#/parameters/sort"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["AVAILABLE", "IN_USE", "READY", "COMPLAINT"]},
                    {"name": "batchNumber", "in": "query", "type": "string"},
                    {"name": "supplier", "in": "query", "type": "string"},
                    {"name": "widthMm", "in": "query", "type": "number"},
                    {"name": "lengthM", "in": "query", "type": "number"}
                ],
                "responses": {"200": {"description": "Page envelope", "schema": {"$ref": "#/definitions/PageEnvelope"}}}
            }
        },
        "/api/raw-materials": {
            "post": {"tags": ["Raw materials"], "summary": "Register a roll", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RawMaterialPayload"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/raw-materials/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["Raw materials"], "summary": "Get a roll", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Raw materials"], "summary": "Replace a roll", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RawMaterialPayload"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["Raw materials"], "summary": "Delete a roll", "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        },
        "/api/inks": {
            "get": {
                "tags": ["Inks"],
                "summary": "List inks",
                "parameters": [
                    {"$ref": "#/parameters/sort"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                    {"name": "batchNumber", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "Bare array of inks", "schema": {"type": "array", "items": {"type": "object"}}}}
            },
            "post": {"tags": ["Inks"], "summary": "Register an ink", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InkPayload"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}}}
        },
        "/api/inks/{id}": {
            "parameters": [{"$ref": "#/parameters/id"}],
            "get": {"tags": ["Inks"], "summary": "Get an ink", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Inks"], "summary": "Replace an ink", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InkPayload"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["Inks"], "summary": "Delete an ink", "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        }
    },
    "parameters": {
        "id": {"name": "id", "in": "path", "required": true, "type": "integer"},
        "page": {"name": "page", "in": "query", "type": "integer", "description": "0-based page index"},
        "size": {"name": "size", "in": "query", "type": "integer", "description": "page size, at most 200"},
        "sort": {"name": "sort", "in": "query", "type": "string", "description": "field,asc or field,desc"}
    },
    "definitions": {
        "PageEnvelope": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"type": "object"}},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "number": {"type": "integer"},
                "size": {"type": "integer"},
                "first": {"type": "boolean"},
                "last": {"type": "boolean"}
            }
        },
        "DieCut": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "dieNumber": {"type": "string"},
                "repeatTeeth": {"type": "integer"},
                "projectId": {"type": "integer"},
                "status": {"type": "string"},
                "machine": {"type": "string"},
                "storageLocation": {"type": "string"},
                "createdDate": {"type": "string", "format": "date"},
                "notes": {"type": "string"}
            }
        },
        "DieCutPayload": {
            "type": "object",
            "required": ["dieNumber", "status"],
            "properties": {
                "dieNumber": {"type": "string"},
                "repeatTeeth": {"type": "integer"},
                "projectId": {"type": "integer"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "AWAY", "ARCHIVED"]},
                "machine": {"type": "string", "description": "required while ACTIVE"},
                "storageLocation": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "RawMaterialPayload": {
            "type": "object",
            "required": ["widthMm", "lengthM", "batchNumber", "supplier", "receivedDate", "status"],
            "properties": {
                "widthMm": {"type": "number"},
                "lengthM": {"type": "number"},
                "batchNumber": {"type": "string"},
                "supplier": {"type": "string"},
                "receivedDate": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["AVAILABLE", "IN_USE", "READY", "COMPLAINT"]},
                "warehouseLocation": {"type": "string", "description": "required while AVAILABLE"},
                "assignedMachine": {"type": "string", "description": "required while READY or IN_USE"}
            }
        },
        "InkPayload": {
            "type": "object",
            "required": ["inkColorId", "quantityKg", "batchNumber", "status"],
            "properties": {
                "inkColorId": {"type": "integer"},
                "quantityKg": {"type": "number"},
                "storageLocation": {"type": "string"},
                "batchNumber": {"type": "string"},
                "receivedDate": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                "machine": {"type": "string", "description": "required while ACTIVE"},
                "notes": {"type": "string"}
            }
        },
        "FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "fieldErrors": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
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
