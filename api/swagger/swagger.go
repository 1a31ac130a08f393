package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lernplan API",
        "description": "Study plan calendar: slot grid, sessions, rule engine and redistribution.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [
        {
            "BearerAuth": []
        }
    ],
    "tags": [
        {
            "name": "Plans",
            "description": "Plan settings read by the rule engine"
        },
        {
            "name": "Slots",
            "description": "Slot grid"
        },
        {
            "name": "Contents",
            "description": "Content registry"
        },
        {
            "name": "Sessions",
            "description": "Display sessions"
        },
        {
            "name": "Rules",
            "description": "Rule check, redistribution and swap guard"
        },
        {
            "name": "Migration",
            "description": "Legacy import"
        },
        {
            "name": "Export",
            "description": "Calendar download"
        },
        {
            "name": "Health",
            "description": "Probes and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "Ready",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Dependency unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/plans/{planId}": {
            "get": {
                "tags": [
                    "Plans"
                ],
                "summary": "Get plan settings",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Plan not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Plans"
                ],
                "summary": "Update plan settings",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdatePlanRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/wizard/complete": {
            "post": {
                "tags": [
                    "Slots"
                ],
                "summary": "Materialize the plan from the setup wizard",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/WizardRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/slots": {
            "get": {
                "tags": [
                    "Slots"
                ],
                "summary": "List slots",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Slots"
                ],
                "summary": "Bulk replace slots",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/BulkSlotsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Slots"
                ],
                "summary": "Create or update one slot",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SlotInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/slots/assign": {
            "post": {
                "tags": [
                    "Slots"
                ],
                "summary": "Place a content on a day",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AssignContentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Content not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Not enough free slots",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/slots/swap": {
            "post": {
                "tags": [
                    "Slots"
                ],
                "summary": "Swap the content of two slots",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SwapRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Swap rejected, validation in data",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/contents": {
            "get": {
                "tags": [
                    "Contents"
                ],
                "summary": "List contents",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Contents"
                ],
                "summary": "Create or replace content",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateContentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/contents/{contentId}": {
            "get": {
                "tags": [
                    "Contents"
                ],
                "summary": "Get content",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "contentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Content not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Contents"
                ],
                "summary": "Delete content",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "contentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Content not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/sessions": {
            "get": {
                "tags": [
                    "Sessions"
                ],
                "summary": "List sessions",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "format": "date"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/rules/violations": {
            "get": {
                "tags": [
                    "Rules"
                ],
                "summary": "Check rule violations",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/rules/redistribute": {
            "post": {
                "tags": [
                    "Rules"
                ],
                "summary": "Redistribute future content",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RedistributeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/rules/validate-swap": {
            "post": {
                "tags": [
                    "Rules"
                ],
                "summary": "Pre-check a swap",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SwapRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Slot not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/migrate": {
            "post": {
                "tags": [
                    "Migration"
                ],
                "summary": "Migrate legacy slots",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/MigrateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/plans/{planId}/export": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Export the calendar",
                "parameters": [
                    {
                        "name": "planId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File download",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Unsupported format",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        }
    },
    "definitions": {
        "UpdatePlanRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string",
                    "format": "date"
                },
                "endDate": {
                    "type": "string",
                    "format": "date"
                },
                "blocksPerDay": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 3
                },
                "rechtsgebieteGewichtung": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number",
                        "minimum": 0,
                        "maximum": 100
                    }
                },
                "verteilungsmodus": {
                    "type": "string",
                    "enum": [
                        "gemischt",
                        "fokussiert",
                        "themenweise"
                    ]
                }
            }
        },
        "WizardRequest": {
            "type": "object",
            "required": [
                "startDate",
                "endDate",
                "learningDays",
                "blocksPerDay"
            ],
            "properties": {
                "startDate": {
                    "type": "string",
                    "format": "date"
                },
                "endDate": {
                    "type": "string",
                    "format": "date"
                },
                "learningDays": {
                    "type": "array",
                    "items": {
                        "type": "integer",
                        "minimum": 0,
                        "maximum": 6
                    }
                },
                "blocksPerDay": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 3
                },
                "name": {
                    "type": "string"
                },
                "rechtsgebieteGewichtung": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number",
                        "minimum": 0,
                        "maximum": 100
                    }
                },
                "verteilungsmodus": {
                    "type": "string",
                    "enum": [
                        "gemischt",
                        "fokussiert",
                        "themenweise"
                    ]
                }
            }
        },
        "SlotInput": {
            "type": "object",
            "required": [
                "date",
                "position"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "date": {
                    "type": "string",
                    "format": "date"
                },
                "position": {
                    "type": "integer",
                    "minimum": 1
                },
                "contentId": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "empty",
                        "topic",
                        "free"
                    ]
                },
                "blockType": {
                    "type": "string",
                    "enum": [
                        "theme",
                        "lernblock",
                        "repetition",
                        "exam",
                        "free",
                        "private",
                        "vacation",
                        "buffer"
                    ]
                },
                "isLocked": {
                    "type": "boolean"
                },
                "tasks": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {
                                "type": "string"
                            },
                            "title": {
                                "type": "string"
                            },
                            "completed": {
                                "type": "boolean"
                            }
                        }
                    }
                },
                "groupId": {
                    "type": "string"
                },
                "groupSize": {
                    "type": "integer"
                },
                "groupIndex": {
                    "type": "integer"
                },
                "completed": {
                    "type": "boolean"
                },
                "rechtsgebiet": {
                    "type": "string"
                },
                "themeId": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "BulkSlotsRequest": {
            "type": "object",
            "required": [
                "slots"
            ],
            "properties": {
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/SlotInput"
                    }
                }
            }
        },
        "AssignContentRequest": {
            "type": "object",
            "required": [
                "date",
                "contentId",
                "size"
            ],
            "properties": {
                "date": {
                    "type": "string",
                    "format": "date"
                },
                "contentId": {
                    "type": "string"
                },
                "size": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 3
                }
            }
        },
        "SwapRequest": {
            "type": "object",
            "required": [
                "slotA",
                "slotB"
            ],
            "properties": {
                "slotA": {
                    "type": "string"
                },
                "slotB": {
                    "type": "string"
                }
            }
        },
        "CreateContentRequest": {
            "type": "object",
            "required": [
                "title"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "rechtsgebiet": {
                    "type": "string"
                },
                "unterrechtsgebiet": {
                    "type": "string"
                },
                "kapitel": {
                    "type": "string"
                },
                "themeId": {
                    "type": "string"
                },
                "blockType": {
                    "type": "string",
                    "enum": [
                        "theme",
                        "lernblock",
                        "repetition",
                        "exam",
                        "free",
                        "private",
                        "vacation",
                        "buffer"
                    ]
                },
                "tasks": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {
                                "type": "string"
                            },
                            "title": {
                                "type": "string"
                            },
                            "completed": {
                                "type": "boolean"
                            }
                        }
                    }
                }
            }
        },
        "RedistributeRequest": {
            "type": "object",
            "properties": {
                "fromDate": {
                    "type": "string",
                    "format": "date"
                },
                "apply": {
                    "type": "boolean"
                }
            }
        },
        "LegacyBlock": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "date": {
                    "type": "string",
                    "format": "date"
                },
                "position": {
                    "type": "integer"
                },
                "topicId": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "rechtsgebiet": {
                    "type": "string"
                },
                "unterrechtsgebiet": {
                    "type": "string"
                },
                "kapitel": {
                    "type": "string"
                },
                "themeId": {
                    "type": "string"
                },
                "blockType": {
                    "type": "string",
                    "enum": [
                        "theme",
                        "lernblock",
                        "repetition",
                        "exam",
                        "free",
                        "private",
                        "vacation",
                        "buffer"
                    ]
                },
                "status": {
                    "type": "string"
                },
                "tasks": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {
                                "type": "string"
                            },
                            "title": {
                                "type": "string"
                            },
                            "completed": {
                                "type": "boolean"
                            }
                        }
                    }
                },
                "isLocked": {
                    "type": "boolean"
                },
                "completed": {
                    "type": "boolean"
                },
                "groupId": {
                    "type": "string"
                },
                "groupSize": {
                    "type": "integer"
                },
                "groupIndex": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "MigrateRequest": {
            "type": "object",
            "required": [
                "blocks"
            ],
            "properties": {
                "blocks": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "$ref": "#/definitions/LegacyBlock"
                        }
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
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
