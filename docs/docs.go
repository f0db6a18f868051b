// Package docs holds the swagger description served at /swagger.
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
        "/": {
            "get": {
                "description": "HTML gauge that renders the current display and follows /ws.",
                "produces": ["text/html"],
                "tags": ["dashboard"],
                "summary": "Dashboard page",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/v1/display": {
            "get": {
                "description": "Every rendered region of the gauge, as last written by the poller.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Current display",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Display"}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "description": "Ready-flag and connectivity edges. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List gauge events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["READY", "READY_CLEARED", "DISCONNECTED", "RECONNECTED"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a websocket and pushes {\"type\":\"display\",\"data\":...} right away and then every interval.",
                "tags": ["dashboard"],
                "summary": "Display stream",
                "parameters": [
                    {"type": "string", "example": "200ms", "description": "Go duration, up to 10s", "name": "interval", "in": "query"},
                    {"type": "integer", "example": 200, "description": "Milliseconds, up to 10000", "name": "interval_ms", "in": "query"}
                ],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        }
    },
    "definitions": {
        "models.Display": {
            "type": "object",
            "properties": {
                "bar_width": {"type": "string", "example": "62.5%"},
                "timestamp": {"type": "string", "example": "Time: 12:00:01"},
                "voltage": {"type": "string", "example": "Voltage: 2.5000 V"},
                "current": {"type": "string", "example": "Current: 10.0000 mA"},
                "power": {"type": "string", "example": "Power: 25.0000 mW"},
                "energy": {"type": "string", "example": "Total Energy (Integrated): 12.000000 J"},
                "potential_energy": {"type": "string", "example": "Potential Energy (½CV²): 3.125000 J"},
                "status": {"type": "string", "example": "Status: CHARGING"},
                "energy_kwh": {"type": "string", "example": "Energy Generated: 0.000003332 kWh"},
                "savings": {"type": "string", "example": "Estimated Savings: 0.00001 บาท"},
                "ultimate_active": {"type": "boolean"},
                "connected": {"type": "boolean"},
                "seq": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Energy Gauge API",
	Description:      "Polls the storage board and serves the live energy gauge.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
