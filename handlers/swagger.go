package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves a Swagger UI page and the OpenAPI document it loads.
//   - GET /swagger/index.html
//   - GET /swagger/doc.json
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>glovebox API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "glovebox", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Classification": { "type": "object", "properties": {
        "status": { "type": "string", "enum": ["none", "expired", "expiring", "valid"] },
        "daysRemaining": { "type": "integer", "minimum": 0 },
        "displayFraction": { "type": "number", "enum": [0, 0.3, 1] } } },
      "DocumentInput": { "type": "object", "required": ["title"], "properties": {
        "title": { "type": "string" },
        "expiryDate": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" },
        "vehicleId": { "type": "string" } } },
      "VehicleInput": { "type": "object", "properties": {
        "type": { "type": "string", "enum": ["car", "bike", "van", "lorry"] },
        "name": { "type": "string" }, "plate": { "type": "string" },
        "odo": { "type": "integer" }, "nextService": { "type": "integer" } } },
      "LogInput": { "type": "object", "required": ["type", "cost", "odo"], "properties": {
        "type": { "type": "string", "enum": ["fuel", "service"] },
        "cost": { "type": "number" }, "odo": { "type": "integer" },
        "liters": { "type": "number" }, "serviceCategory": { "type": "string" }, "notes": { "type": "string" } } }
    }
  },
  "paths": {
    "/auth/register": { "post": { "summary": "Create a password account", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "201": { "description": "tokens returned" }, "409": { "description": "email taken" } } } },
    "/auth/login": { "post": { "summary": "Password login", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } } } },
    "/auth/refresh": { "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } } },
    "/auth/logout": { "post": { "summary": "Logout and invalidate refresh token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "logged out" } } } },
    "/api/v1/me": {
      "get": { "summary": "Current profile", "security": [{"bearer": []}], "responses": { "200": { "description": "user" } } },
      "put": { "summary": "Rename current user", "security": [{"bearer": []}], "responses": { "200": { "description": "user" } } }
    },
    "/api/vehicles": {
      "get": { "summary": "List vehicles, oldest first", "security": [{"bearer": []}], "responses": { "200": { "description": "vehicles" } } },
      "post": { "summary": "Add a vehicle", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/VehicleInput" } } } }, "responses": { "201": { "description": "created" } } }
    },
    "/api/vehicles/active": { "get": { "summary": "Default vehicle", "security": [{"bearer": []}], "responses": { "200": { "description": "vehicle" }, "404": { "description": "no vehicles" } } } },
    "/api/vehicles/{vehicleId}": {
      "get": { "summary": "Get a vehicle", "security": [{"bearer": []}], "responses": { "200": { "description": "vehicle" } } },
      "put": { "summary": "Update a vehicle", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/VehicleInput" } } } }, "responses": { "200": { "description": "vehicle" } } }
    },
    "/api/vehicles/{vehicleId}/documents": { "get": { "summary": "Tracked documents with expiry classification", "security": [{"bearer": []}], "responses": { "200": { "description": "documents with classification and presentation" } } } },
    "/api/vehicles/{vehicleId}/documents/summary": { "get": { "summary": "Document counts per expiry status", "security": [{"bearer": []}], "responses": { "200": { "description": "counts" } } } },
    "/api/vehicles/{vehicleId}/logs": {
      "get": { "summary": "Expense log, newest first", "security": [{"bearer": []}], "responses": { "200": { "description": "entries" } } },
      "post": { "summary": "Add fuel or service entry", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/LogInput" } } } }, "responses": { "201": { "description": "created" } } }
    },
    "/api/vehicles/{vehicleId}/total": { "get": { "summary": "Total spent on a vehicle", "security": [{"bearer": []}], "responses": { "200": { "description": "{vehicleId, totalSpent}" } } } },
    "/api/vehicles/{vehicleId}/summary": { "get": { "summary": "Spending totals and fuel economy", "security": [{"bearer": []}], "responses": { "200": { "description": "summary" } } } },
    "/api/logs/{id}": { "delete": { "summary": "Delete a log entry", "security": [{"bearer": []}], "responses": { "204": { "description": "deleted" } } } },
    "/api/documents": { "post": { "summary": "Create a tracked document", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DocumentInput" } } } }, "responses": { "201": { "description": "created" }, "400": { "description": "invalid date format" } } } },
    "/api/documents/{id}": {
      "get": { "summary": "Get a document", "security": [{"bearer": []}], "responses": { "200": { "description": "document" } } },
      "put": { "summary": "Update title and expiry date", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/DocumentInput" } } } }, "responses": { "200": { "description": "document" } } },
      "delete": { "summary": "Delete a document", "security": [{"bearer": []}], "responses": { "204": { "description": "deleted" } } }
    },
    "/api/documents/{id}/scan": {
      "post": { "summary": "Upload a scanned copy (multipart field file)", "security": [{"bearer": []}], "responses": { "200": { "description": "document" }, "503": { "description": "storage not configured" } } },
      "get": { "summary": "Download the scanned copy", "security": [{"bearer": []}], "responses": { "200": { "description": "file" } } }
    },
    "/api/documents/{id}/scan/url": { "get": { "summary": "Presigned download URL", "security": [{"bearer": []}], "responses": { "200": { "description": "url" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
