package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>vbrlandscap API — Swagger</title>
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

// Minimal OpenAPI document covering the admin-facing endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "vbrlandscap API", "version": "v0.1.0" },
  "paths": {
    "/api/auth/login": {
      "post": {
        "summary": "Sign in with email and password; sets the session cookie",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "session issued" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/session": {
      "post": { "summary": "Exchange an id token for a provider session cookie", "responses": { "200": { "description": "cookie set" }, "401": { "description": "invalid token" } } },
      "delete": { "summary": "Sign out", "responses": { "200": { "description": "cookies cleared" } } }
    },
    "/api/auth/verify": {
      "get": { "summary": "Verify the session cookie", "responses": { "200": { "description": "authenticated" }, "401": { "description": "not authenticated" } } }
    },
    "/api/sections": {
      "get": { "summary": "All page sections keyed by id", "responses": { "200": { "description": "section map" } } },
      "post": { "summary": "Seed missing sections with defaults", "responses": { "200": { "description": "seeded ids" } } }
    },
    "/api/sections/{id}": {
      "get": { "summary": "One section (default when unwritten)", "responses": { "200": { "description": "section" }, "404": { "description": "unknown section" } } },
      "put": { "summary": "Merge-update a section", "responses": { "200": { "description": "ack" } } }
    },
    "/api/projects": {
      "get": { "summary": "Project list with page copy and categories", "responses": { "200": { "description": "listing" } } },
      "post": { "summary": "Create a project", "responses": { "201": { "description": "created" }, "400": { "description": "invalid body" } } },
      "put": { "summary": "Update page copy and/or replace categories", "responses": { "200": { "description": "ack" } } }
    },
    "/api/projects/{slug}": {
      "get": { "summary": "One project by slug or id (fallback on miss)", "responses": { "200": { "description": "project" } } },
      "put": { "summary": "Merge-update a project", "responses": { "200": { "description": "ack" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a project", "responses": { "200": { "description": "ack" }, "404": { "description": "not found" } } }
    },
    "/api/careers": {
      "get": { "summary": "Careers page data", "responses": { "200": { "description": "page data" } } },
      "post": { "summary": "Seed the careers page", "responses": { "200": { "description": "ack" } } },
      "put": { "summary": "Merge-update the careers page", "responses": { "200": { "description": "ack" } } }
    },
    "/api/sectors": {
      "get": { "summary": "Sector list", "responses": { "200": { "description": "sectors" } } },
      "post": { "summary": "Seed or create a sector", "responses": { "201": { "description": "created" } } }
    },
    "/api/sectors/{slug}": {
      "get": { "summary": "Sector content (lazily created)", "responses": { "200": { "description": "content" }, "404": { "description": "unknown sector" } } },
      "put": { "summary": "Merge-update sector content", "responses": { "200": { "description": "ack" } } },
      "delete": { "summary": "Reset sector content to defaults", "responses": { "200": { "description": "ack" } } }
    },
    "/api/eco-matrix/{group}": {
      "get": { "summary": "Eco-matrix group (menu, dimensions, nature, overview)", "responses": { "200": { "description": "group document" } } },
      "post": { "summary": "Add an item / update the overview", "responses": { "201": { "description": "created" } } },
      "put": { "summary": "Replace items or merge one item", "responses": { "200": { "description": "ack" }, "404": { "description": "item not found" } } },
      "delete": { "summary": "Remove an item by id", "responses": { "200": { "description": "ack" }, "404": { "description": "item not found" } } }
    },
    "/api/contact/submit": {
      "post": { "summary": "Contact form submission", "responses": { "200": { "description": "accepted" }, "429": { "description": "rate limited" }, "503": { "description": "form disabled" } } }
    },
    "/api/upload": {
      "post": { "summary": "Upload one file to blob storage", "responses": { "200": { "description": "public url" } } },
      "get": { "summary": "List stored blobs", "responses": { "200": { "description": "files" } } },
      "delete": { "summary": "Delete a blob by url", "responses": { "200": { "description": "ack" }, "400": { "description": "missing or invalid url" } } }
    }
  }
}`
