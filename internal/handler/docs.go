package handler

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// DefaultOpenAPIPath is where the API description lives relative to the repository root.
const DefaultOpenAPIPath = "api/openapi.yaml"

// swagger.html loads Swagger UI from a CDN and points it at /openapi.yaml.
//
//go:embed swagger.html
var swaggerHTML string

// RegisterDocs mounts GET /openapi.yaml (read from specPath on each request) and GET /docs.
func RegisterDocs(r *gin.Engine, specPath string) {
	if specPath == "" {
		specPath = DefaultOpenAPIPath
	}
	r.GET("/openapi.yaml", func(c *gin.Context) {
		data, err := os.ReadFile(specPath)
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to read openapi spec: %v", err)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
	})
	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})
}
