package api

import (
	_ "embed"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openAPISpec []byte

// OpenAPIDocument serves the embedded OpenAPI 3 document.
func OpenAPIDocument(writer http.ResponseWriter, _ *http.Request) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(openAPISpec)
}

// SwaggerUI serves the Swagger UI under /docs/, pointed at /openapi.json.
func SwaggerUI() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
		httpSwagger.DocExpansion("list"),
	)
}
