// Serves Swagger UI and the OpenAPI document from embedded files.
package docs

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed swagger/*
var swaggerFS embed.FS

// SwaggerFS is the embedded swagger directory, stripped of the "swagger"
// prefix so it can back an HTTP file server directly.
var SwaggerFS http.FileSystem = mustSub()

func mustSub() http.FileSystem {
	sub, err := fs.Sub(swaggerFS, "swagger")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
