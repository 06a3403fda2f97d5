package api

import (
	"net/http"

	"github.com/rs/cors"
)

// corsPolicy allows exactly one origin, with credentials.
func corsPolicy(origin string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "X-Foo", "X-Bar"},
		AllowCredentials: true,
	})
}
