// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/athloshq/athlos/internal/platform/middleware"
)

// corsConfig is a minimal AppConfig for exercising the CORS allowlist.
type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

/*
TestCORS_OriginAllowlist verifies the production allowlist admits the apex
domain, its subdomains, and explicitly configured origins, and nothing else.
A lookalike domain that merely ends in the product name must not pass.
*/
func TestCORS_OriginAllowlist(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"apex domain", corsConfig{}, "https://athlos.app", true},
		{"subdomain", corsConfig{}, "https://admin.athlos.app", true},
		{"lookalike domain refused", corsConfig{}, "https://evilathlos.app", false},
		{"configured origin", corsConfig{origins: []string{"https://dash.example.com"}}, "https://dash.example.com", true},
		{"unknown origin refused", corsConfig{}, "https://dash.example.com", false},
		{"development admits anything", corsConfig{development: true}, "https://anything.example.com", true},
	}

	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/health", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(next).ServeHTTP(recorder, request)

			allowOrigin := recorder.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed {
				assert.Equal(t, tt.origin, allowOrigin)
			} else {
				assert.Empty(t, allowOrigin)
			}
		})
	}
}

/*
TestCORS_Preflight verifies OPTIONS requests short-circuit with 204 and do
not reach the wrapped handler.
*/
func TestCORS_Preflight(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		reached = true
	})

	request := httptest.NewRequest(http.MethodOptions, "/admin/users", nil)
	request.Header.Set("Origin", "https://admin.athlos.app")
	recorder := httptest.NewRecorder()

	middleware.CORS(corsConfig{})(next).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.False(t, reached)
	assert.Equal(t, "https://admin.athlos.app", recorder.Header().Get("Access-Control-Allow-Origin"))
}
