// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athloshq/athlos/internal/admin/auth"
	"github.com/athloshq/athlos/internal/platform/middleware"
	"github.com/athloshq/athlos/internal/platform/respond"
	"github.com/athloshq/athlos/internal/platform/sec"
)

/*
TestAdminFlow walks an account through its full lifecycle over HTTP: creation,
login, guarded access within and beyond its grant, and lockout after
deactivation. The user endpoints are stand-in probes; the interesting part is
the auth surface in front of them.
*/
func TestAdminFlow(t *testing.T) {
	repo := newFakeAdminRepository()
	tokens, err := sec.NewTokenService("test-secret", "athlos.app", 30*time.Minute)
	require.NoError(t, err)

	service := auth.NewService(repo, tokens, 30*time.Minute)
	guard := auth.NewGuard(repo)
	handler := auth.NewHandler(service, guard)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/admin/auth", handler.Routes())
	router.With(guard.Require(auth.ResourceUsers, auth.ActionRead)).
		Get("/admin/users", func(writer http.ResponseWriter, _ *http.Request) {
			respond.OK(writer, map[string]string{"status": "read ok"})
		})
	router.With(guard.Require(auth.ResourceUsers, auth.ActionWrite)).
		Put("/admin/users/1", func(writer http.ResponseWriter, _ *http.Request) {
			respond.OK(writer, map[string]string{"status": "write ok"})
		})
	router.With(guard.Require(auth.ResourceUsers, auth.ActionDelete)).
		Delete("/admin/users/1", func(writer http.ResponseWriter, _ *http.Request) {
			respond.NoContent(writer)
		})

	do := func(method, target, token string, body []byte) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, target, bytes.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	// 1. Provision an account limited to users read/write.
	admin, err := service.CreateAdmin(context.Background(), auth.CreateAdminInput{
		Email:    "ops@athlos.app",
		Password: "correct horse battery",
		FullName: "Ops Admin",
		Role:     sec.RoleAdmin,
		Permissions: []sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead, auth.ActionWrite}},
		},
	})
	require.NoError(t, err)

	// 2. Login and pull the bearer token out of the session envelope.
	loginBody, err := json.Marshal(map[string]string{
		"email":    "ops@athlos.app",
		"password": "correct horse battery",
	})
	require.NoError(t, err)

	recorder := do(http.MethodPost, "/admin/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, recorder.Code)

	var loginEnvelope struct {
		Data auth.LoginSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loginEnvelope))
	token := loginEnvelope.Data.AccessToken
	require.NotEmpty(t, token)
	assert.Equal(t, "Bearer", loginEnvelope.Data.TokenType)

	// 3. Granted actions pass.
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/admin/users", token, nil).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodPut, "/admin/users/1", token, nil).Code)

	// 4. An ungranted action is refused and named.
	recorder = do(http.MethodDelete, "/admin/users/1", token, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var forbidden respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &forbidden))
	assert.Equal(t, "Missing actions for users: delete", forbidden.Error)

	// 5. Deactivation locks the account out even with a live token.
	require.NoError(t, repo.SetActive(context.Background(), admin.ID, false))

	recorder = do(http.MethodGet, "/admin/users", token, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var locked respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &locked))
	assert.Equal(t, "Account is deactivated", locked.Error)

	// 6. And the deactivated account cannot log back in.
	recorder = do(http.MethodPost, "/admin/auth/login", "", loginBody)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAdminBootstrap verifies a fresh deployment can create its very first
administrator without credentials, and that the open window closes as soon as
one account exists.
*/
func TestAdminBootstrap(t *testing.T) {
	repo := newFakeAdminRepository()
	tokens, err := sec.NewTokenService("test-secret", "athlos.app", 30*time.Minute)
	require.NoError(t, err)

	service := auth.NewService(repo, tokens, 30*time.Minute)
	handler := auth.NewHandler(service, auth.NewGuard(repo))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/admin/auth", handler.Routes())

	create := func(email string) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]string{
			"email":     email,
			"password":  "correct horse battery",
			"full_name": "Bootstrap Admin",
			"role":      string(sec.RoleSuperAdmin),
		})
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodPost, "/admin/auth/admins", bytes.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	// 1. With no accounts on record, the unauthenticated create is admitted.
	recorder := create("first@athlos.app")
	assert.Equal(t, http.StatusCreated, recorder.Code)

	// 2. Once an account exists, the same request needs credentials again.
	recorder = create("second@athlos.app")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var refused respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &refused))
	assert.Equal(t, "Authentication required", refused.Error)
}
