// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
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

// guardHarness is a minimal authenticated router with one guarded endpoint.
type guardHarness struct {
	repo    *fakeAdminRepository
	tokens  *sec.TokenService
	handler http.Handler
}

func newGuardHarness(t *testing.T, resource string, actions ...string) *guardHarness {
	t.Helper()

	repo := newFakeAdminRepository()
	tokens, err := sec.NewTokenService("test-secret", "athlos.app", 30*time.Minute)
	require.NoError(t, err)

	guard := auth.NewGuard(repo)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.With(guard.Require(resource, actions...)).Get("/guarded", func(writer http.ResponseWriter, request *http.Request) {
		admin := auth.AdminFrom(request.Context())
		require.NotNil(t, admin)
		respond.OK(writer, map[string]string{"email": admin.Email})
	})

	return &guardHarness{repo: repo, tokens: tokens, handler: router}
}

// login issues a real token for the seeded account's current state.
func (harness *guardHarness) login(t *testing.T, admin *auth.Admin) string {
	t.Helper()
	token, err := harness.tokens.GenerateAccessToken(
		admin.Email, admin.ID, string(admin.Role), admin.PermissionSet(), time.Minute)
	require.NoError(t, err)
	return token
}

func (harness *guardHarness) get(token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	harness.handler.ServeHTTP(recorder, request)
	return recorder
}

func errorMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Error
}

/*
TestGuard_SupersetPasses verifies an account granted a superset of the
required actions is admitted and sees the live account in context.
*/
func TestGuard_SupersetPasses(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceUsers, auth.ActionRead)

	admin := harness.repo.seed(&auth.Admin{
		Email:    "admin@athlos.app",
		Role:     sec.RoleAdmin,
		IsActive: true,
		Permissions: sec.EncodePermissions([]sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead, auth.ActionWrite, auth.ActionDelete}},
		}),
	})

	recorder := harness.get(harness.login(t, admin))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "admin@athlos.app")
}

/*
TestGuard_NoToken verifies an unauthenticated request is rejected with 401.
*/
func TestGuard_NoToken(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceUsers, auth.ActionRead)

	recorder := harness.get("")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Authentication required", errorMessage(t, recorder))
}

/*
TestGuard_UngrantedResource verifies the 403 names the missing resource when
the account holds no grant for it at all.
*/
func TestGuard_UngrantedResource(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceVideos, auth.ActionRead)

	admin := harness.repo.seed(&auth.Admin{
		Email:    "admin@athlos.app",
		Role:     sec.RoleAdmin,
		IsActive: true,
		Permissions: sec.EncodePermissions([]sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}},
		}),
	})

	recorder := harness.get(harness.login(t, admin))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "Missing permission for resource: videos", errorMessage(t, recorder))
}

/*
TestGuard_MissingActions verifies the 403 enumerates exactly the actions the
live grant lacks, in required order.
*/
func TestGuard_MissingActions(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceUsers, auth.ActionRead, auth.ActionDelete, auth.ActionExport)

	admin := harness.repo.seed(&auth.Admin{
		Email:    "admin@athlos.app",
		Role:     sec.RoleAdmin,
		IsActive: true,
		Permissions: sec.EncodePermissions([]sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}},
		}),
	})

	recorder := harness.get(harness.login(t, admin))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "Missing actions for users: delete, export", errorMessage(t, recorder))
}

/*
TestGuard_DeactivatedAfterIssue verifies a token issued before deactivation is
useless afterwards: the guard trusts the live flag, not the token.
*/
func TestGuard_DeactivatedAfterIssue(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceUsers, auth.ActionRead)

	admin := harness.repo.seed(&auth.Admin{
		Email:    "admin@athlos.app",
		Role:     sec.RoleAdmin,
		IsActive: true,
		Permissions: sec.EncodePermissions([]sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}},
		}),
	})

	token := harness.login(t, admin)
	require.NoError(t, harness.repo.SetActive(context.Background(), admin.ID, false))

	recorder := harness.get(token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Account is deactivated", errorMessage(t, recorder))
}

/*
TestGuard_DeletedAfterIssue verifies a token for a deleted account yields 401.
*/
func TestGuard_DeletedAfterIssue(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceUsers, auth.ActionRead)

	admin := harness.repo.seed(&auth.Admin{
		Email:    "admin@athlos.app",
		Role:     sec.RoleAdmin,
		IsActive: true,
		Permissions: sec.EncodePermissions([]sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}},
		}),
	})

	token := harness.login(t, admin)
	require.NoError(t, harness.repo.Delete(context.Background(), admin.ID))

	recorder := harness.get(token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Account no longer valid", errorMessage(t, recorder))
}

/*
TestGuard_PermissionRevokedAfterIssue verifies the guard checks the live
permission set, so a revocation bites before the token expires.
*/
func TestGuard_PermissionRevokedAfterIssue(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceUsers, auth.ActionWrite)

	admin := harness.repo.seed(&auth.Admin{
		Email:    "admin@athlos.app",
		Role:     sec.RoleAdmin,
		IsActive: true,
		Permissions: sec.EncodePermissions([]sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead, auth.ActionWrite}},
		}),
	})

	// Token snapshot still carries users:write.
	token := harness.login(t, admin)

	// Live set loses write.
	revoked := sec.EncodePermissions([]sec.Permission{
		{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}},
	})
	require.NoError(t, harness.repo.UpdatePermissions(context.Background(), admin.ID, revoked))

	recorder := harness.get(token)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "Missing actions for users: write", errorMessage(t, recorder))
}

/*
TestGuard_RepositoryFailureIsNotRevocation verifies a storage failure during
the live re-fetch surfaces as a server error instead of being reported as a
revoked session.
*/
func TestGuard_RepositoryFailureIsNotRevocation(t *testing.T) {
	harness := newGuardHarness(t, auth.ResourceUsers, auth.ActionRead)

	admin := harness.repo.seed(&auth.Admin{
		Email:    "admin@athlos.app",
		Role:     sec.RoleAdmin,
		IsActive: true,
		Permissions: sec.EncodePermissions([]sec.Permission{
			{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}},
		}),
	})
	token := harness.login(t, admin)

	harness.repo.findErr = errors.New("connection refused")

	recorder := harness.get(token)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotEqual(t, "Account no longer valid", errorMessage(t, recorder))
}
