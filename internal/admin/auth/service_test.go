// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package auth_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athloshq/athlos/internal/admin/auth"
	"github.com/athloshq/athlos/internal/platform/apperr"
	"github.com/athloshq/athlos/internal/platform/sec"
)

func newTestService(t *testing.T, repo *fakeAdminRepository) *auth.Service {
	t.Helper()
	tokens, err := sec.NewTokenService("test-secret", "athlos.app", 30*time.Minute)
	require.NoError(t, err)
	return auth.NewService(repo, tokens, 30*time.Minute)
}

// seedAdmin inserts an active account with a bcrypt-hashed password.
func seedAdmin(t *testing.T, repo *fakeAdminRepository, email, password string, role sec.AdminRole, permissions []sec.Permission) *auth.Admin {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return repo.seed(&auth.Admin{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test Admin",
		Role:         role,
		Permissions:  sec.EncodePermissions(permissions),
		IsActive:     true,
	})
}

/*
TestService_Login_Success verifies a valid login returns a bearer session and
stamps the last-login timestamp.
*/
func TestService_Login_Success(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)

	permissions := []sec.Permission{{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}}}
	admin := seedAdmin(t, repo, "admin@athlos.app", "correct-horse", sec.RoleAdmin, permissions)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@athlos.app",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// 1. Session shape
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, int64(1800), session.ExpiresIn)
	assert.Equal(t, admin.Email, session.Admin.Email)
	assert.Equal(t, permissions, session.Admin.PermissionList)

	// 2. Wire shape: the profile travels under "user", lowercase keys otherwise.
	encoded, err := json.Marshal(session)
	require.NoError(t, err)
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &envelope))
	assert.Contains(t, envelope, "access_token")
	assert.Contains(t, envelope, "token_type")
	assert.Contains(t, envelope, "user")
	assert.NotContains(t, envelope, "admin")

	// 3. Last login stamped exactly once
	assert.Equal(t, []int64{admin.ID}, repo.lastLoginStamps)
}

/*
TestService_Login_GenericFailure verifies unknown email, wrong password, and a
deactivated account all fail with the identical message, preventing account
enumeration.
*/
func TestService_Login_GenericFailure(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)

	seedAdmin(t, repo, "admin@athlos.app", "correct-horse", sec.RoleAdmin, nil)
	inactive := seedAdmin(t, repo, "gone@athlos.app", "correct-horse", sec.RoleAdmin, nil)
	require.NoError(t, repo.SetActive(context.Background(), inactive.ID, false))

	testCases := []struct {
		name  string
		input auth.LoginInput
	}{
		{"unknown email", auth.LoginInput{Email: "nobody@athlos.app", Password: "correct-horse"}},
		{"wrong password", auth.LoginInput{Email: "admin@athlos.app", Password: "battery-staple"}},
		{"deactivated account", auth.LoginInput{Email: "gone@athlos.app", Password: "correct-horse"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), testCase.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 401, appError.HTTPStatus)
			assert.Equal(t, "Invalid email or password", appError.Message)
		})
	}

	// No login stamp on any failed attempt.
	assert.Empty(t, repo.lastLoginStamps)
}

/*
TestService_Login_HashNeverSerialized verifies the password hash cannot leak
through the session payload.
*/
func TestService_Login_HashNeverSerialized(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)
	seedAdmin(t, repo, "admin@athlos.app", "correct-horse", sec.RoleAdmin, nil)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@athlos.app",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	payload, err := json.Marshal(session)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), "$2a$")
}

/*
TestService_Refresh verifies refresh re-reads live state: a token for a since-
deactivated or deleted account cannot be traded for a new one.
*/
func TestService_Refresh(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)
	admin := seedAdmin(t, repo, "admin@athlos.app", "correct-horse", sec.RoleAdmin, nil)

	claims := &sec.AuthClaims{AdminID: admin.ID}

	// 1. Active account refreshes fine
	session, err := service.Refresh(context.Background(), claims)
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	// 2. Deactivated account cannot refresh
	require.NoError(t, repo.SetActive(context.Background(), admin.ID, false))
	_, err = service.Refresh(context.Background(), claims)
	require.Error(t, err)
	assert.Equal(t, "Account no longer valid", apperr.As(err).Message)

	// 3. Deleted account cannot refresh
	require.NoError(t, repo.SetActive(context.Background(), admin.ID, true))
	require.NoError(t, repo.Delete(context.Background(), admin.ID))
	_, err = service.Refresh(context.Background(), claims)
	require.Error(t, err)
	assert.Equal(t, "Account no longer valid", apperr.As(err).Message)
}

/*
TestService_CreateAdmin verifies creation hashes the password, derives default
permissions from the role, and rejects duplicate emails.
*/
func TestService_CreateAdmin(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)

	admin, err := service.CreateAdmin(context.Background(), auth.CreateAdminInput{
		Email:    "moderator@athlos.app",
		Password: "correct-horse",
		FullName: "New Moderator",
		Role:     sec.RoleModerator,
	})
	require.NoError(t, err)

	// 1. Password is hashed, never stored verbatim
	assert.NotEqual(t, "correct-horse", admin.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", admin.PasswordHash))

	// 2. Role-derived default permission set
	assert.Equal(t, auth.DefaultModeratorPermissions(), admin.PermissionSet())
	assert.True(t, admin.IsActive)

	// 3. Duplicate email rejected with Conflict
	_, err = service.CreateAdmin(context.Background(), auth.CreateAdminInput{
		Email:    "moderator@athlos.app",
		Password: "other",
		FullName: "Impostor",
		Role:     sec.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)
}

/*
TestService_UpdatePermissions verifies replacement sets are normalized before
persisting.
*/
func TestService_UpdatePermissions(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)
	admin := seedAdmin(t, repo, "admin@athlos.app", "correct-horse", sec.RoleAdmin, nil)

	updated, err := service.UpdatePermissions(context.Background(), admin.ID, []sec.Permission{
		{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead}},
		{Resource: auth.ResourceUsers, Actions: []string{auth.ActionRead, auth.ActionWrite}},
		{Resource: "", Actions: []string{auth.ActionRead}},
	})
	require.NoError(t, err)

	permissions := updated.PermissionSet()
	require.Len(t, permissions, 1)
	assert.Equal(t, auth.ResourceUsers, permissions[0].Resource)
	assert.Equal(t, []string{auth.ActionRead, auth.ActionWrite}, permissions[0].Actions)
}

/*
TestService_SetActive_SelfDeactivation verifies an admin cannot lock
themselves out.
*/
func TestService_SetActive_SelfDeactivation(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)
	admin := seedAdmin(t, repo, "admin@athlos.app", "correct-horse", sec.RoleAdmin, nil)

	_, err := service.SetActive(context.Background(), admin, admin.ID, false)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)

	// Deactivating someone else is fine.
	other := seedAdmin(t, repo, "other@athlos.app", "correct-horse", sec.RoleAdmin, nil)
	updated, err := service.SetActive(context.Background(), admin, other.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

/*
TestService_DeleteAdmin_SuperAdminOnly verifies hard deletion is gated on the
super_admin role itself, not on any permission grant.
*/
func TestService_DeleteAdmin_SuperAdminOnly(t *testing.T) {
	repo := newFakeAdminRepository()
	service := newTestService(t, repo)

	// A plain admin holding the full super-admin permission set still may not
	// hard-delete accounts.
	fullSet := auth.DefaultSuperAdminPermissions()
	plainAdmin := seedAdmin(t, repo, "admin@athlos.app", "correct-horse", sec.RoleAdmin, fullSet)
	superAdmin := seedAdmin(t, repo, "root@athlos.app", "correct-horse", sec.RoleSuperAdmin, fullSet)
	victim := seedAdmin(t, repo, "victim@athlos.app", "correct-horse", sec.RoleAdmin, nil)

	err := service.DeleteAdmin(context.Background(), plainAdmin, victim.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	// Super admin cannot delete themselves.
	err = service.DeleteAdmin(context.Background(), superAdmin, superAdmin.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)

	// Super admin deletes the target.
	require.NoError(t, service.DeleteAdmin(context.Background(), superAdmin, victim.ID))
	_, err = repo.FindByID(context.Background(), victim.ID)
	assert.Error(t, err)
}
