// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Admin authentication and account lifecycle use cases.

Architecture:

  - Service: Orchestrates business logic (Login, Refresh, account CRUD).
  - Repository: Abstracted interface over PostgreSQL storage.
  - Security: Bcrypt password hashing and HMAC-signed JWTs via the sec package.

Login failures are deliberately indistinguishable to the caller: unknown
email, wrong password, and deactivated account all return the same generic
Unauthorized error so the endpoint cannot be used to enumerate accounts.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/athloshq/athlos/internal/platform/apperr"
	"github.com/athloshq/athlos/internal/platform/ctxutil"
	"github.com/athloshq/athlos/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given admin.
	//
	// # Parameters
	//   - email: The subject email of the account.
	//   - adminID: The numeric ID of the account.
	//   - role: The advisory role label.
	//   - permissions: Snapshot of the permission set at issuance.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(email string, adminID int64, role string, permissions []sec.Permission, timeToLive time.Duration) (string, error)
}

// Service implements admin authentication and account management use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login, or
// the delete gate must be reviewed by the security team.
type Service struct {
	adminRepository AdminRepository
	tokenProvider   TokenProvider
	tokenTTL        time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(adminRepo AdminRepository, tokenProv TokenProvider, tokenTTL time.Duration) *Service {
	return &Service{
		adminRepository: adminRepo,
		tokenProvider:   tokenProv,
		tokenTTL:        tokenTTL,
	}
}

// # Authentication Flow

// errInvalidCredentials is the single client-visible login failure. Reusing
// one message for every failure mode prevents account enumeration.
func errInvalidCredentials() error {
	return apperr.Unauthorized("Invalid email or password")
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established admin session.
type LoginSession struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Admin       View   `json:"user"`
}

/*
Login validates admin credentials and issues an access token.

Description: Verifies identity with constant-time password comparison, checks
the account is active, embeds a snapshot of the live permission set in the
token, and stamps the last-login timestamp.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session payload
  - error: Unauthorized (generic) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Look up the account. Generic message to prevent enumeration.
	admin, err := service.adminRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, errInvalidCredentials()
	}

	// Verify password hash using bcrypt's constant-time comparison.
	if !sec.CheckPasswordHash(input.Password, admin.PasswordHash) {
		return nil, errInvalidCredentials()
	}

	// A deactivated account fails with the same generic message.
	if !admin.IsActive {
		return nil, errInvalidCredentials()
	}

	session, err := service.issueSession(admin)
	if err != nil {
		return nil, err
	}

	// Best-effort stamp; a failed timestamp must not block the login.
	if err := service.adminRepository.StampLastLogin(context, admin.ID); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "admin_last_login_stamp_failed",
			slog.Int64("admin_id", admin.ID),
			slog.String("error", err.Error()),
		)
	}

	return session, nil
}

/*
Refresh re-fetches the live account behind a verified token and issues a fresh
token carrying the current permission set.

Description: The new token reflects permission changes made since the old one
was issued. A deleted or deactivated account cannot refresh.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (Verified claims of the presented token)

Returns:
  - *LoginSession: Fresh session payload
  - error: Unauthorized or internal failures
*/
func (service *Service) Refresh(context context.Context, claims *sec.AuthClaims) (*LoginSession, error) {
	admin, err := service.adminRepository.FindByID(context, claims.AdminID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer valid")
	}

	if !admin.IsActive {
		return nil, apperr.Unauthorized("Account no longer valid")
	}

	return service.issueSession(admin)
}

/*
Me returns the live account profile for a verified token.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims

Returns:
  - View: Profile with decoded permission set
  - error: Unauthorized if the account is gone or deactivated
*/
func (service *Service) Me(context context.Context, claims *sec.AuthClaims) (View, error) {
	admin, err := service.adminRepository.FindByID(context, claims.AdminID)
	if err != nil {
		return View{}, apperr.Unauthorized("Account no longer valid")
	}

	if !admin.IsActive {
		return View{}, apperr.Unauthorized("Account no longer valid")
	}

	return NewView(admin), nil
}

// issueSession signs a token snapshotting the live permission set.
func (service *Service) issueSession(admin *Admin) (*LoginSession, error) {
	permissions := admin.PermissionSet()

	token, err := service.tokenProvider.GenerateAccessToken(
		admin.Email, admin.ID, string(admin.Role), permissions, service.tokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("admin_auth_service_sign_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(service.tokenTTL.Seconds()),
		Admin:       NewView(admin),
	}, nil
}

// # Account Lifecycle

// CreateAdminInput holds the data required to enroll a new administrator.
type CreateAdminInput struct {
	Email       string
	Password    string
	FullName    string
	Role        sec.AdminRole
	Permissions []sec.Permission // Optional; defaults derived from Role when empty.
}

/*
CreateAdmin validates, hashes, and persists a brand new administrator account.

Description: New accounts start active. When no explicit permission set is
provided, a default set is derived from the role.

Parameters:
  - context: context.Context
  - input: CreateAdminInput

Returns:
  - *Admin: Created entity
  - error: Conflict (if email exists) or storage errors
*/
func (service *Service) CreateAdmin(context context.Context, input CreateAdminInput) (*Admin, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	if _, err := service.adminRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("admin_auth_service_hash_failed: %w", err)
	}

	permissions := input.Permissions
	if len(permissions) == 0 {
		permissions = defaultPermissionsForRole(input.Role)
	}

	admin := &Admin{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Role:         input.Role,
		Permissions:  sec.EncodePermissions(permissions),
		IsActive:     true,
	}

	if err := service.adminRepository.Create(context, admin); err != nil {
		return nil, err
	}

	return admin, nil
}

// UpdateAdminInput holds optional changes to an admin's mutable profile fields.
type UpdateAdminInput struct {
	Email    *string
	FullName *string
	Role     *sec.AdminRole
}

/*
UpdateAdmin applies partial changes to an existing account's profile.

Parameters:
  - context: context.Context
  - adminID: int64
  - input: UpdateAdminInput

Returns:
  - *Admin: Updated entity
  - error: NotFound, Conflict, or storage errors
*/
func (service *Service) UpdateAdmin(context context.Context, adminID int64, input UpdateAdminInput) (*Admin, error) {
	admin, err := service.adminRepository.FindByID(context, adminID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != admin.Email {
		// Changing the email must not collide with another account.
		if _, err := service.adminRepository.FindByEmail(context, *input.Email); err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
		admin.Email = *input.Email
	}
	if input.FullName != nil {
		admin.FullName = *input.FullName
	}
	if input.Role != nil {
		admin.Role = *input.Role
	}

	if err := service.adminRepository.Update(context, admin); err != nil {
		return nil, err
	}

	return admin, nil
}

/*
UpdatePermissions replaces the account's permission set with the given one.

Description: The set is deduplicated and persisted in the canonical list
encoding. Outstanding tokens keep their stale snapshot, but the guard checks
live permissions so the change is effective immediately.

Parameters:
  - context: context.Context
  - adminID: int64
  - permissions: []sec.Permission

Returns:
  - *Admin: Updated entity
  - error: NotFound or storage errors
*/
func (service *Service) UpdatePermissions(context context.Context, adminID int64, permissions []sec.Permission) (*Admin, error) {
	admin, err := service.adminRepository.FindByID(context, adminID)
	if err != nil {
		return nil, err
	}

	encoded := sec.EncodePermissions(sec.NormalizePermissions(permissions))
	if err := service.adminRepository.UpdatePermissions(context, adminID, encoded); err != nil {
		return nil, err
	}

	admin.Permissions = encoded
	return admin, nil
}

/*
SetActive activates or deactivates an account.

Description: Deactivation locks the account out on their next request — the
authorization guard re-checks the live flag, so no token revocation is needed.
An admin cannot deactivate their own account.

Parameters:
  - context: context.Context
  - actor: *Admin (The authenticated administrator performing the change)
  - adminID: int64 (Target account)
  - active: bool

Returns:
  - *Admin: Updated entity
  - error: ValidationError, NotFound, or storage errors
*/
func (service *Service) SetActive(context context.Context, actor *Admin, adminID int64, active bool) (*Admin, error) {
	if actor != nil && actor.ID == adminID && !active {
		return nil, apperr.ValidationError("Cannot deactivate your own account")
	}

	admin, err := service.adminRepository.FindByID(context, adminID)
	if err != nil {
		return nil, err
	}

	if err := service.adminRepository.SetActive(context, adminID, active); err != nil {
		return nil, err
	}

	admin.IsActive = active
	return admin, nil
}

/*
DeleteAdmin permanently removes an administrator account.

Description: Hard deletion is restricted to actors holding exactly the
super_admin role; the permission system alone cannot grant it. Admins cannot
delete their own account.

Parameters:
  - context: context.Context
  - actor: *Admin (The authenticated administrator performing the deletion)
  - adminID: int64 (Target account)

Returns:
  - error: Forbidden, ValidationError, NotFound, or storage errors
*/
func (service *Service) DeleteAdmin(context context.Context, actor *Admin, adminID int64) error {
	if actor == nil || actor.Role != sec.RoleSuperAdmin {
		return apperr.Forbidden("Only super administrators can delete admin accounts")
	}

	if actor.ID == adminID {
		return apperr.ValidationError("Cannot delete your own account")
	}

	return service.adminRepository.Delete(context, adminID)
}

/*
GetAdmin returns a single account by ID.
*/
func (service *Service) GetAdmin(context context.Context, adminID int64) (*Admin, error) {
	return service.adminRepository.FindByID(context, adminID)
}

/*
ListAdmins returns every administrator account, newest first.
*/
func (service *Service) ListAdmins(context context.Context) ([]*Admin, error) {
	return service.adminRepository.List(context)
}

/*
HasAdmins reports whether any administrator account exists yet. The account
creation endpoint uses this to admit the very first, unauthenticated
bootstrap request.
*/
func (service *Service) HasAdmins(context context.Context) (bool, error) {
	admins, err := service.adminRepository.List(context)
	if err != nil {
		return false, err
	}
	return len(admins) > 0, nil
}

// defaultPermissionsForRole maps a role label to its starter permission set.
func defaultPermissionsForRole(role sec.AdminRole) []sec.Permission {
	switch role {
	case sec.RoleSuperAdmin:
		return DefaultSuperAdminPermissions()
	case sec.RoleModerator:
		return DefaultModeratorPermissions()
	default:
		return []sec.Permission{
			{Resource: ResourceUsers, Actions: []string{ActionRead, ActionWrite}},
			{Resource: ResourceVideos, Actions: []string{ActionRead, ActionWrite}},
			{Resource: ResourceAnalytics, Actions: []string{ActionRead}},
		}
	}
}
