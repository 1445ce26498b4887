// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
HTTP delivery layer for admin identity management.

It implements the gateway for the admin authentication lifecycle — login,
session introspection, token refresh — and the management endpoints for
administrator accounts themselves.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Public login; everything else behind AuthN + the permission guard.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/athloshq/athlos/internal/platform/middleware"
	requestutil "github.com/athloshq/athlos/internal/platform/request"
	"github.com/athloshq/athlos/internal/platform/respond"
	"github.com/athloshq/athlos/internal/platform/sec"
	"github.com/athloshq/athlos/internal/platform/validate"
	"github.com/athloshq/athlos/pkg/slice"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the admin session lifecycle (Login, Refresh, Me) and
// administrator account administration (create, update, permissions, delete).
type Handler struct {
	authService *Service
	guard       *Guard
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, guard *Guard) *Handler {
	return &Handler{authService: service, guard: guard}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /login    : Authenticates and returns a JWT.
//   - POST /logout   : Acknowledges logout (stateless tokens).
//   - GET  /me       : Returns the live profile behind the token.
//   - POST /refresh  : Re-issues a token with the live permission set.
//   - /admins        : Administrator account management (guarded by system:*;
//     the first account creation is open so a fresh deployment can bootstrap).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)

	// Protected endpoints (valid token required)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
		r.Post("/refresh", handler.refresh)
	})

	// Administrator account management (live system permissions required)
	router.Route("/admins", func(r chi.Router) {
		r.With(handler.guard.Require(ResourceSystem, ActionRead)).Get("/", handler.listAdmins)
		r.With(handler.guard.Require(ResourceSystem, ActionRead)).Get("/{id}", handler.getAdmin)
		r.With(handler.bootstrapOrRequire(ResourceSystem, ActionWrite)).Post("/", handler.createAdmin)
		r.With(handler.guard.Require(ResourceSystem, ActionWrite)).Put("/{id}", handler.updateAdmin)
		r.With(handler.guard.Require(ResourceSystem, ActionWrite)).Put("/{id}/permissions", handler.updatePermissions)
		r.With(handler.guard.Require(ResourceSystem, ActionWrite)).Patch("/{id}/status", handler.updateStatus)
		r.With(handler.guard.Require(ResourceSystem, ActionWrite)).Delete("/{id}", handler.deleteAdmin)
	})

	return router
}

// bootstrapOrRequire admits the very first account creation without any
// credentials, so a fresh deployment can enroll its bootstrap admin. Once
// one account exists, the regular permission gate applies.
func (handler *Handler) bootstrapOrRequire(resource string, actions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		gated := handler.guard.Require(resource, actions...)(next)

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			populated, err := handler.authService.HasAdmins(request.Context())
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			if !populated {
				next.ServeHTTP(writer, request)
				return
			}
			gated.ServeHTTP(writer, request)
		})
	}
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createAdminRequest struct {
	Email       string           `json:"email"`
	Password    string           `json:"password"`
	FullName    string           `json:"full_name"`
	Role        string           `json:"role"`
	Permissions []sec.Permission `json:"permissions"`
}

type updateAdminRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
}

type updatePermissionsRequest struct {
	Permissions []sec.Permission `json:"permissions"`
}

type updateStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

// # Session Endpoints

/*
login authenticates an administrator.

POST /api/v1/admin/auth/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: LoginSession: Access token plus profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: Unauthorized: Generic failure for any credential problem
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
logout acknowledges a client-side logout.

POST /api/v1/admin/auth/logout

Access tokens are stateless, so there is nothing to revoke server-side; the
client discards the token. The endpoint exists so the dashboard has a uniform
auth surface.

Response:
  - 200: Acknowledgement message
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"message": "Successfully logged out"})
}

/*
me returns the live profile of the authenticated administrator.

GET /api/v1/admin/auth/me

Response:
  - 200: View: Profile with decoded permission set
  - 401: Unauthorized: Token valid but account gone or deactivated
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.authService.Me(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
refresh issues a fresh access token for a still-valid session.

POST /api/v1/admin/auth/refresh

The fresh token snapshots the live permission set, so a refresh is also how a
client picks up permission changes without re-entering credentials.

Response:
  - 200: LoginSession: Fresh token plus profile
  - 401: Unauthorized: Account gone or deactivated
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Refresh(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// # Account Management Endpoints

/*
listAdmins returns every administrator account.

GET /api/v1/admin/auth/admins  (requires system:read)
*/
func (handler *Handler) listAdmins(writer http.ResponseWriter, request *http.Request) {
	admins, err := handler.authService.ListAdmins(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(admins, NewView))
}

/*
getAdmin returns a single administrator account.

GET /api/v1/admin/auth/admins/{id}  (requires system:read)
*/
func (handler *Handler) getAdmin(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.authService.GetAdmin(request.Context(), adminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewView(admin))
}

/*
createAdmin enrolls a new administrator account.

POST /api/v1/admin/auth/admins  (requires system:write)

Response:
  - 201: View: Created account
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) createAdmin(writer http.ResponseWriter, request *http.Request) {
	var input createAdminRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	role := sec.AdminRole(input.Role)
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, 100).
		Custom(FieldRole, !role.Valid(), "Must be a valid admin role")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.authService.CreateAdmin(request.Context(), CreateAdminInput{
		Email:       input.Email,
		Password:    input.Password,
		FullName:    input.FullName,
		Role:        role,
		Permissions: input.Permissions,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, NewView(admin))
}

/*
updateAdmin applies partial profile changes to an account.

PUT /api/v1/admin/auth/admins/{id}  (requires system:write)
*/
func (handler *Handler) updateAdmin(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAdminRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email)
	}
	if input.FullName != nil {
		validator.Required(FieldFullName, *input.FullName).MaxLen(FieldFullName, *input.FullName, 100)
	}

	var role *sec.AdminRole
	if input.Role != nil {
		candidate := sec.AdminRole(*input.Role)
		validator.Custom(FieldRole, !candidate.Valid(), "Must be a valid admin role")
		role = &candidate
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.authService.UpdateAdmin(request.Context(), adminID, UpdateAdminInput{
		Email:    input.Email,
		FullName: input.FullName,
		Role:     role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewView(admin))
}

/*
updatePermissions replaces an account's permission set.

PUT /api/v1/admin/auth/admins/{id}/permissions  (requires system:write)
*/
func (handler *Handler) updatePermissions(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePermissionsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	admin, err := handler.authService.UpdatePermissions(request.Context(), adminID, input.Permissions)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewView(admin))
}

/*
updateStatus activates or deactivates an account.

PATCH /api/v1/admin/auth/admins/{id}/status  (requires system:write)
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.IsActive == nil {
		respond.Error(writer, request, validate.RequiredError(FieldIsActive, "This field is required"))
		return
	}

	admin, err := handler.authService.SetActive(request.Context(), AdminFrom(request.Context()), adminID, *input.IsActive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewView(admin))
}

/*
deleteAdmin permanently removes an account.

DELETE /api/v1/admin/auth/admins/{id}  (requires system:write AND super_admin role)

Response:
  - 204: Account removed
  - 403: Actor is not a super administrator
*/
func (handler *Handler) deleteAdmin(writer http.ResponseWriter, request *http.Request) {
	adminID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.DeleteAdmin(request.Context(), AdminFrom(request.Context()), adminID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
