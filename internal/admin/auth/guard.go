// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// Resource-level authorization guard for admin endpoints.
//
// # Architecture
//
// The guard runs after token authentication (middleware.Authenticate) and
// before the domain handler. It never trusts the permission snapshot inside
// the token: the live account record is re-fetched on every request, so
// deactivating an admin or revoking a permission locks them out immediately,
// without any token revocation machinery.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/athloshq/athlos/internal/platform/apperr"
	"github.com/athloshq/athlos/internal/platform/ctxkey"
	"github.com/athloshq/athlos/internal/platform/ctxutil"
	"github.com/athloshq/athlos/internal/platform/dberr"
	"github.com/athloshq/athlos/internal/platform/respond"
)

// # Guard

// Guard enforces permission requirements on admin routes.
type Guard struct {
	adminRepository AdminRepository
}

// NewGuard constructs a [Guard] around the admin repository.
func NewGuard(adminRepo AdminRepository) *Guard {
	return &Guard{adminRepository: adminRepo}
}

// Require returns middleware that admits only authenticated admins whose LIVE
// account grants every listed action on the resource.
//
// # Flow
//  1. Verified claims must be present in context, else 401.
//  2. Re-fetch the account by ID; a vanished account yields 401.
//  3. A deactivated account yields 401 regardless of token validity.
//  4. Check the live permission set: an ungranted resource yields 403 naming
//     the resource; granted-but-insufficient yields 403 naming the exact
//     missing actions.
//  5. Inject the live [*Admin] into context for the handler.
//
// # Usage
//
// Must be registered in the router AFTER [middleware.Authenticate]:
//
//	r.With(guard.Require(auth.ResourceUsers, auth.ActionWrite)).Patch("/{id}/status", h.updateStatus)
func (guard *Guard) Require(resource string, actions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Authentication Check ───────────────────────────────────────
			claims := ctxutil.GetClaims(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Live Account Re-Fetch ──────────────────────────────────────
			admin, err := guard.adminRepository.FindByID(request.Context(), claims.AdminID)
			if errors.Is(err, dberr.ErrNotFound) {
				// A valid token for a deleted account is still a dead token.
				respond.Error(writer, request, apperr.Unauthorized("Account no longer valid"))
				return
			}
			if err != nil {
				// Infrastructure failures are not revoked sessions.
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Active Flag Check ──────────────────────────────────────────
			if !admin.IsActive {
				respond.Error(writer, request, apperr.Unauthorized("Account is deactivated"))
				return
			}

			// ── 4. Permission Check (live set, not the token snapshot) ────────
			ok, missing := admin.Can(resource, actions)
			if !ok {
				if missing == nil {
					respond.Error(writer, request, apperr.Forbidden(
						fmt.Sprintf("Missing permission for resource: %s", resource)))
					return
				}
				respond.Error(writer, request, apperr.Forbidden(
					fmt.Sprintf("Missing actions for %s: %s", resource, strings.Join(missing, ", "))))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := WithAdmin(request.Context(), admin)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Context Access

// WithAdmin returns a new context carrying the live admin account resolved by
// the guard.
func WithAdmin(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAdmin, admin)
}

// AdminFrom retrieves the live [*Admin] placed in context by [Guard.Require].
// It returns nil on routes that are not behind the guard.
func AdminFrom(ctx context.Context) *Admin {
	admin, ok := ctx.Value(ctxkey.KeyAdmin).(*Admin)
	if !ok {
		return nil
	}
	return admin
}
