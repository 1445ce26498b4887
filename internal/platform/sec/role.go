// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package sec

// # Admin Roles

// AdminRole represents the coarse authorization tier of an admin account.
//
// Roles are advisory: fine-grained access is decided by the resource/action
// permission set attached to each account. The single exception is permanent
// user deletion, which is hard-gated on [RoleSuperAdmin].
type AdminRole string

const (
	// Full platform control, including permanent data deletion
	RoleSuperAdmin AdminRole = "super_admin"

	// Day-to-day dashboard operation within the granted permission set
	RoleAdmin AdminRole = "admin"

	// Content review and moderation duties only
	RoleModerator AdminRole = "moderator"
)

// Valid reports whether the role is one of the closed set of admin roles.
func (r AdminRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleModerator:
		return true
	default:
		return false
	}
}
