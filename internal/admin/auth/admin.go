// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package auth implements the administrator identity and access management layer.

It defines the core domain entity (Admin) and the logic for authentication,
resource-level authorization, and admin account lifecycle.

# Architecture

This layer is the "Truth" of the admin platform. An administrator's effective
rights always come from the persisted account record, never from a token
snapshot: the authorization guard re-fetches the live account on every
protected request so that deactivation and permission revocation take effect
immediately.
*/
package auth

import (
	"time"

	"github.com/athloshq/athlos/internal/platform/sec"
)

// # Domain Entities

// Admin represents an administrator account on the Athlos platform.
//
// Permissions holds the persisted textual encoding of the account's
// permission set; use [Admin.Permissions] via [sec.DecodePermissions] for the
// structured form.
type Admin struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"` // Explicitly omitted from JSON for security.
	FullName     string        `json:"full_name"`
	Role         sec.AdminRole `json:"role"`
	Permissions  string        `json:"-"` // Raw encoded blob; exposed via PermissionSet().
	IsActive     bool          `json:"is_active"`
	LastLogin    *time.Time    `json:"last_login,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// PermissionSet decodes the persisted permission blob into structured form.
// A corrupt or empty blob yields an empty set, never an error.
func (a *Admin) PermissionSet() []sec.Permission {
	return sec.DecodePermissions(a.Permissions)
}

// Can reports whether the live account grants every required action on the
// resource. On failure it returns the exact missing actions; a nil missing
// slice with ok=false means the resource is not granted at all.
func (a *Admin) Can(resource string, actions []string) (bool, []string) {
	permission := sec.FindPermission(a.PermissionSet(), resource)
	if permission == nil {
		return false, nil
	}
	return permission.HasActions(actions)
}

// View is the JSON shape of an admin account returned by the API. It augments
// the entity with the decoded permission set.
type View struct {
	*Admin
	PermissionList []sec.Permission `json:"permissions"`
}

// NewView wraps an entity for API responses.
func NewView(admin *Admin) View {
	return View{Admin: admin, PermissionList: admin.PermissionSet()}
}

// # Default Permission Sets

// DefaultSuperAdminPermissions is the permission set granted to accounts
// created with the super_admin role.
func DefaultSuperAdminPermissions() []sec.Permission {
	return []sec.Permission{
		{Resource: ResourceUsers, Actions: []string{ActionRead, ActionWrite, ActionDelete, ActionExport}},
		{Resource: ResourceVideos, Actions: []string{ActionRead, ActionWrite, ActionDelete, ActionExport}},
		{Resource: ResourceAnalytics, Actions: []string{ActionRead, ActionExport}},
		{Resource: ResourceSystem, Actions: []string{ActionRead, ActionWrite}},
	}
}

// DefaultModeratorPermissions is the permission set granted to accounts
// created with the moderator role.
func DefaultModeratorPermissions() []sec.Permission {
	return []sec.Permission{
		{Resource: ResourceUsers, Actions: []string{ActionRead}},
		{Resource: ResourceVideos, Actions: []string{ActionRead, ActionWrite}},
	}
}

// # Resource & Action Identifiers

// Protected resource names recognized by the authorization guard.
const (
	ResourceUsers     = "users"
	ResourceVideos    = "videos"
	ResourceAnalytics = "analytics"
	ResourceSystem    = "system"
)

// Action tokens granted within a resource.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
	ActionExport = "export"
)

// # Field Identifiers

// Global field names for validation and identity mapping in the admin domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldFullName    = "full_name"
	FieldRole        = "role"
	FieldPermissions = "permissions"
	FieldIsActive    = "is_active"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
)
