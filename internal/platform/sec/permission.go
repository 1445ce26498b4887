// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package sec

import "encoding/json"

// # Permission Model

// Permission grants a set of actions on one named resource.
//
// Resources are free-form string keys ("users", "videos", "analytics",
// "system"); actions are free-form tokens ("read", "write", "delete",
// "export"). Within one account's permission set, resource names are unique.
type Permission struct {
	Resource string   `json:"resource"`
	Actions  []string `json:"actions"`
}

// HasActions reports whether the permission covers every required action.
// On failure it returns the exact set of actions that are missing, preserving
// the order in which they were required.
func (p Permission) HasActions(required []string) (bool, []string) {
	granted := make(map[string]struct{}, len(p.Actions))
	for _, action := range p.Actions {
		granted[action] = struct{}{}
	}

	var missing []string
	for _, action := range required {
		if _, ok := granted[action]; !ok {
			missing = append(missing, action)
		}
	}

	return len(missing) == 0, missing
}

// # Permission Codec

/*
DecodePermissions converts the persisted textual encoding of an account's
permission set back into structured form.

Two historical wire encodings are accepted:

 1. The explicit-record list: [{"resource": "users", "actions": ["read"]}, ...]
 2. The legacy mapping form: {"users": ["read"], ...}

The list form is attempted first, then the mapping, then an empty set. An
empty, absent, or structurally invalid blob always yields an empty set —
decode failures are absorbed here and never propagated to callers.

Duplicate resource names collapse (last entry wins) so a decoded set never
contains two entries for the same resource.
*/
func DecodePermissions(blob string) []Permission {
	if blob == "" {
		return []Permission{}
	}

	// Variant 1: explicit list of {resource, actions} records.
	var records []Permission
	if err := json.Unmarshal([]byte(blob), &records); err == nil {
		return dedupePermissions(records)
	}

	// Variant 2: legacy mapping of resource -> action list.
	var mapping map[string][]string
	if err := json.Unmarshal([]byte(blob), &mapping); err == nil {
		permissions := make([]Permission, 0, len(mapping))
		for resource, actions := range mapping {
			permissions = append(permissions, Permission{Resource: resource, Actions: actions})
		}
		return permissions
	}

	// Any other shape is treated as no permissions at all.
	return []Permission{}
}

// EncodePermissions serializes a permission set to its persisted form.
//
// Only the explicit-record list encoding is ever produced; the mapping form
// exists solely for backward-compatible decoding. Action order within each
// permission is preserved.
func EncodePermissions(permissions []Permission) string {
	if permissions == nil {
		permissions = []Permission{}
	}

	encoded, err := json.Marshal(permissions)
	if err != nil {
		// []Permission cannot fail to marshal; keep the persisted value sane anyway.
		return "[]"
	}
	return string(encoded)
}

// NormalizePermissions collapses duplicate resource entries (last wins) and
// drops records without a resource name. Used before persisting a set handed
// in by a client.
func NormalizePermissions(permissions []Permission) []Permission {
	return dedupePermissions(permissions)
}

// FindPermission locates the entry for a resource within a permission set.
// It returns nil when the resource is not granted at all.
func FindPermission(permissions []Permission, resource string) *Permission {
	for i := range permissions {
		if permissions[i].Resource == resource {
			return &permissions[i]
		}
	}
	return nil
}

// dedupePermissions collapses duplicate resource entries, keeping the last
// occurrence and dropping records without a resource name.
func dedupePermissions(records []Permission) []Permission {
	result := make([]Permission, 0, len(records))
	index := make(map[string]int, len(records))

	for _, record := range records {
		if record.Resource == "" {
			continue
		}
		if at, seen := index[record.Resource]; seen {
			result[at] = record
			continue
		}
		index[record.Resource] = len(result)
		result = append(result, record)
	}

	return result
}
