// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package auth

import "context"

// # Admin Data Access

// AdminRepository defines the data access contract for administrator accounts.
type AdminRepository interface {

	/*
		FindByID returns the account with the given numeric ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Admin: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Admin, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Admin: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Admin, error)

	/*
		List returns all administrator accounts, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Admin: Hydrated entities
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Admin, error)

	/*
		Create persists a brand-new admin account to the storage.

		Parameters:
		  - context: context.Context
		  - admin: *Admin (ID is assigned by the database)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, admin *Admin) error

	/*
		Update persists changes to mutable profile fields (email, full name, role).

		Parameters:
		  - context: context.Context
		  - admin: *Admin

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, admin *Admin) error

	/*
		UpdatePermissions replaces only the encoded permission blob.

		Parameters:
		  - context: context.Context
		  - adminID: int64
		  - encoded: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePermissions(context context.Context, adminID int64, encoded string) error

	/*
		SetActive flips the account's active flag.

		Parameters:
		  - context: context.Context
		  - adminID: int64
		  - active: bool

		Returns:
		  - error: Persistence failures
	*/
	SetActive(context context.Context, adminID int64, active bool) error

	/*
		StampLastLogin records a successful authentication timestamp.

		Parameters:
		  - context: context.Context
		  - adminID: int64

		Returns:
		  - error: Persistence failures
	*/
	StampLastLogin(context context.Context, adminID int64) error

	/*
		Delete permanently removes the account row.

		Parameters:
		  - context: context.Context
		  - adminID: int64

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, adminID int64) error
}
