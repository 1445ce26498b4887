// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/athloshq/athlos/internal/admin/auth"
	"github.com/athloshq/athlos/internal/platform/dberr"
)

// fakeAdminRepository is an in-memory AdminRepository for service and guard
// tests. It is safe for concurrent use.
type fakeAdminRepository struct {
	mu     sync.Mutex
	nextID int64
	admins map[int64]*auth.Admin

	// findErr, when set, is returned by FindByID in place of a lookup.
	findErr error

	lastLoginStamps []int64
}

func newFakeAdminRepository() *fakeAdminRepository {
	return &fakeAdminRepository{
		nextID: 1,
		admins: make(map[int64]*auth.Admin),
	}
}

// seed inserts an admin directly, bypassing the service layer.
func (repo *fakeAdminRepository) seed(admin *auth.Admin) *auth.Admin {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	admin.ID = repo.nextID
	repo.nextID++
	repo.admins[admin.ID] = admin
	return admin
}

func (repo *fakeAdminRepository) FindByID(_ context.Context, id int64) (*auth.Admin, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.findErr != nil {
		return nil, repo.findErr
	}

	admin, ok := repo.admins[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *admin
	return &clone, nil
}

func (repo *fakeAdminRepository) FindByEmail(_ context.Context, email string) (*auth.Admin, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, admin := range repo.admins {
		if admin.Email == email {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeAdminRepository) List(_ context.Context) ([]*auth.Admin, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	admins := make([]*auth.Admin, 0, len(repo.admins))
	for _, admin := range repo.admins {
		clone := *admin
		admins = append(admins, &clone)
	}
	return admins, nil
}

func (repo *fakeAdminRepository) Create(_ context.Context, admin *auth.Admin) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	admin.ID = repo.nextID
	repo.nextID++
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt

	clone := *admin
	repo.admins[admin.ID] = &clone
	return nil
}

func (repo *fakeAdminRepository) Update(_ context.Context, admin *auth.Admin) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.admins[admin.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *admin
	repo.admins[admin.ID] = &clone
	return nil
}

func (repo *fakeAdminRepository) UpdatePermissions(_ context.Context, adminID int64, encoded string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	admin, ok := repo.admins[adminID]
	if !ok {
		return dberr.ErrNotFound
	}
	admin.Permissions = encoded
	return nil
}

func (repo *fakeAdminRepository) SetActive(_ context.Context, adminID int64, active bool) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	admin, ok := repo.admins[adminID]
	if !ok {
		return dberr.ErrNotFound
	}
	admin.IsActive = active
	return nil
}

func (repo *fakeAdminRepository) StampLastLogin(_ context.Context, adminID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	admin, ok := repo.admins[adminID]
	if !ok {
		return dberr.ErrNotFound
	}
	now := time.Now()
	admin.LastLogin = &now
	repo.lastLoginStamps = append(repo.lastLoginStamps, adminID)
	return nil
}

func (repo *fakeAdminRepository) Delete(_ context.Context, adminID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.admins[adminID]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.admins, adminID)
	return nil
}
