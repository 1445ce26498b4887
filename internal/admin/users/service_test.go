// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athloshq/athlos/internal/admin/auth"
	"github.com/athloshq/athlos/internal/admin/users"
	"github.com/athloshq/athlos/internal/athlete"
	"github.com/athloshq/athlos/internal/platform/apperr"
	"github.com/athloshq/athlos/internal/platform/dberr"
	"github.com/athloshq/athlos/internal/platform/sec"
)

// fakeAthleteStore is an in-memory users.AthleteStore.
type fakeAthleteStore struct {
	nextID   int64
	athletes map[int64]*athlete.Athlete
}

func newFakeAthleteStore() *fakeAthleteStore {
	return &fakeAthleteStore{athletes: map[int64]*athlete.Athlete{}}
}

func (store *fakeAthleteStore) seed(a *athlete.Athlete) *athlete.Athlete {
	store.nextID++
	a.ID = store.nextID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().Add(-24 * time.Hour)
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now()
	}
	store.athletes[a.ID] = a
	return a
}

func (store *fakeAthleteStore) FindByID(_ context.Context, id int64) (*athlete.Athlete, error) {
	a, ok := store.athletes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (store *fakeAthleteStore) ListFiltered(_ context.Context, _ athlete.Filter) ([]*athlete.Athlete, int, error) {
	list := make([]*athlete.Athlete, 0, len(store.athletes))
	for _, a := range store.athletes {
		clone := *a
		list = append(list, &clone)
	}
	return list, len(list), nil
}

func (store *fakeAthleteStore) SetActive(_ context.Context, id int64, active bool) error {
	a, ok := store.athletes[id]
	if !ok {
		return dberr.ErrNotFound
	}
	a.IsActive = active
	return nil
}

func (store *fakeAthleteStore) Delete(_ context.Context, id int64) error {
	if _, ok := store.athletes[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(store.athletes, id)
	return nil
}

func (store *fakeAthleteStore) Stats(_ context.Context) (*athlete.Stats, error) {
	return &athlete.Stats{}, nil
}

func superAdmin() *auth.Admin {
	return &auth.Admin{ID: 1, Email: "root@athlos.app", Role: sec.RoleSuperAdmin, IsActive: true}
}

func plainAdmin() *auth.Admin {
	return &auth.Admin{ID: 2, Email: "mod@athlos.app", Role: sec.RoleAdmin, IsActive: true}
}

/*
TestService_UpdateStatus maps the three dashboard status labels onto the
active flag and rejects anything else.
*/
func TestService_UpdateStatus(t *testing.T) {
	store := newFakeAthleteStore()
	service := users.NewService(store)

	seeded := store.seed(&athlete.Athlete{Email: "a@athlos.app", FullName: "A", IsActive: true})

	// 1. Suspended deactivates.
	updated, err := service.UpdateStatus(context.Background(), seeded.ID, "suspended")
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// 2. Active reactivates.
	updated, err = service.UpdateStatus(context.Background(), seeded.ID, "active")
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	// 3. Unknown label is a validation error.
	_, err = service.UpdateStatus(context.Background(), seeded.ID, "banned")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

/*
TestService_Delete_PermanentRequiresSuperAdmin verifies the role gate:
users:delete alone never permits a permanent delete.
*/
func TestService_Delete_PermanentRequiresSuperAdmin(t *testing.T) {
	store := newFakeAthleteStore()
	service := users.NewService(store)

	seeded := store.seed(&athlete.Athlete{Email: "a@athlos.app", FullName: "A", IsActive: true})

	// 1. A plain admin is refused, and the row survives.
	_, err := service.Delete(context.Background(), plainAdmin(), seeded.ID, true)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)
	assert.Equal(t, "Only super admins can permanently delete users", appErr.Message)

	_, err = store.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)

	// 2. A super admin succeeds, and the row is gone.
	message, err := service.Delete(context.Background(), superAdmin(), seeded.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "User permanently deleted", message)

	_, err = store.FindByID(context.Background(), seeded.ID)
	assert.Error(t, err)
}

/*
TestService_Delete_SoftDefault verifies the default path deactivates instead
of deleting, for any admin.
*/
func TestService_Delete_SoftDefault(t *testing.T) {
	store := newFakeAthleteStore()
	service := users.NewService(store)

	seeded := store.seed(&athlete.Athlete{Email: "a@athlos.app", FullName: "A", IsActive: true})

	message, err := service.Delete(context.Background(), plainAdmin(), seeded.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "User account deactivated", message)

	kept, err := store.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
}

/*
TestService_Delete_NotFoundBeforeForbidden verifies a missing row reports 404
even when the actor also lacks the role for a permanent delete.
*/
func TestService_Delete_NotFoundBeforeForbidden(t *testing.T) {
	service := users.NewService(newFakeAthleteStore())

	_, err := service.Delete(context.Background(), plainAdmin(), 999, true)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super admins")
}

/*
TestService_Activity verifies the derived engagement summary: timeline capped
at 10 entries, weekly profile-update entries, and the session figures.
*/
func TestService_Activity(t *testing.T) {
	store := newFakeAthleteStore()
	service := users.NewService(store)

	seeded := store.seed(&athlete.Athlete{Email: "a@athlos.app", FullName: "A", IsActive: true})

	summary, err := service.Activity(context.Background(), seeded.ID, 30)
	require.NoError(t, err)

	// 1. A 30-day window still yields at most 10 timeline entries.
	assert.Len(t, summary.ActivityTimeline, 10)
	assert.Equal(t, 10, summary.TotalSessions)
	assert.Equal(t, 7, summary.SessionsThisWeek)
	assert.Equal(t, 10, summary.SessionsThisMonth)

	// 2. Entries 0 and 7 are the weekly profile updates.
	assert.Equal(t, "Profile Update", summary.ActivityTimeline[0].Activity)
	assert.Equal(t, "Login", summary.ActivityTimeline[1].Activity)
	assert.Equal(t, "Profile Update", summary.ActivityTimeline[7].Activity)

	// 3. Out-of-range windows fall back to the 30-day default.
	fallback, err := service.Activity(context.Background(), seeded.ID, 0)
	require.NoError(t, err)
	assert.Len(t, fallback.ActivityTimeline, 10)

	// 4. Short windows shrink the timeline.
	short, err := service.Activity(context.Background(), seeded.ID, 3)
	require.NoError(t, err)
	assert.Len(t, short.ActivityTimeline, 3)
	assert.Equal(t, 3, short.SessionsThisWeek)
}
