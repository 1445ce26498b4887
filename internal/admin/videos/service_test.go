// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package videos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athloshq/athlos/internal/admin/videos"
	"github.com/athloshq/athlos/internal/platform/apperr"
	"github.com/athloshq/athlos/internal/platform/dberr"
)

// fakeRepository is an in-memory videos.Repository. ApplyModeration mimics
// the transactional contract: the video update and the log row land together.
type fakeRepository struct {
	nextID int64
	videos map[int64]*videos.Video
	logs   map[int64][]*videos.ModerationLog
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		videos: map[int64]*videos.Video{},
		logs:   map[int64][]*videos.ModerationLog{},
	}
}

func (repo *fakeRepository) seed(video *videos.Video) *videos.Video {
	repo.nextID++
	video.ID = repo.nextID
	repo.videos[video.ID] = video
	return video
}

func (repo *fakeRepository) FindByID(_ context.Context, id int64) (*videos.Video, error) {
	video, ok := repo.videos[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *video
	return &clone, nil
}

func (repo *fakeRepository) ListFiltered(_ context.Context, filter videos.Filter) ([]*videos.Video, int, error) {
	list := make([]*videos.Video, 0, len(repo.videos))
	for _, video := range repo.videos {
		if filter.ModerationStatus != "" && video.ModerationStatus != filter.ModerationStatus {
			continue
		}
		clone := *video
		list = append(list, &clone)
	}
	return list, len(list), nil
}

func (repo *fakeRepository) Create(_ context.Context, video *videos.Video) error {
	repo.seed(video)
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, video *videos.Video) error {
	if _, ok := repo.videos[video.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *video
	repo.videos[video.ID] = &clone
	return nil
}

func (repo *fakeRepository) ApplyModeration(_ context.Context, video *videos.Video, log *videos.ModerationLog) error {
	if _, ok := repo.videos[video.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *video
	repo.videos[video.ID] = &clone
	repo.logs[video.ID] = append([]*videos.ModerationLog{log}, repo.logs[video.ID]...)
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := repo.videos[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.videos, id)
	return nil
}

func (repo *fakeRepository) ListModerationLogs(_ context.Context, videoID int64) ([]*videos.ModerationLog, error) {
	return repo.logs[videoID], nil
}

func pendingVideo() *videos.Video {
	return &videos.Video{
		Title:            "Sprint drills",
		FileURL:          "https://cdn.athlos.app/v/sprint.mp4",
		Sport:            "athletics",
		Category:         "training",
		Status:           videos.StatusPending,
		ModerationStatus: videos.ModerationUnreviewed,
	}
}

/*
TestService_Create verifies dashboard uploads enter the catalog pre-approved
and published, with the uploading admin recorded as moderator.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	service := videos.NewService(repo)

	created, err := service.Create(context.Background(), 7, videos.CreateInput{
		Title:    "Sprint drills",
		FileURL:  "https://cdn.athlos.app/v/sprint.mp4",
		Sport:    "athletics",
		Category: "training",
	})
	require.NoError(t, err)

	assert.Equal(t, videos.StatusApproved, created.Status)
	assert.Equal(t, videos.ModerationApproved, created.ModerationStatus)
	require.NotNil(t, created.ModeratedBy)
	assert.Equal(t, int64(7), *created.ModeratedBy)
	require.NotNil(t, created.UploadedBy)
	assert.Equal(t, int64(7), *created.UploadedBy)
	assert.NotNil(t, created.PublishedAt)
	assert.NotNil(t, created.ModeratedAt)
}

/*
TestService_Moderate_Transitions exercises the moderation state machine: each
action's resulting content status, review status, and publication state.
*/
func TestService_Moderate_Transitions(t *testing.T) {
	cases := []struct {
		name           string
		action         string
		wantStatus     string
		wantModeration string
		wantPublished  bool
	}{
		{"approve publishes", videos.ActionApprove, videos.StatusApproved, videos.ModerationApproved, true},
		{"reject unpublishes", videos.ActionReject, videos.StatusRejected, videos.ModerationRejected, false},
		{"flag unpublishes", videos.ActionFlag, videos.StatusFlagged, videos.ModerationRejected, false},
		{"unflag republishes", videos.ActionUnflag, videos.StatusApproved, videos.ModerationApproved, true},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := videos.NewService(repo)
			seeded := repo.seed(pendingVideo())

			updated, err := service.Moderate(context.Background(), 3, seeded.ID, testCase.action, nil)
			require.NoError(t, err)

			// 1. Status fields follow the action.
			assert.Equal(t, testCase.wantStatus, updated.Status)
			assert.Equal(t, testCase.wantModeration, updated.ModerationStatus)
			if testCase.wantPublished {
				assert.NotNil(t, updated.PublishedAt)
			} else {
				assert.Nil(t, updated.PublishedAt)
			}

			// 2. The decision landed in the log with the prior review status.
			logs, err := repo.ListModerationLogs(context.Background(), seeded.ID)
			require.NoError(t, err)
			require.Len(t, logs, 1)
			assert.Equal(t, testCase.action, logs[0].Action)
			assert.Equal(t, int64(3), logs[0].AdminID)
			require.NotNil(t, logs[0].PreviousStatus)
			assert.Equal(t, videos.ModerationUnreviewed, *logs[0].PreviousStatus)
			assert.Equal(t, testCase.wantModeration, logs[0].NewStatus)
		})
	}
}

/*
TestService_Moderate_InvalidAction verifies unknown actions are refused before
touching storage.
*/
func TestService_Moderate_InvalidAction(t *testing.T) {
	repo := newFakeRepository()
	service := videos.NewService(repo)
	seeded := repo.seed(pendingVideo())

	_, err := service.Moderate(context.Background(), 3, seeded.ID, "escalate", nil)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)

	logs, err := repo.ListModerationLogs(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

/*
TestService_BulkModerate verifies per-video outcome collection: missing IDs
land in failed without aborting the batch.
*/
func TestService_BulkModerate(t *testing.T) {
	repo := newFakeRepository()
	service := videos.NewService(repo)

	first := repo.seed(pendingVideo())
	second := repo.seed(pendingVideo())

	result, err := service.BulkModerate(context.Background(), 3,
		[]int64{first.ID, 999, second.ID}, videos.ActionApprove, nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{first.ID, second.ID}, result.Processed)
	assert.Equal(t, []int64{999}, result.Failed)

	// A bad action fails the whole call before any video is touched.
	_, err = service.BulkModerate(context.Background(), 3, []int64{first.ID}, "escalate", nil)
	require.NotNil(t, apperr.As(err))
}

/*
TestService_Delete_SoftRecordsDecision verifies the default delete goes
through the moderation path so the log captures the removal.
*/
func TestService_Delete_SoftRecordsDecision(t *testing.T) {
	repo := newFakeRepository()
	service := videos.NewService(repo)
	seeded := repo.seed(pendingVideo())

	require.NoError(t, service.Delete(context.Background(), 3, seeded.ID, false))

	// 1. The row survives in a deleted, unpublished state.
	kept, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, videos.StatusDeleted, kept.Status)
	assert.Equal(t, videos.ModerationRejected, kept.ModerationStatus)
	assert.Nil(t, kept.PublishedAt)

	// 2. The removal is on the record.
	logs, err := repo.ListModerationLogs(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].Reason)
	assert.Equal(t, "Content removed from catalog", *logs[0].Reason)
}

/*
TestService_Delete_Permanent verifies permanent removal drops the row.
*/
func TestService_Delete_Permanent(t *testing.T) {
	repo := newFakeRepository()
	service := videos.NewService(repo)
	seeded := repo.seed(pendingVideo())

	require.NoError(t, service.Delete(context.Background(), 3, seeded.ID, true))

	_, err := repo.FindByID(context.Background(), seeded.ID)
	assert.Error(t, err)
}

/*
TestService_ModerationQueue verifies only unreviewed videos surface in the
queue.
*/
func TestService_ModerationQueue(t *testing.T) {
	repo := newFakeRepository()
	service := videos.NewService(repo)

	repo.seed(pendingVideo())
	approved := pendingVideo()
	approved.ModerationStatus = videos.ModerationApproved
	approved.Status = videos.StatusApproved
	repo.seed(approved)

	queue, total, err := service.ModerationQueue(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, queue, 1)
	assert.Equal(t, videos.ModerationUnreviewed, queue[0].ModerationStatus)
}
