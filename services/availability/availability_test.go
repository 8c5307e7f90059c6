package availability

import (
	"context"
	"testing"
	"time"

	"coachhub/models"
	"coachhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, assert.AnError
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, assert.AnError
}

type fakeAvailabilityRepo struct {
	windows map[string][]models.WeeklyAvailabilityWindow // keyed by coach ID
}

func (r *fakeAvailabilityRepo) GetByCoach(_ context.Context, coachID string) ([]models.WeeklyAvailabilityWindow, error) {
	return r.windows[coachID], nil
}

func (r *fakeAvailabilityRepo) GetActiveByCoach(_ context.Context, coachID string) ([]models.WeeklyAvailabilityWindow, error) {
	var out []models.WeeklyAvailabilityWindow
	for _, w := range r.windows[coachID] {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) ReplaceForCoach(_ context.Context, coachID string, windows []models.WeeklyAvailabilityWindow) error {
	r.windows[coachID] = windows
	return nil
}

type fakeBlockedRepo struct {
	blocks map[string]*models.BlockedTimeRange // keyed by block ID
}

func (r *fakeBlockedRepo) Create(_ context.Context, block *models.BlockedTimeRange) error {
	r.blocks[block.ID] = block
	return nil
}

func (r *fakeBlockedRepo) Delete(_ context.Context, coachID, blockID string) error {
	if b, ok := r.blocks[blockID]; ok && b.CoachID == coachID {
		delete(r.blocks, blockID)
		return nil
	}
	return assert.AnError
}

func (r *fakeBlockedRepo) ListByCoach(_ context.Context, coachID string, from, to time.Time) ([]models.BlockedTimeRange, error) {
	var out []models.BlockedTimeRange
	for _, b := range r.blocks {
		if b.CoachID == coachID && b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, *b)
		}
	}
	return out, nil
}

var (
	coachActor = models.Actor{ID: "coach-1", Role: models.RoleCoach}
	adminActor = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	otherActor = models.Actor{ID: "coach-2", Role: models.RoleCoach}
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*DefaultService, *fakeAvailabilityRepo, *fakeBlockedRepo) {
	availRepo := &fakeAvailabilityRepo{windows: make(map[string][]models.WeeklyAvailabilityWindow)}
	blockRepo := &fakeBlockedRepo{blocks: make(map[string]*models.BlockedTimeRange)}
	users := &fakeUserRepo{users: map[string]*models.User{
		"coach-1":  {ID: "coach-1", Role: models.RoleCoach},
		"coach-2":  {ID: "coach-2", Role: models.RoleCoach},
		"member-1": {ID: "member-1", Role: models.RoleMember},
	}}
	svc := &DefaultService{
		Availability: availRepo,
		Blocked:      blockRepo,
		Users:        users,
		Clock:        fixedClock{now: testNow},
	}
	return svc, availRepo, blockRepo
}

func weekdayWindows() models.SetAvailabilityRequest {
	return models.SetAvailabilityRequest{
		Windows: []models.WeeklyWindowInput{
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 1020},
			{DayOfWeek: 3, StartMinute: 600, EndMinute: 840, Timezone: "America/New_York"},
		},
	}
}

func TestSetWeeklyAvailabilityReplacesExisting(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.windows["coach-1"] = []models.WeeklyAvailabilityWindow{
		{ID: "stale", CoachID: "coach-1", DayOfWeek: 5, StartMinute: 0, EndMinute: 60, IsActive: true},
	}

	windows, err := svc.SetWeeklyAvailability(context.Background(), "coach-1", coachActor, weekdayWindows())
	require.NoError(t, err)
	require.Len(t, windows, 2)

	for _, w := range windows {
		assert.NotEmpty(t, w.ID)
		assert.Equal(t, "coach-1", w.CoachID)
		assert.True(t, w.IsActive, "windows default to active")
	}
	assert.Equal(t, "America/New_York", windows[1].Timezone)

	// The old set is gone, replaced wholesale.
	stored := repo.windows["coach-1"]
	require.Len(t, stored, 2)
	for _, w := range stored {
		assert.NotEqual(t, "stale", w.ID)
	}
}

func TestSetWeeklyAvailabilityEmptyClearsSchedule(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.windows["coach-1"] = []models.WeeklyAvailabilityWindow{
		{ID: "stale", CoachID: "coach-1", DayOfWeek: 1, StartMinute: 540, EndMinute: 1020, IsActive: true},
	}

	windows, err := svc.SetWeeklyAvailability(context.Background(), "coach-1", coachActor, models.SetAvailabilityRequest{
		Windows: []models.WeeklyWindowInput{},
	})
	require.NoError(t, err)
	assert.Empty(t, windows)
	assert.Empty(t, repo.windows["coach-1"])
}

func TestSetWeeklyAvailabilityInactiveFlag(t *testing.T) {
	svc, _, _ := newTestService()
	inactive := false

	windows, err := svc.SetWeeklyAvailability(context.Background(), "coach-1", coachActor, models.SetAvailabilityRequest{
		Windows: []models.WeeklyWindowInput{
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 1020, IsActive: &inactive},
		},
	})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.False(t, windows[0].IsActive)
}

func TestSetWeeklyAvailabilityValidation(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.windows["coach-1"] = []models.WeeklyAvailabilityWindow{
		{ID: "keep", CoachID: "coach-1", DayOfWeek: 1, StartMinute: 540, EndMinute: 1020, IsActive: true},
	}

	cases := []struct {
		name   string
		window models.WeeklyWindowInput
	}{
		{"day too high", models.WeeklyWindowInput{DayOfWeek: 7, StartMinute: 540, EndMinute: 600}},
		{"negative day", models.WeeklyWindowInput{DayOfWeek: -1, StartMinute: 540, EndMinute: 600}},
		{"end before start", models.WeeklyWindowInput{DayOfWeek: 1, StartMinute: 600, EndMinute: 540}},
		{"zero-length window", models.WeeklyWindowInput{DayOfWeek: 1, StartMinute: 600, EndMinute: 600}},
		{"past midnight", models.WeeklyWindowInput{DayOfWeek: 1, StartMinute: 540, EndMinute: 1500}},
		{"bad timezone", models.WeeklyWindowInput{DayOfWeek: 1, StartMinute: 540, EndMinute: 600, Timezone: "Mars/Olympus"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetWeeklyAvailability(context.Background(), "coach-1", coachActor, models.SetAvailabilityRequest{
				Windows: []models.WeeklyWindowInput{
					{DayOfWeek: 2, StartMinute: 540, EndMinute: 600}, // valid sibling
					tc.window,
				},
			})
			require.Error(t, err)
			assert.True(t, utils.IsValidationError(err), "unexpected error: %v", err)

			// A rejected request must leave the previous schedule untouched.
			require.Len(t, repo.windows["coach-1"], 1)
			assert.Equal(t, "keep", repo.windows["coach-1"][0].ID)
		})
	}
}

func TestSetWeeklyAvailabilityRejectsOverlappingWindows(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.windows["coach-1"] = []models.WeeklyAvailabilityWindow{
		{ID: "keep", CoachID: "coach-1", DayOfWeek: 1, StartMinute: 540, EndMinute: 1020, IsActive: true},
	}

	// Two Monday windows sharing 10:00-11:00 must be rejected as a set.
	_, err := svc.SetWeeklyAvailability(context.Background(), "coach-1", coachActor, models.SetAvailabilityRequest{
		Windows: []models.WeeklyWindowInput{
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 660},
			{DayOfWeek: 1, StartMinute: 600, EndMinute: 720},
		},
	})
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err), "unexpected error: %v", err)
	require.Len(t, repo.windows["coach-1"], 1)
	assert.Equal(t, "keep", repo.windows["coach-1"][0].ID)

	// Back-to-back windows on one day and identical minutes on different days are fine.
	windows, err := svc.SetWeeklyAvailability(context.Background(), "coach-1", coachActor, models.SetAvailabilityRequest{
		Windows: []models.WeeklyWindowInput{
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 660},
			{DayOfWeek: 1, StartMinute: 660, EndMinute: 780},
			{DayOfWeek: 2, StartMinute: 540, EndMinute: 660},
		},
	})
	require.NoError(t, err)
	assert.Len(t, windows, 3)
}

func TestSetWeeklyAvailabilityAuthorization(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SetWeeklyAvailability(context.Background(), "coach-1", otherActor, weekdayWindows())
	require.Error(t, err)
	assert.True(t, utils.IsForbiddenError(err))

	_, err = svc.SetWeeklyAvailability(context.Background(), "coach-1", adminActor, weekdayWindows())
	require.NoError(t, err)

	_, err = svc.SetWeeklyAvailability(context.Background(), "member-1", adminActor, weekdayWindows())
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err), "only coach accounts hold availability")
}

func TestAddBlockedRange(t *testing.T) {
	svc, _, repo := newTestService()

	block, err := svc.AddBlockedRange(context.Background(), "coach-1", coachActor, models.BlockTimeRequest{
		StartAt: "2025-06-10T09:00:00Z",
		EndAt:   "2025-06-10T12:00:00Z",
		Reason:  "conference",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, block.ID)
	assert.Equal(t, "conference", block.Reason)
	assert.Equal(t, testNow, block.CreatedAt)
	assert.Len(t, repo.blocks, 1)
}

func TestAddBlockedRangeValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name string
		req  models.BlockTimeRequest
	}{
		{"bad start", models.BlockTimeRequest{StartAt: "noon", EndAt: "2025-06-10T12:00:00Z"}},
		{"bad end", models.BlockTimeRequest{StartAt: "2025-06-10T09:00:00Z", EndAt: "midnight"}},
		{"end before start", models.BlockTimeRequest{StartAt: "2025-06-10T12:00:00Z", EndAt: "2025-06-10T09:00:00Z"}},
		{"zero length", models.BlockTimeRequest{StartAt: "2025-06-10T09:00:00Z", EndAt: "2025-06-10T09:00:00Z"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddBlockedRange(context.Background(), "coach-1", coachActor, tc.req)
			require.Error(t, err)
			assert.True(t, utils.IsValidationError(err))
		})
	}
}

func TestRemoveBlockedRange(t *testing.T) {
	svc, _, repo := newTestService()

	block, err := svc.AddBlockedRange(context.Background(), "coach-1", coachActor, models.BlockTimeRequest{
		StartAt: "2025-06-10T09:00:00Z",
		EndAt:   "2025-06-10T12:00:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveBlockedRange(context.Background(), "coach-1", coachActor, block.ID))
	assert.Empty(t, repo.blocks)

	err = svc.RemoveBlockedRange(context.Background(), "coach-1", coachActor, block.ID)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestRemoveBlockedRangeOtherCoach(t *testing.T) {
	svc, _, _ := newTestService()

	block, err := svc.AddBlockedRange(context.Background(), "coach-1", coachActor, models.BlockTimeRequest{
		StartAt: "2025-06-10T09:00:00Z",
		EndAt:   "2025-06-10T12:00:00Z",
	})
	require.NoError(t, err)

	// A different coach cannot touch it.
	err = svc.RemoveBlockedRange(context.Background(), "coach-1", otherActor, block.ID)
	require.Error(t, err)
	assert.True(t, utils.IsForbiddenError(err))
}

func TestListBlockedRangesDefaultsWindow(t *testing.T) {
	svc, _, repo := newTestService()
	repo.blocks["past"] = &models.BlockedTimeRange{
		ID: "past", CoachID: "coach-1",
		StartAt: testNow.AddDate(0, 0, -7), EndAt: testNow.AddDate(0, 0, -6),
	}
	repo.blocks["soon"] = &models.BlockedTimeRange{
		ID: "soon", CoachID: "coach-1",
		StartAt: testNow.AddDate(0, 0, 7), EndAt: testNow.AddDate(0, 0, 8),
	}
	repo.blocks["far"] = &models.BlockedTimeRange{
		ID: "far", CoachID: "coach-1",
		StartAt: testNow.AddDate(0, 6, 0), EndAt: testNow.AddDate(0, 6, 1),
	}

	blocks, err := svc.ListBlockedRanges(context.Background(), "coach-1", coachActor, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, blocks, 1, "defaults cover now through three months out")
	assert.Equal(t, "soon", blocks[0].ID)
}

func TestGetWeeklyAvailabilityEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	windows, err := svc.GetWeeklyAvailability(context.Background(), "coach-1", coachActor)
	require.NoError(t, err)
	assert.NotNil(t, windows)
	assert.Empty(t, windows)
}
