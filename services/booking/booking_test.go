package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	sessionRepo "coachhub/database/repository/session"
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

// memSessionRepo mirrors the Mongo repository's conflict semantics in memory.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *memSessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, assert.AnError
}

func (r *memSessionRepo) hasConflictLocked(coachID string, start, end time.Time, excludeID string) bool {
	for _, s := range r.sessions {
		if s.CoachID != coachID || s.Status != models.SessionScheduled || s.ID == excludeID {
			continue
		}
		if s.ScheduledAt.Before(end) && s.EndsAt.After(start) {
			return true
		}
	}
	return false
}

func (r *memSessionRepo) CreateIfNoConflict(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasConflictLocked(session.CoachID, session.ScheduledAt, session.EndsAt, "") {
		return sessionRepo.ErrSlotTaken
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) RescheduleIfNoConflict(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasConflictLocked(session.CoachID, session.ScheduledAt, session.EndsAt, session.ID) {
		return sessionRepo.ErrSlotTaken
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) Update(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) ListScheduledInRange(_ context.Context, coachID string, from, to time.Time) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if s.CoachID == coachID && s.Status == models.SessionScheduled && s.ScheduledAt.Before(to) && s.EndsAt.After(from) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) List(_ context.Context, filters models.SessionFilters) ([]models.Session, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Session
	for _, s := range r.sessions {
		if filters.CoachID != "" && s.CoachID != filters.CoachID {
			continue
		}
		if filters.MenteeID != "" && s.MenteeID != filters.MenteeID {
			continue
		}
		if filters.Status != "" && string(s.Status) != filters.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*DefaultSessionService, *memSessionRepo) {
	repo := newMemSessionRepo()
	users := &fakeUserRepo{users: map[string]*models.User{
		"coach-1":  {ID: "coach-1", Role: models.RoleCoach},
		"mentee-1": {ID: "mentee-1", Role: models.RoleMember, Timezone: "Europe/Berlin"},
		"mentee-2": {ID: "mentee-2", Role: models.RoleMember},
	}}
	svc := &DefaultSessionService{
		Sessions: repo,
		Users:    users,
		Clock:    fixedClock{now: testNow},
	}
	return svc, repo
}

func futureAt(hour int) string {
	return time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

func TestBookSessionDefaults(t *testing.T) {
	svc, _ := newTestService()

	session, err := svc.BookSession(context.Background(), "mentee-1", models.BookSessionRequest{
		CoachID:     "coach-1",
		ScheduledAt: futureAt(10),
		Topic:       "goal setting",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, models.SessionScheduled, session.Status)
	assert.Equal(t, models.DefaultSessionDuration, session.DurationMinutes)
	assert.Equal(t, models.SessionOneOnOne, session.SessionType)
	assert.Equal(t, "Europe/Berlin", session.Timezone, "timezone defaults from the mentee profile")
	assert.Equal(t, session.ScheduledAt.Add(time.Hour), session.EndsAt)
	assert.Equal(t, testNow, session.CreatedAt)
}

func TestBookSessionValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name     string
		menteeID string
		req      models.BookSessionRequest
		check    func(err error) bool
	}{
		{"unknown coach", "mentee-1", models.BookSessionRequest{CoachID: "ghost", ScheduledAt: futureAt(10)}, utils.IsNotFoundError},
		{"coach role required", "mentee-1", models.BookSessionRequest{CoachID: "mentee-2", ScheduledAt: futureAt(10)}, utils.IsNotFoundError},
		{"self booking", "coach-1", models.BookSessionRequest{CoachID: "coach-1", ScheduledAt: futureAt(10)}, utils.IsValidationError},
		{"bad timestamp", "mentee-1", models.BookSessionRequest{CoachID: "coach-1", ScheduledAt: "tomorrow"}, utils.IsValidationError},
		{"past time", "mentee-1", models.BookSessionRequest{CoachID: "coach-1", ScheduledAt: "2025-06-01T09:00:00Z"}, utils.IsValidationError},
		{"duration too short", "mentee-1", models.BookSessionRequest{CoachID: "coach-1", ScheduledAt: futureAt(10), DurationMinutes: 5}, utils.IsValidationError},
		{"duration too long", "mentee-1", models.BookSessionRequest{CoachID: "coach-1", ScheduledAt: futureAt(10), DurationMinutes: 300}, utils.IsValidationError},
		{"bad session type", "mentee-1", models.BookSessionRequest{CoachID: "coach-1", ScheduledAt: futureAt(10), SessionType: "webinar"}, utils.IsValidationError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BookSession(context.Background(), tc.menteeID, tc.req)
			require.Error(t, err)
			assert.True(t, tc.check(err), "unexpected error: %v", err)
		})
	}
}

func TestBookSessionOverlapConflicts(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.BookSession(context.Background(), "mentee-1", models.BookSessionRequest{
		CoachID:     "coach-1",
		ScheduledAt: futureAt(10), // 10:00-11:00
	})
	require.NoError(t, err)

	// Overlapping attempt by another mentee fails.
	_, err = svc.BookSession(context.Background(), "mentee-2", models.BookSessionRequest{
		CoachID:     "coach-1",
		ScheduledAt: "2025-06-02T10:30:00Z",
	})
	require.Error(t, err)
	assert.True(t, utils.IsConflictError(err), "unexpected error: %v", err)

	// Back-to-back booking starting exactly at the previous end succeeds.
	_, err = svc.BookSession(context.Background(), "mentee-2", models.BookSessionRequest{
		CoachID:     "coach-1",
		ScheduledAt: futureAt(11),
	})
	require.NoError(t, err)
}

func TestBookSessionDifferentCoachesNoConflict(t *testing.T) {
	svc, _ := newTestService()
	svc.Users.(*fakeUserRepo).users["coach-2"] = &models.User{ID: "coach-2", Role: models.RoleCoach}

	_, err := svc.BookSession(context.Background(), "mentee-1", models.BookSessionRequest{
		CoachID: "coach-1", ScheduledAt: futureAt(10),
	})
	require.NoError(t, err)

	_, err = svc.BookSession(context.Background(), "mentee-2", models.BookSessionRequest{
		CoachID: "coach-2", ScheduledAt: futureAt(10),
	})
	require.NoError(t, err)
}

func TestBookSessionConcurrentRequestsSingleWinner(t *testing.T) {
	svc, repo := newTestService()

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BookSession(context.Background(), "mentee-1", models.BookSessionRequest{
				CoachID:     "coach-1",
				ScheduledAt: futureAt(10),
			})
		}(i)
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
		} else {
			assert.True(t, utils.IsConflictError(err), "losers must see a conflict, got: %v", err)
		}
	}
	assert.Equal(t, 1, success, "exactly one concurrent booking may win")
	assert.Len(t, repo.sessions, 1)
}
