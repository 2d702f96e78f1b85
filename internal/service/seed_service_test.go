package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

func newSeedService(t *testing.T, name string, enabled bool, token string) SeedService {
	t.Helper()

	db := openTestDB(t, name)
	return NewSeedService(
		repository.NewSubjectRepository(db),
		repository.NewAnnouncementRepository(db),
		enabled,
		token,
		zerolog.Nop(),
	)
}

func TestSeedServiceGuards(t *testing.T) {
	disabled := newSeedService(t, "seeddisabled", false, "token")
	_, err := disabled.SeedSubjects(context.Background(), "token", nil)
	require.ErrorIs(t, err, ErrSeedDisabled)

	svc := newSeedService(t, "seedguard", true, "token")
	_, err = svc.SeedSubjects(context.Background(), "wrong", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	// An empty configured token never authorizes.
	open := newSeedService(t, "seedopen", true, "")
	_, err = open.SeedSubjects(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedServiceSubjectsSkipExistingCodes(t *testing.T) {
	svc := newSeedService(t, "seedsubjects", true, "token")
	ctx := context.Background()

	items := []models.Subject{
		{Name: "Mathematics", Code: "math101"},
		{Name: "Physics", Code: "PHY101"},
	}

	affected, err := svc.SeedSubjects(ctx, "token", items)
	require.NoError(t, err)
	require.Equal(t, int64(2), affected)

	again, err := svc.SeedSubjects(ctx, "token", []models.Subject{
		{Name: "Mathematics", Code: "MATH101"},
		{Name: "Chemistry", Code: "CHEM101"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), again)
}

func TestSeedServiceAnnouncementsApplyDefaults(t *testing.T) {
	svc := newSeedService(t, "seedannounce", true, "token")
	ctx := context.Background()

	affected, err := svc.SeedAnnouncements(ctx, "token", []models.Announcement{
		{Title: "Welcome back", Content: "Term starts Monday", PostedBy: 1},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
}
