package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"sparks/internal/models"
	"sparks/internal/repositories"
	"sparks/internal/services"

	"github.com/stretchr/testify/assert"
)

func newSparkFixture() (*services.SparkService, *repositories.MockSparkRepository, *repositories.MockSavedSparkRepository) {
	sparkRepo := repositories.NewMockSparkRepository()
	savedRepo := repositories.NewMockSavedSparkRepository()
	return services.NewSparkService(sparkRepo, savedRepo, nil), sparkRepo, savedRepo
}

func TestSparkService_SubmitDaily_InsertsFirstPost(t *testing.T) {
	svc, _, _ := newSparkFixture()
	now := time.Date(2026, 8, 29, 10, 30, 0, 0, time.Local)

	spark, err := svc.SubmitDaily("user-1", "Be kind.", now)
	assert.NoError(t, err)
	assert.NotEmpty(t, spark.ID)
	assert.Equal(t, "Be kind.", spark.Content)
	assert.Equal(t, "2026-08-29", spark.Day)

	feed, err := svc.Feed("user-1", now)
	assert.NoError(t, err)
	assert.Len(t, feed.Sparks, 1)
	assert.NotNil(t, feed.Mine)
	assert.Equal(t, spark.ID, feed.Mine.ID)
}

func TestSparkService_SubmitDaily_UpdatesSameDayPost(t *testing.T) {
	svc, _, _ := newSparkFixture()
	now := time.Date(2026, 8, 29, 10, 30, 0, 0, time.Local)

	first, err := svc.SubmitDaily("user-1", "Old text", now)
	assert.NoError(t, err)

	second, err := svc.SubmitDaily("user-1", "New text", now.Add(2*time.Hour))
	assert.NoError(t, err)

	// Same entry id updated, never a duplicate row
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "New text", second.Content)

	feed, err := svc.Feed("user-1", now)
	assert.NoError(t, err)
	assert.Len(t, feed.Sparks, 1)
	assert.Equal(t, "New text", feed.Sparks[0].Content)
}

func TestSparkService_SubmitDaily_NewDayStartsNewEntry(t *testing.T) {
	svc, _, _ := newSparkFixture()
	day1 := time.Date(2026, 8, 29, 23, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 1, 0, 0, 0, time.Local)

	first, err := svc.SubmitDaily("user-1", "Yesterday", day1)
	assert.NoError(t, err)
	second, err := svc.SubmitDaily("user-1", "Today", day2)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	sparks, err := svc.SparksByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, sparks, 2)
}

func TestSparkService_SubmitDaily_RejectsInvalidContent(t *testing.T) {
	svc, _, _ := newSparkFixture()
	now := time.Now()

	_, err := svc.SubmitDaily("user-1", "   ", now)
	assert.ErrorIs(t, err, services.ErrEmptyContent)

	_, err = svc.SubmitDaily("user-1", strings.Repeat("x", 281), now)
	assert.ErrorIs(t, err, services.ErrContentTooLong)
}

func TestSparkService_Revise_RejectsForeignSpark(t *testing.T) {
	svc, _, _ := newSparkFixture()
	now := time.Now()

	spark, err := svc.SubmitDaily("user-1", "mine", now)
	assert.NoError(t, err)

	_, err = svc.Revise("user-2", spark.ID, "stolen")
	assert.ErrorIs(t, err, services.ErrNotSparkOwner)
}

func TestSparkService_Feed_MergesSavedSetAndAuthors(t *testing.T) {
	svc, sparkRepo, _ := newSparkFixture()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	sparkRepo.SetProfile(models.Profile{ID: "user-2", Username: "ada", Avatar: models.AvatarStar})

	mine, err := svc.SubmitDaily("user-1", "mine", now)
	assert.NoError(t, err)
	theirs, err := svc.SubmitDaily("user-2", "theirs", now.Add(time.Minute))
	assert.NoError(t, err)

	assert.NoError(t, svc.Save("user-1", theirs.ID))

	feed, err := svc.Feed("user-1", now)
	assert.NoError(t, err)
	assert.Len(t, feed.Sparks, 2)

	// Newest first
	assert.Equal(t, theirs.ID, feed.Sparks[0].ID)
	assert.True(t, feed.Sparks[0].IsSaved)
	assert.NotNil(t, feed.Sparks[0].Profile)
	assert.Equal(t, "ada", feed.Sparks[0].Profile.Username)

	assert.Equal(t, mine.ID, feed.Sparks[1].ID)
	assert.False(t, feed.Sparks[1].IsSaved)
	assert.NotNil(t, feed.Mine)
	assert.Equal(t, mine.ID, feed.Mine.ID)
}

func TestSparkService_Feed_ExcludesOtherDays(t *testing.T) {
	svc, _, _ := newSparkFixture()
	yesterday := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	today := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	_, err := svc.SubmitDaily("user-1", "old news", yesterday)
	assert.NoError(t, err)

	feed, err := svc.Feed("user-1", today)
	assert.NoError(t, err)
	assert.Empty(t, feed.Sparks)
	assert.Nil(t, feed.Mine)
}

func TestSparkService_SaveUnsave_Idempotent(t *testing.T) {
	svc, _, _ := newSparkFixture()
	now := time.Now()

	spark, err := svc.SubmitDaily("user-2", "save me", now)
	assert.NoError(t, err)

	assert.NoError(t, svc.Save("user-1", spark.ID))
	assert.NoError(t, svc.Save("user-1", spark.ID)) // repeat is a no-op

	saved, err := svc.SavedIDs("user-1")
	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{spark.ID: true}, saved)

	assert.NoError(t, svc.Unsave("user-1", spark.ID))
	assert.NoError(t, svc.Unsave("user-1", spark.ID)) // repeat is a no-op

	saved, err = svc.SavedIDs("user-1")
	assert.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSparkService_Save_UnknownSpark(t *testing.T) {
	svc, _, _ := newSparkFixture()

	err := svc.Save("user-1", "no-such-spark")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
