package client_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sparks/internal/client"
	"sparks/internal/models"
	"sparks/internal/repositories"
	"sparks/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupLocal boots the real services on an in-memory database and returns a
// gateway factory so each simulated device gets its own session.
func setupLocal(t *testing.T) (func(userID string) *client.LocalGateway, *client.ChangeHub) {
	t.Helper()

	// A uniquely named shared-cache database keeps the connection pool on
	// one schema without leaking rows between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.Spark{}, &models.SavedSpark{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	hub := client.NewChangeHub()
	sparkService := services.NewSparkService(
		repositories.NewGORMSparkRepository(db),
		repositories.NewGORMSavedSparkRepository(db),
		hub,
	)
	profileService := services.NewProfileService(repositories.NewGORMProfileRepository(db))

	return func(userID string) *client.LocalGateway {
		session := &client.Session{UserID: userID, Email: userID + "@example.com", Token: "token"}
		return client.NewLocalGateway(sparkService, profileService, hub, session)
	}, hub
}

func TestLocalGateway_OnboardingThenFeedFlow(t *testing.T) {
	newGateway, _ := setupLocal(t)
	ctx := context.Background()
	gw := newGateway("user-1")

	// Fresh account: no profile, router sends the user to onboarding
	root := client.NewRootController(gw)
	assert.Equal(t, client.RouteOnboarding, root.Resolve(ctx, client.RouteAuth))

	w := client.NewWizard(gw)
	w.Continue(ctx)
	w.SetUsername("sparky")
	w.Continue(ctx)
	w.SelectAvatar(models.AvatarSparkles)
	w.Continue(ctx)
	assert.True(t, w.Done())

	// The reactive redirect, not the wizard, advances into the app
	assert.Equal(t, client.RouteMain, root.Resolve(ctx, client.RouteOnboarding))

	// First post of the day inserts
	feed := client.NewFeedController(gw)
	assert.NoError(t, feed.Start(ctx))
	defer feed.Stop()

	draft := client.NewDraft(feed.Submit)
	draft.Open("")
	draft.SetContent("Be kind.")
	assert.NoError(t, draft.Submit(ctx))
	assert.False(t, draft.Visible())

	assert.Equal(t, 1, feed.Count())
	mine := feed.Mine()
	assert.NotNil(t, mine)
	assert.Equal(t, "Be kind.", mine.Content)

	// Editing the same day updates the same entry id
	firstID := mine.ID
	draft.Open(mine.Content)
	draft.SetContent("New text")
	assert.NoError(t, draft.Submit(ctx))

	assert.Equal(t, 1, feed.Count())
	assert.Equal(t, firstID, feed.Mine().ID)
	assert.Equal(t, "New text", feed.Mine().Content)
}

func TestLocalGateway_SaveToggleAgainstRealBackend(t *testing.T) {
	newGateway, _ := setupLocal(t)
	ctx := context.Background()

	author := newGateway("user-2")
	spark, err := author.InsertSpark(ctx, "worth saving")
	assert.NoError(t, err)

	reader := newGateway("user-1")
	feed := client.NewFeedController(reader)
	feed.Refresh(ctx)
	assert.Equal(t, 1, feed.Count())
	assert.False(t, feed.Sparks()[0].IsSaved)

	feed.ToggleSave(ctx, spark.ID)
	assert.True(t, feed.Sparks()[0].IsSaved)

	// The backend agrees after a clean re-fetch
	feed.Refresh(ctx)
	assert.True(t, feed.Sparks()[0].IsSaved)

	feed.ToggleSave(ctx, spark.ID)
	feed.Refresh(ctx)
	assert.False(t, feed.Sparks()[0].IsSaved)
}

func TestLocalGateway_ChangeEventsTriggerRefetch(t *testing.T) {
	newGateway, _ := setupLocal(t)
	ctx := context.Background()

	reader := newGateway("user-1")
	feed := client.NewFeedController(reader)
	assert.NoError(t, feed.Start(ctx))
	defer feed.Stop()
	assert.Equal(t, 0, feed.Count())

	// Another user posts; the subscription re-enters the fetch path
	author := newGateway("user-2")
	_, err := author.InsertSpark(ctx, "hello from another device")
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return feed.Count() == 1
	}, time.Second, 10*time.Millisecond, "feed should pick up the change event")
}

func TestLocalGateway_SignOutTearsDownSession(t *testing.T) {
	newGateway, _ := setupLocal(t)
	ctx := context.Background()
	gw := newGateway("user-1")

	profileView := client.NewProfileController(gw)
	profileView.SignOut()

	assert.Nil(t, gw.Session())
	_, err := gw.MySparks(ctx)
	assert.ErrorIs(t, err, client.ErrNoSession)

	root := client.NewRootController(gw)
	assert.Equal(t, client.RouteAuth, root.Resolve(ctx, client.RouteMain))
}

func TestLocalGateway_DuplicateUsernameAcrossUsers(t *testing.T) {
	newGateway, _ := setupLocal(t)
	ctx := context.Background()

	first := client.NewWizard(newGateway("user-1"))
	first.Continue(ctx)
	first.SetUsername("sparky")
	first.Continue(ctx)
	first.SelectAvatar(models.AvatarStar)
	first.Continue(ctx)
	assert.True(t, first.Done())

	// Case-insensitive collision surfaces the fixed message
	second := client.NewWizard(newGateway("user-2"))
	second.Continue(ctx)
	second.SetUsername("SPARKY")
	second.Continue(ctx)
	second.SelectAvatar(models.AvatarMoon)
	second.Continue(ctx)
	assert.False(t, second.Done())
	assert.Equal(t, "Username already taken. Please choose another.", second.Error())
}
