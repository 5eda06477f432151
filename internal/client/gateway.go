// Package client implements the application-side state of Daily Sparks:
// the feed, composer, profile and onboarding controllers a UI binds to,
// and the navigation decision they hang off. All remote access goes
// through the Gateway interface so the same controllers run against the
// in-process gateway, a network client or a test double.
package client

import (
	"context"
	"time"

	"sparks/internal/models"
)

// Session is the read-only identity reference scoping every query and
// mutation. It exists from sign-in until SignOut.
type Session struct {
	UserID string
	Email  string
	Token  string
}

// Gateway is the remote data gateway the controllers talk to: session
// accessor, row queries and mutations, and a change-event subscription
// with an explicit unsubscribe.
type Gateway interface {
	// Session returns the current session, or nil when signed out.
	Session() *Session
	// SignOut tears the session down.
	SignOut()

	// TodaySparks returns sparks created in [from, to), newest first, with
	// author profiles embedded.
	TodaySparks(ctx context.Context, from, to time.Time) ([]models.Spark, error)
	// SavedSparkIDs returns the set of spark IDs the current user has saved.
	SavedSparkIDs(ctx context.Context) (map[string]bool, error)
	// MySparks returns the current user's sparks across all days, newest first.
	MySparks(ctx context.Context) ([]models.Spark, error)

	InsertSpark(ctx context.Context, content string) (*models.Spark, error)
	UpdateSpark(ctx context.Context, sparkID, content string) error
	SaveSpark(ctx context.Context, sparkID string) error
	UnsaveSpark(ctx context.Context, sparkID string) error

	// MyProfile returns the current user's profile, or (nil, nil) when
	// onboarding has not completed yet.
	MyProfile(ctx context.Context) (*models.Profile, error)
	CreateProfile(ctx context.Context, username string, avatar models.Avatar) (*models.Profile, error)
	UpdateProfile(ctx context.Context, username string, avatar models.Avatar) (*models.Profile, error)

	// SubscribeSparkChanges registers onChange to run after any spark-table
	// mutation. The returned function unsubscribes.
	SubscribeSparkChanges(onChange func()) (unsubscribe func(), err error)
}
