package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"sparks/internal/models"
	"sparks/internal/repositories"
	"sparks/internal/services"
)

// ErrNoSession is returned by gateway operations once the session has been
// torn down.
var ErrNoSession = errors.New("no active session")

// ChangeHub is an in-process change-event bus. It implements
// services.EventPublisher on the producing side and fans each event out to
// subscribers, so service mutations wake local controllers the same way the
// AMQP exchange wakes remote ones.
type ChangeHub struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewChangeHub creates an empty hub.
func NewChangeHub() *ChangeHub {
	return &ChangeHub{subs: make(map[int]func())}
}

// Publish notifies every subscriber. The payload is not forwarded;
// subscribers re-fetch. Callbacks run on their own goroutines so a
// publisher inside a mutation never deadlocks with a refreshing subscriber.
func (h *ChangeHub) Publish(routingKey string, body []byte) error {
	h.mu.Lock()
	callbacks := make([]func(), 0, len(h.subs))
	for _, cb := range h.subs {
		callbacks = append(callbacks, cb)
	}
	h.mu.Unlock()

	for _, cb := range callbacks {
		go cb()
	}
	return nil
}

// Subscribe registers onChange and returns its unsubscribe function.
func (h *ChangeHub) Subscribe(onChange func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.subs[id] = onChange
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// LocalGateway is a Gateway backed directly by the services, for same-process
// deployments and integration tests. Change events travel through the hub the
// spark service publishes to.
type LocalGateway struct {
	sparks   *services.SparkService
	profiles *services.ProfileService
	hub      *ChangeHub
	now      func() time.Time

	mu      sync.RWMutex
	session *Session
}

// NewLocalGateway creates a LocalGateway for an already-authenticated
// session. hub must be the same hub the spark service publishes to.
func NewLocalGateway(sparks *services.SparkService, profiles *services.ProfileService, hub *ChangeHub, session *Session) *LocalGateway {
	return &LocalGateway{
		sparks:   sparks,
		profiles: profiles,
		hub:      hub,
		now:      time.Now,
		session:  session,
	}
}

// Session returns the current session, or nil after SignOut.
func (g *LocalGateway) Session() *Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// SignOut drops the session. Every subsequent operation fails with
// ErrNoSession.
func (g *LocalGateway) SignOut() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = nil
}

func (g *LocalGateway) userID() (string, error) {
	s := g.Session()
	if s == nil {
		return "", ErrNoSession
	}
	return s.UserID, nil
}

// TodaySparks returns sparks created in [from, to), newest first.
func (g *LocalGateway) TodaySparks(ctx context.Context, from, to time.Time) ([]models.Spark, error) {
	userID, err := g.userID()
	if err != nil {
		return nil, err
	}
	feed, err := g.sparks.Feed(userID, from)
	if err != nil {
		return nil, err
	}
	out := make([]models.Spark, 0, len(feed.Sparks))
	for _, entry := range feed.Sparks {
		out = append(out, entry.Spark)
	}
	return out, nil
}

// SavedSparkIDs returns the current user's saved spark IDs.
func (g *LocalGateway) SavedSparkIDs(ctx context.Context) (map[string]bool, error) {
	userID, err := g.userID()
	if err != nil {
		return nil, err
	}
	return g.sparks.SavedIDs(userID)
}

// MySparks returns the current user's sparks across all days.
func (g *LocalGateway) MySparks(ctx context.Context) ([]models.Spark, error) {
	userID, err := g.userID()
	if err != nil {
		return nil, err
	}
	return g.sparks.SparksByUser(userID)
}

// InsertSpark creates today's spark for the current user.
func (g *LocalGateway) InsertSpark(ctx context.Context, content string) (*models.Spark, error) {
	userID, err := g.userID()
	if err != nil {
		return nil, err
	}
	return g.sparks.Insert(userID, content, g.now())
}

// UpdateSpark revises an existing spark owned by the current user.
func (g *LocalGateway) UpdateSpark(ctx context.Context, sparkID, content string) error {
	userID, err := g.userID()
	if err != nil {
		return err
	}
	_, err = g.sparks.Revise(userID, sparkID, content)
	return err
}

// SaveSpark bookmarks a spark for the current user.
func (g *LocalGateway) SaveSpark(ctx context.Context, sparkID string) error {
	userID, err := g.userID()
	if err != nil {
		return err
	}
	return g.sparks.Save(userID, sparkID)
}

// UnsaveSpark removes a bookmark.
func (g *LocalGateway) UnsaveSpark(ctx context.Context, sparkID string) error {
	userID, err := g.userID()
	if err != nil {
		return err
	}
	return g.sparks.Unsave(userID, sparkID)
}

// MyProfile returns the current user's profile, or (nil, nil) before
// onboarding completes.
func (g *LocalGateway) MyProfile(ctx context.Context) (*models.Profile, error) {
	userID, err := g.userID()
	if err != nil {
		return nil, err
	}
	profile, err := g.profiles.Get(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// CreateProfile creates the current user's profile.
func (g *LocalGateway) CreateProfile(ctx context.Context, username string, avatar models.Avatar) (*models.Profile, error) {
	userID, err := g.userID()
	if err != nil {
		return nil, err
	}
	return g.profiles.Create(userID, username, avatar)
}

// UpdateProfile updates the current user's profile.
func (g *LocalGateway) UpdateProfile(ctx context.Context, username string, avatar models.Avatar) (*models.Profile, error) {
	userID, err := g.userID()
	if err != nil {
		return nil, err
	}
	return g.profiles.Update(userID, username, avatar)
}

// SubscribeSparkChanges registers onChange on the hub.
func (g *LocalGateway) SubscribeSparkChanges(onChange func()) (func(), error) {
	return g.hub.Subscribe(onChange), nil
}
