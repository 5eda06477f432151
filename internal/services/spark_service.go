package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sparks/internal/models"
	"sparks/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// EventPublisher publishes change events for subscribers. Implemented by
// pkg/rabbitmq.Client and by the in-process hub the client library uses.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ErrEmptyContent is returned for submissions that are blank after trimming.
var ErrEmptyContent = errors.New("spark content cannot be empty")

// ErrContentTooLong is returned for submissions over the content budget.
var ErrContentTooLong = fmt.Errorf("spark content exceeds %d characters", models.SparkSoftLimit)

// ErrNotSparkOwner is returned when a user tries to revise someone else's
// spark.
var ErrNotSparkOwner = errors.New("spark belongs to another user")

// Feed is the merged same-day view the feed screen renders.
type Feed struct {
	Sparks []models.FeedSpark `json:"sparks"`
	// Mine is the caller's own spark for the day, nil when they have not
	// posted yet. It drives the compose-vs-edit affordance.
	Mine *models.FeedSpark `json:"mine,omitempty"`
}

// SparkService handles business logic for sparks and bookmarks.
type SparkService struct {
	sparkRepo repositories.SparkRepository
	savedRepo repositories.SavedSparkRepository
	publisher EventPublisher
}

// NewSparkService creates a new SparkService.
func NewSparkService(sparkRepo repositories.SparkRepository, savedRepo repositories.SavedSparkRepository, publisher EventPublisher) *SparkService {
	return &SparkService{
		sparkRepo: sparkRepo,
		savedRepo: savedRepo,
		publisher: publisher,
	}
}

// Feed assembles the caller's view of today: every spark created during the
// local calendar day of now, newest first, with the caller's saved set
// merged in. The two reads are independent and issued in parallel.
func (s *SparkService) Feed(userID string, now time.Time) (*Feed, error) {
	from, to := models.DayRange(now)

	var (
		sparks []models.Spark
		saved  map[string]bool
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		sparks, err = s.sparkRepo.InRangeWithAuthors(from, to)
		return err
	})
	g.Go(func() error {
		var err error
		saved, err = s.savedRepo.IDsByUser(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble feed: %w", err)
	}

	feed := &Feed{Sparks: make([]models.FeedSpark, 0, len(sparks))}
	for _, spark := range sparks {
		entry := models.FeedSpark{Spark: spark, IsSaved: saved[spark.ID]}
		feed.Sparks = append(feed.Sparks, entry)
		if spark.UserID == userID {
			mine := entry
			feed.Mine = &mine
		}
	}
	return feed, nil
}

// SubmitDaily posts or revises the caller's spark for now's calendar day:
// an existing same-day spark is updated in place, otherwise a new row is
// inserted. Never both, never a duplicate.
func (s *SparkService) SubmitDaily(userID, content string, now time.Time) (*models.Spark, error) {
	existing, err := s.sparkRepo.ByUserAndDay(userID, models.DayOf(now))
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check today's spark: %w", err)
	}
	if existing != nil {
		return s.Revise(userID, existing.ID, content)
	}
	return s.Insert(userID, content, now)
}

// Insert creates a new spark for now's calendar day. The per-user-per-day
// unique index rejects a concurrent duplicate from another device.
func (s *SparkService) Insert(userID, content string, now time.Time) (*models.Spark, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	spark := &models.Spark{
		UserID:    userID,
		Day:       models.DayOf(now),
		Content:   content,
		CreatedAt: now,
	}
	if err := s.sparkRepo.Create(spark); err != nil {
		return nil, err
	}
	s.publishChange("spark.created", spark)
	return spark, nil
}

// Revise replaces the content of an existing spark owned by userID. Content
// is the only mutable attribute.
func (s *SparkService) Revise(userID, sparkID, content string) (*models.Spark, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	spark, err := s.sparkRepo.GetByID(sparkID)
	if err != nil {
		return nil, err
	}
	if spark.UserID != userID {
		return nil, ErrNotSparkOwner
	}

	if err := s.sparkRepo.UpdateContent(sparkID, content); err != nil {
		return nil, err
	}
	spark.Content = content
	s.publishChange("spark.updated", spark)
	return spark, nil
}

// Save bookmarks a spark for the caller. Saving twice is a no-op.
func (s *SparkService) Save(userID, sparkID string) error {
	if _, err := s.sparkRepo.GetByID(sparkID); err != nil {
		return err
	}
	return s.savedRepo.Save(userID, sparkID)
}

// Unsave removes a bookmark. Removing an absent bookmark is a no-op.
func (s *SparkService) Unsave(userID, sparkID string) error {
	return s.savedRepo.Unsave(userID, sparkID)
}

// SavedIDs returns the full set of spark IDs the user has saved.
func (s *SparkService) SavedIDs(userID string) (map[string]bool, error) {
	return s.savedRepo.IDsByUser(userID)
}

// SparksByUser returns the user's sparks across all days, newest first.
func (s *SparkService) SparksByUser(userID string) ([]models.Spark, error) {
	return s.sparkRepo.AllByUser(userID)
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if len([]rune(content)) > models.SparkSoftLimit {
		return "", ErrContentTooLong
	}
	return content, nil
}

// publishChange emits a change event. Subscribers re-fetch on any event, so
// the payload is a hint, not a contract; publish failures are logged and
// swallowed because the row mutation already succeeded.
func (s *SparkService) publishChange(event string, spark *models.Spark) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]string{
		"event":    event,
		"spark_id": spark.ID,
		"user_id":  spark.UserID,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.publisher.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event for spark %s: %v", event, spark.ID, err)
	}
}
