package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"sparks/internal/models"

	"github.com/google/uuid"
)

// MockSparkRepository is an in-memory implementation of SparkRepository.
type MockSparkRepository struct {
	sparks   map[string]models.Spark
	profiles map[string]models.Profile // author embeds for InRangeWithAuthors
	mu       sync.RWMutex
}

// NewMockSparkRepository creates a new instance of MockSparkRepository.
func NewMockSparkRepository() *MockSparkRepository {
	return &MockSparkRepository{
		sparks:   make(map[string]models.Spark),
		profiles: make(map[string]models.Profile),
	}
}

// SetProfile registers an author profile returned by InRangeWithAuthors.
func (r *MockSparkRepository) SetProfile(profile models.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
}

// Create adds a new spark, enforcing the per-user-per-day unique index the
// way the database would.
func (r *MockSparkRepository) Create(spark *models.Spark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sparks {
		if existing.UserID == spark.UserID && existing.Day == spark.Day {
			return fmt.Errorf("duplicate spark for user %s on %s: unique constraint", spark.UserID, spark.Day)
		}
	}
	if spark.ID == "" {
		spark.ID = uuid.New().String()
	}
	if spark.CreatedAt.IsZero() {
		spark.CreatedAt = time.Now()
	}
	spark.UpdatedAt = time.Now()
	r.sparks[spark.ID] = *spark
	return nil
}

// UpdateContent replaces the content of an existing spark.
func (r *MockSparkRepository) UpdateContent(id string, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	spark, ok := r.sparks[id]
	if !ok {
		return fmt.Errorf("spark with ID %s for update: %w", id, ErrNotFound)
	}
	spark.Content = content
	spark.UpdatedAt = time.Now()
	r.sparks[id] = spark
	return nil
}

// GetByID returns a spark by its ID.
func (r *MockSparkRepository) GetByID(id string) (*models.Spark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spark, ok := r.sparks[id]
	if !ok {
		return nil, fmt.Errorf("spark with ID %s: %w", id, ErrNotFound)
	}
	return &spark, nil
}

// InRangeWithAuthors returns sparks created in [from, to), newest first.
func (r *MockSparkRepository) InRangeWithAuthors(from, to time.Time) ([]models.Spark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Spark
	for _, spark := range r.sparks {
		if spark.CreatedAt.Before(from) || !spark.CreatedAt.Before(to) {
			continue
		}
		if profile, ok := r.profiles[spark.UserID]; ok {
			p := profile
			spark.Profile = &p
		}
		out = append(out, spark)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AllByUser returns the user's sparks, newest first.
func (r *MockSparkRepository) AllByUser(userID string) ([]models.Spark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Spark
	for _, spark := range r.sparks {
		if spark.UserID == userID {
			out = append(out, spark)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ByUserAndDay returns the user's spark for one calendar day.
func (r *MockSparkRepository) ByUserAndDay(userID, day string) (*models.Spark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, spark := range r.sparks {
		if spark.UserID == userID && spark.Day == day {
			s := spark
			return &s, nil
		}
	}
	return nil, fmt.Errorf("spark for user %s on %s: %w", userID, day, ErrNotFound)
}
