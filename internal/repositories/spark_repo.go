package repositories

import (
	"time"

	"sparks/internal/models"
)

// SparkRepository defines the interface for spark data access.
type SparkRepository interface {
	Create(spark *models.Spark) error
	UpdateContent(id string, content string) error
	GetByID(id string) (*models.Spark, error)
	// InRangeWithAuthors returns every spark created in [from, to), newest
	// first, with the author profile embedded.
	InRangeWithAuthors(from, to time.Time) ([]models.Spark, error)
	// AllByUser returns a user's sparks across all days, newest first.
	AllByUser(userID string) ([]models.Spark, error)
	// ByUserAndDay returns the user's spark for the given calendar day, or
	// ErrNotFound when they have not posted yet.
	ByUserAndDay(userID, day string) (*models.Spark, error)
}
