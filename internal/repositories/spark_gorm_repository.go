package repositories

import (
	"fmt"
	"time"

	"sparks/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSparkRepository is a GORM implementation of SparkRepository.
type GORMSparkRepository struct {
	db *gorm.DB
}

// NewGORMSparkRepository creates a new instance of GORMSparkRepository.
func NewGORMSparkRepository(db *gorm.DB) *GORMSparkRepository {
	return &GORMSparkRepository{
		db: db,
	}
}

// Create creates a new spark in the database.
func (r *GORMSparkRepository) Create(spark *models.Spark) error {
	if spark.ID == "" {
		spark.ID = uuid.New().String()
	}
	if err := r.db.Create(spark).Error; err != nil {
		return fmt.Errorf("failed to create spark: %w", err)
	}
	return nil
}

// UpdateContent replaces the content of an existing spark. Only content is
// mutable; ownership and day never change after creation.
func (r *GORMSparkRepository) UpdateContent(id string, content string) error {
	res := r.db.Model(&models.Spark{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return fmt.Errorf("failed to update spark %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("spark with ID %s for update: %w", id, ErrNotFound)
	}
	return nil
}

// GetByID retrieves a single spark by its ID.
func (r *GORMSparkRepository) GetByID(id string) (*models.Spark, error) {
	var spark models.Spark
	if err := r.db.First(&spark, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("spark with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get spark by ID %s: %w", id, err)
	}
	return &spark, nil
}

// InRangeWithAuthors returns sparks created in [from, to), newest first,
// preloading each spark's author profile.
func (r *GORMSparkRepository) InRangeWithAuthors(from, to time.Time) ([]models.Spark, error) {
	var sparks []models.Spark
	err := r.db.Preload("Profile").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&sparks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sparks in range: %w", err)
	}
	return sparks, nil
}

// AllByUser returns every spark the user has posted, newest first.
func (r *GORMSparkRepository) AllByUser(userID string) ([]models.Spark, error) {
	var sparks []models.Spark
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sparks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sparks for user %s: %w", userID, err)
	}
	return sparks, nil
}

// ByUserAndDay returns the user's spark for one calendar day.
func (r *GORMSparkRepository) ByUserAndDay(userID, day string) (*models.Spark, error) {
	var spark models.Spark
	if err := r.db.First(&spark, "user_id = ? AND day = ?", userID, day).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("spark for user %s on %s: %w", userID, day, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get spark for user %s on %s: %w", userID, day, err)
	}
	return &spark, nil
}
