package repositories

import (
	"fmt"

	"sparks/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSavedSparkRepository is a GORM implementation of SavedSparkRepository.
type GORMSavedSparkRepository struct {
	db *gorm.DB
}

// NewGORMSavedSparkRepository creates a new instance of GORMSavedSparkRepository.
func NewGORMSavedSparkRepository(db *gorm.DB) *GORMSavedSparkRepository {
	return &GORMSavedSparkRepository{
		db: db,
	}
}

// Save records a bookmark. The ON CONFLICT DO NOTHING clause makes repeated
// saves idempotent instead of tripping the unique index.
func (r *GORMSavedSparkRepository) Save(userID, sparkID string) error {
	saved := models.SavedSpark{UserID: userID, SparkID: sparkID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&saved).Error; err != nil {
		return fmt.Errorf("failed to save spark %s for user %s: %w", sparkID, userID, err)
	}
	return nil
}

// Unsave removes a bookmark if present.
func (r *GORMSavedSparkRepository) Unsave(userID, sparkID string) error {
	res := r.db.Delete(&models.SavedSpark{}, "user_id = ? AND spark_id = ?", userID, sparkID)
	if res.Error != nil {
		return fmt.Errorf("failed to unsave spark %s for user %s: %w", sparkID, userID, res.Error)
	}
	return nil
}

// IDsByUser returns the user's saved spark IDs as a set.
func (r *GORMSavedSparkRepository) IDsByUser(userID string) (map[string]bool, error) {
	var ids []string
	err := r.db.Model(&models.SavedSpark{}).
		Where("user_id = ?", userID).
		Pluck("spark_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get saved sparks for user %s: %w", userID, err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
