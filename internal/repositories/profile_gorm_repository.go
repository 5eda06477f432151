package repositories

import (
	"fmt"
	"strings"

	"sparks/internal/models"

	"gorm.io/gorm"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{
		db: db,
	}
}

// Create creates a new profile in the database. The caller supplies the ID
// (it is the owning user's ID, not a generated one).
func (r *GORMProfileRepository) Create(profile *models.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// Update updates an existing profile in the database.
func (r *GORMProfileRepository) Update(profile *models.Profile) error {
	res := r.db.Model(&models.Profile{}).Where("id = ?", profile.ID).
		Updates(map[string]interface{}{"username": profile.Username, "avatar": profile.Avatar})
	if res.Error != nil {
		return fmt.Errorf("failed to update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile with ID %s for update: %w", profile.ID, ErrNotFound)
	}
	return nil
}

// GetByID retrieves a profile by its ID (the owning user's ID).
func (r *GORMProfileRepository) GetByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile by ID %s: %w", id, err)
	}
	return &profile, nil
}

// GetByUsername retrieves a profile by username, case-insensitively, so the
// pre-insert uniqueness check catches "Alice" vs "alice".
func (r *GORMProfileRepository) GetByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "LOWER(username) = ?", strings.ToLower(username)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile by username %s: %w", username, err)
	}
	return &profile, nil
}
