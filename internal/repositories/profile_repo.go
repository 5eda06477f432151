package repositories

import "sparks/internal/models"

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	GetByID(id string) (*models.Profile, error)
	GetByUsername(username string) (*models.Profile, error)
}
