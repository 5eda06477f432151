package services

import (
	"errors"
	"fmt"
	"strings"

	"sparks/internal/models"
	"sparks/internal/repositories"
)

// ErrUsernameTaken is returned when a username collides with an existing
// profile. The message deliberately carries the word "duplicate" so clients
// that pattern-match backend uniqueness errors recognize it.
var ErrUsernameTaken = errors.New("duplicate username: already taken")

// ProfileService handles business logic for public profiles.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// Get returns the profile for a user ID, or a wrapped
// repositories.ErrNotFound when onboarding has not completed yet.
func (s *ProfileService) Get(userID string) (*models.Profile, error) {
	return s.profileRepo.GetByID(userID)
}

// Create creates the user's profile at onboarding completion.
func (s *ProfileService) Create(userID, username string, avatar models.Avatar) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	if err := s.checkUsernameFree(username, userID); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:       userID,
		Username: username,
		Avatar:   avatar,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return profile, nil
}

// Update changes the user's username and/or avatar.
func (s *ProfileService) Update(userID, username string, avatar models.Avatar) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	if err := s.checkUsernameFree(username, userID); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:       userID,
		Username: username,
		Avatar:   avatar,
	}
	if err := s.profileRepo.Update(profile); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return s.profileRepo.GetByID(userID)
}

// checkUsernameFree is the case-insensitive pre-check; the database unique
// index remains the backstop for concurrent submissions.
func (s *ProfileService) checkUsernameFree(username, userID string) error {
	existing, err := s.profileRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check username %s: %w", username, err)
	}
	if existing.ID != userID {
		return ErrUsernameTaken
	}
	return nil
}
