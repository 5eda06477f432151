package repositories

// SavedSparkRepository defines the interface for bookmark data access.
type SavedSparkRepository interface {
	// Save records a bookmark. Saving a spark twice is a no-op.
	Save(userID, sparkID string) error
	// Unsave removes a bookmark. Removing an absent bookmark is a no-op.
	Unsave(userID, sparkID string) error
	// IDsByUser returns the set of spark IDs the user has saved.
	IDsByUser(userID string) (map[string]bool, error)
}
