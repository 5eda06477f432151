package repositories

import "sync"

// MockSavedSparkRepository is an in-memory implementation of SavedSparkRepository.
type MockSavedSparkRepository struct {
	saved map[string]map[string]bool // userID -> sparkID set
	mu    sync.RWMutex

	// FailNext makes the next mutation fail with the given error, for
	// exercising revert-on-error paths.
	FailNext error
}

// NewMockSavedSparkRepository creates a new instance of MockSavedSparkRepository.
func NewMockSavedSparkRepository() *MockSavedSparkRepository {
	return &MockSavedSparkRepository{
		saved: make(map[string]map[string]bool),
	}
}

func (r *MockSavedSparkRepository) takeFailure() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}

// Save records a bookmark.
func (r *MockSavedSparkRepository) Save(userID, sparkID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return err
	}
	if r.saved[userID] == nil {
		r.saved[userID] = make(map[string]bool)
	}
	r.saved[userID][sparkID] = true
	return nil
}

// Unsave removes a bookmark.
func (r *MockSavedSparkRepository) Unsave(userID, sparkID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return err
	}
	delete(r.saved[userID], sparkID)
	return nil
}

// IDsByUser returns the user's saved spark IDs as a set.
func (r *MockSavedSparkRepository) IDsByUser(userID string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]bool, len(r.saved[userID]))
	for id := range r.saved[userID] {
		out[id] = true
	}
	return out, nil
}
