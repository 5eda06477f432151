package client_test

import (
	"context"
	"time"

	"sparks/internal/client"
	"sparks/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of client.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Session() *client.Session {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*client.Session)
}

func (m *MockGateway) SignOut() {
	m.Called()
}

func (m *MockGateway) TodaySparks(ctx context.Context, from, to time.Time) ([]models.Spark, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Spark), args.Error(1)
}

func (m *MockGateway) SavedSparkIDs(ctx context.Context) (map[string]bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockGateway) MySparks(ctx context.Context) ([]models.Spark, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Spark), args.Error(1)
}

func (m *MockGateway) InsertSpark(ctx context.Context, content string) (*models.Spark, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Spark), args.Error(1)
}

func (m *MockGateway) UpdateSpark(ctx context.Context, sparkID, content string) error {
	args := m.Called(ctx, sparkID, content)
	return args.Error(0)
}

func (m *MockGateway) SaveSpark(ctx context.Context, sparkID string) error {
	args := m.Called(ctx, sparkID)
	return args.Error(0)
}

func (m *MockGateway) UnsaveSpark(ctx context.Context, sparkID string) error {
	args := m.Called(ctx, sparkID)
	return args.Error(0)
}

func (m *MockGateway) MyProfile(ctx context.Context) (*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockGateway) CreateProfile(ctx context.Context, username string, avatar models.Avatar) (*models.Profile, error) {
	args := m.Called(ctx, username, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockGateway) UpdateProfile(ctx context.Context, username string, avatar models.Avatar) (*models.Profile, error) {
	args := m.Called(ctx, username, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockGateway) SubscribeSparkChanges(onChange func()) (func(), error) {
	args := m.Called(onChange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}
