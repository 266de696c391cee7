package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// MockTrainerRepository
type MockTrainerRepository struct {
	mock.Mock
}

func (m *MockTrainerRepository) List(ctx context.Context) ([]entity.Trainer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Trainer), args.Error(1)
}

func (m *MockTrainerRepository) Create(ctx context.Context, t *entity.Trainer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTrainerRepository) Update(ctx context.Context, t *entity.Trainer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTrainerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Sale), args.Error(1)
}

func (m *MockSaleRepository) Create(ctx context.Context, s *entity.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, s *entity.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockViewRepository
type MockViewRepository struct {
	mock.Mock
}

func (m *MockViewRepository) ListExpiryAlerts(ctx context.Context) ([]entity.ExpiryAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ExpiryAlert), args.Error(1)
}

func (m *MockViewRepository) ListTrainerRankings(ctx context.Context, limit int) ([]entity.TrainerRanking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TrainerRanking), args.Error(1)
}
