package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mintforge/packvault/internal/catalog"
	"github.com/mintforge/packvault/internal/domain"
)

// MockAllocationService is a testify mock for allocation.Service
type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) OpenPack(ctx context.Context, packID, userID string) (*domain.OpenResult, error) {
	args := m.Called(ctx, packID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpenResult), args.Error(1)
}

func (m *MockAllocationService) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockAllocationService) CreditWallet(ctx context.Context, userID string, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockAllocationService) ListAllocations(ctx context.Context, userID string, limit int) ([]domain.AllocationRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AllocationRecord), args.Error(1)
}

// MockCatalogService is a testify mock for catalog.Service
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetPack(ctx context.Context, packID string) (*domain.Pack, error) {
	args := m.Called(ctx, packID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pack), args.Error(1)
}

func (m *MockCatalogService) ListActivePacks(ctx context.Context) ([]domain.Pack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pack), args.Error(1)
}

func (m *MockCatalogService) ResolveCandidates(ctx context.Context, packID string, tier domain.RarityTier) ([]catalog.Candidate, error) {
	args := m.Called(ctx, packID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Candidate), args.Error(1)
}

func (m *MockCatalogService) ListPackItems(ctx context.Context, packID string) ([]catalog.ItemAvailability, error) {
	args := m.Called(ctx, packID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ItemAvailability), args.Error(1)
}

func (m *MockCatalogService) ValidatePack(ctx context.Context, packID string) error {
	args := m.Called(ctx, packID)
	return args.Error(0)
}
