package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mintforge/packvault/internal/domain"
)

// MockCatalogRepo implements repository.Catalog for testing
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetPack(ctx context.Context, packID string) (*domain.Pack, error) {
	args := m.Called(ctx, packID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pack), args.Error(1)
}

func (m *MockCatalogRepo) ListActivePacks(ctx context.Context) ([]domain.Pack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pack), args.Error(1)
}

func (m *MockCatalogRepo) GetPackItems(ctx context.Context, packID string) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx, packID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}
