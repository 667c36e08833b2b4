package mocks

import (
	"github.com/stretchr/testify/mock"

	"quickstart/internal/models"
	"quickstart/internal/services"
)

// MockBuilderService is a mock implementation of services.BuilderService.
type MockBuilderService struct {
	mock.Mock
}

var _ services.BuilderService = (*MockBuilderService)(nil)

func (m *MockBuilderService) BuildConfig(name, headerStyle string) (*models.BuildResult, error) {
	args := m.Called(name, headerStyle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildResult), args.Error(1)
}

func (m *MockBuilderService) Download(name, headerStyle string, redacted bool) (*models.BuildResult, error) {
	args := m.Called(name, headerStyle, redacted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildResult), args.Error(1)
}
