package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"quickstart/internal/models"
	"quickstart/internal/services"
)

// MockWizardService is a mock implementation of services.WizardService.
type MockWizardService struct {
	mock.Mock
}

var _ services.WizardService = (*MockWizardService)(nil)

func (m *MockWizardService) SaveStep(name, source string, form url.Values) (*models.StepState, error) {
	args := m.Called(name, source, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StepState), args.Error(1)
}

func (m *MockWizardService) RetrieveStep(name, source string) (*models.StepState, error) {
	args := m.Called(name, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StepState), args.Error(1)
}

func (m *MockWizardService) WalkStatus(name string) (*models.WalkStatus, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WalkStatus), args.Error(1)
}

func (m *MockWizardService) ListConfigs() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockWizardService) NewConfigName() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockWizardService) ResetSection(name, source string) error {
	args := m.Called(name, source)
	return args.Error(0)
}

func (m *MockWizardService) ResetConfig(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockWizardService) ValidateProvider(ctx context.Context, name, provider string, params map[string]string) (*models.ValidationResult, error) {
	args := m.Called(ctx, name, provider, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationResult), args.Error(1)
}
