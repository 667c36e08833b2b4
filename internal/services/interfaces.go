package services

import (
	"context"
	"net/url"

	"quickstart/internal/models"
)

// WizardService drives the step-by-step walk of one named configuration:
// normalizing submissions, persisting per-section state, and reporting
// progress.
type WizardService interface {
	SaveStep(name, source string, form url.Values) (*models.StepState, error)
	RetrieveStep(name, source string) (*models.StepState, error)
	WalkStatus(name string) (*models.WalkStatus, error)
	ListConfigs() ([]string, error)
	NewConfigName() (string, error)
	ResetSection(name, source string) error
	ResetConfig(name string) error
	ValidateProvider(ctx context.Context, name, provider string, params map[string]string) (*models.ValidationResult, error)
}

// BuilderService assembles stored sections into the final configuration
// document.
type BuilderService interface {
	BuildConfig(name, headerStyle string) (*models.BuildResult, error)
	Download(name, headerStyle string, redacted bool) (*models.BuildResult, error)
}

// InfoService reports what is running.
type InfoService interface {
	GetInfo() models.Info
}
