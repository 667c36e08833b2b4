package services

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"quickstart/internal/models"
	"quickstart/internal/repository"
	"quickstart/internal/wizard"
)

// SchemaValidatorSource supplies the compiled config schema for a branch.
type SchemaValidatorSource interface {
	Validator(branch string) (*jsonschema.Schema, error)
}

var _ BuilderService = (*builderService)(nil)

// builderService assembles stored sections into the final configuration
// document.
type builderService struct {
	Repo    *repository.Repository
	Schemas SchemaValidatorSource
	Branch  string
	Logger  *logrus.Logger
}

// NewBuilderService creates a new BuilderService.
func NewBuilderService(repo *repository.Repository, schemas SchemaValidatorSource, branch string, logger *logrus.Logger) *builderService {
	return &builderService{
		Repo:    repo,
		Schemas: schemas,
		Branch:  branch,
		Logger:  logger,
	}
}

// BuildConfig composes the document from every validated section of the
// named configuration. The document is produced even when schema
// validation fails; the result carries the failure.
func (s *builderService) BuildConfig(name, headerStyle string) (*models.BuildResult, error) {
	if err := validConfigName(name); err != nil {
		return nil, err
	}

	records, err := s.Repo.ListSections(name)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	sections := map[string]map[string]interface{}{}
	for _, rec := range records {
		if rec.Validated && rec.Payload != nil {
			sections[rec.Section] = rec.Payload
		}
	}

	var validator wizard.SchemaValidator
	if compiled, schemaErr := s.Schemas.Validator(s.Branch); schemaErr == nil {
		validator = compiled
	} else {
		s.Logger.WithError(schemaErr).Warn("Building without schema validation")
	}

	if headerStyle == "" {
		headerStyle = wizard.HeaderStyleSingleLine
	}

	composed := wizard.ComposeDocument(wizard.ComposeInput{
		ConfigName:  name,
		HeaderStyle: headerStyle,
		Branch:      s.Branch,
		Sections:    sections,
		Schema:      validator,
	})

	result := &models.BuildResult{
		Name:  name,
		YAML:  composed.YAML,
		Valid: composed.Valid,
	}
	if composed.ValidationError != nil {
		result.ValidationError = composed.ValidationError.Error()
	}

	s.Logger.WithFields(logrus.Fields{
		"config": name,
		"valid":  result.Valid,
	}).Info("Composed configuration document")
	return result, nil
}

// Download composes the document for download, optionally redacting
// credential values for shareable output.
func (s *builderService) Download(name, headerStyle string, redacted bool) (*models.BuildResult, error) {
	result, err := s.BuildConfig(name, headerStyle)
	if err != nil {
		return nil, err
	}
	if redacted {
		result.YAML = wizard.RedactSensitiveData(result.YAML)
	}
	return result, nil
}
