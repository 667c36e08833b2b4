package services

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"regexp"

	"github.com/sirupsen/logrus"

	"quickstart/internal/models"
	"quickstart/internal/repository"
	"quickstart/internal/shared"
	"quickstart/internal/validate"
	"quickstart/internal/wizard"
)

// minimumSections must all be validated before a configuration is worth
// building; the final step refuses to proceed without them.
var minimumSections = []string{"plex", "tmdb", "libraries", "settings"}

// notificationSections are the webhook delivery channels; at least one
// validated channel unlocks the webhooks step's delivery options.
var notificationSections = []string{"notifiarr", "gotify", "ntfy"}

var configNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// randomName is swappable in tests to force name collisions.
var randomName = shared.RandomConfigName

// SchemaSource supplies the prototype values pre-filled into wizard forms.
type SchemaSource interface {
	DummyPayload(branch, section string) (map[string]interface{}, error)
}

// ProviderChecker runs live connection checks against external services.
type ProviderChecker interface {
	Check(ctx context.Context, provider string, p validate.Params) (map[string]interface{}, error)
}

var _ WizardService = (*wizardService)(nil)

// wizardService handles the business logic of walking one configuration
// through the wizard.
type wizardService struct {
	Repo    *repository.Repository
	Schemas SchemaSource
	Checker ProviderChecker
	Branch  string
	Logger  *logrus.Logger
}

// NewWizardService creates a new WizardService.
func NewWizardService(repo *repository.Repository, schemas SchemaSource, checker ProviderChecker, branch string, logger *logrus.Logger) *wizardService {
	return &wizardService{
		Repo:    repo,
		Schemas: schemas,
		Checker: checker,
		Branch:  branch,
		Logger:  logger,
	}
}

// SaveStep normalizes one form submission and persists it as the step's
// section payload. The user_entered flag records whether the submission
// differs from the prototype values.
func (s *wizardService) SaveStep(name, source string, form url.Values) (*models.StepState, error) {
	step, section, err := s.resolveStep(name, source)
	if err != nil {
		return nil, err
	}

	clean := wizard.CleanFormData(form)
	payload := wizard.BuildSectionPayload(section, clean)

	rec := repository.SectionRecord{
		Name:        name,
		Section:     section,
		Validated:   shared.Booler(payload["validated"]),
		UserEntered: s.differsFromPrototype(section, payload),
		Payload:     payload,
	}
	if err := s.Repo.SaveSection(rec); err != nil {
		return nil, fmt.Errorf("failed to save %s/%s: %w", name, section, err)
	}

	s.Logger.WithFields(logrus.Fields{
		"config":  name,
		"section": section,
	}).Debug("Saved wizard step")
	return s.stepState(name, step, rec), nil
}

// RetrieveStep returns the stored state of one step, falling back to the
// prototype values when nothing was saved yet.
func (s *wizardService) RetrieveStep(name, source string) (*models.StepState, error) {
	step, section, err := s.resolveStep(name, source)
	if err != nil {
		return nil, err
	}

	rec, err := s.Repo.GetSection(name, section)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", name, section, err)
	}

	if rec.Payload == nil {
		dummy, dummyErr := s.Schemas.DummyPayload(s.Branch, section)
		if dummyErr != nil {
			s.Logger.WithError(dummyErr).Warnf("No prototype values for %s", section)
			dummy = map[string]interface{}{}
		}
		rec.Payload = dummy
		rec.Validated = false
		rec.UserEntered = false
	}

	if section == "mal" {
		if err := ensureCodeVerifier(rec.Payload); err != nil {
			return nil, err
		}
	}

	return s.stepState(name, step, rec), nil
}

// WalkStatus summarizes progress across every document section of one
// configuration.
func (s *wizardService) WalkStatus(name string) (*models.WalkStatus, error) {
	if err := validConfigName(name); err != nil {
		return nil, err
	}

	records, err := s.Repo.ListSections(name)
	if err != nil {
		return nil, err
	}

	byName := map[string]repository.SectionRecord{}
	for _, rec := range records {
		byName[rec.Section] = rec
	}

	status := &models.WalkStatus{Name: name, MinimumReached: true}
	for _, section := range wizard.SectionOrder {
		rec := byName[section]
		status.Sections = append(status.Sections, models.SectionStatus{
			Section:     section,
			Validated:   rec.Validated,
			UserEntered: rec.UserEntered,
		})
	}
	for _, section := range minimumSections {
		if !byName[section].Validated {
			status.MinimumReached = false
			status.MissingSections = append(status.MissingSections, section)
		}
	}
	for _, section := range notificationSections {
		if byName[section].Validated {
			status.NotificationsAvailable = true
			break
		}
	}
	return status, nil
}

func (s *wizardService) ListConfigs() ([]string, error) {
	return s.Repo.ListConfigNames()
}

// NewConfigName generates a random configuration name not yet in use.
func (s *wizardService) NewConfigName() (string, error) {
	existing, err := s.Repo.ListConfigNames()
	if err != nil {
		return "", err
	}
	taken := map[string]bool{}
	for _, name := range existing {
		taken[name] = true
	}

	for i := 0; i < 10; i++ {
		if name := randomName(); !taken[name] {
			return name, nil
		}
	}
	// Collisions this persistent mean the space is nearly full; suffix in
	// sequence instead.
	base := randomName()
	for i := 2; i < 100; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no unused configuration name available; delete unused configurations")
}

func (s *wizardService) ResetSection(name, source string) error {
	_, section, err := s.resolveStep(name, source)
	if err != nil {
		return err
	}
	return s.Repo.DeleteSection(name, section)
}

func (s *wizardService) ResetConfig(name string) error {
	if err := validConfigName(name); err != nil {
		return err
	}
	return s.Repo.DeleteConfig(name)
}

// ValidateProvider runs the provider's connection check and, on success,
// marks the stored section validated. OAuth providers return tokens that
// are merged into the section's authorization block.
func (s *wizardService) ValidateProvider(ctx context.Context, name, provider string, params map[string]string) (*models.ValidationResult, error) {
	if err := validConfigName(name); err != nil {
		return nil, err
	}

	result := &models.ValidationResult{Provider: provider}
	data, err := s.Checker.Check(ctx, provider, validate.Params(params))
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.Valid = true
	result.Data = data

	rec, err := s.Repo.GetSection(name, provider)
	if err != nil {
		return nil, err
	}
	if rec.Payload == nil {
		rec.Payload = map[string]interface{}{provider: map[string]interface{}{}}
	}
	rec.Validated = true
	rec.Payload["validated"] = true

	if len(data) > 0 {
		section, ok := rec.Payload[provider].(map[string]interface{})
		if !ok {
			section = map[string]interface{}{}
			rec.Payload[provider] = section
		}
		auth, ok := section["authorization"].(map[string]interface{})
		if !ok {
			auth = map[string]interface{}{}
			section["authorization"] = auth
		}
		for k, v := range data {
			auth[k] = v
		}
	}

	if err := s.Repo.SaveSection(rec); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *wizardService) resolveStep(name, source string) (wizard.Step, string, error) {
	if err := validConfigName(name); err != nil {
		return wizard.Step{}, "", err
	}
	stem, section := wizard.ExtractNames(source)
	step, ok := wizard.StepByStem(stem)
	if !ok {
		return wizard.Step{}, "", fmt.Errorf("%w: %s", ErrUnknownStep, stem)
	}
	return step, section, nil
}

// differsFromPrototype reports whether a submission carries anything other
// than the pre-filled prototype values.
func (s *wizardService) differsFromPrototype(section string, payload map[string]interface{}) bool {
	dummy, err := s.Schemas.DummyPayload(s.Branch, section)
	if err != nil {
		return true
	}
	return !reflect.DeepEqual(payload[section], dummy[section])
}

func (s *wizardService) stepState(name string, step wizard.Step, rec repository.SectionRecord) *models.StepState {
	return &models.StepState{
		Name:        name,
		Source:      step.Stem,
		Section:     rec.Section,
		Title:       step.Title,
		Prev:        step.Prev,
		Next:        step.Next,
		Validated:   rec.Validated,
		UserEntered: rec.UserEntered,
		Data:        rec.Payload,
	}
}

// ensureCodeVerifier guarantees the MyAnimeList payload carries a PKCE
// code verifier before the authorization URL is built client-side.
func ensureCodeVerifier(payload map[string]interface{}) error {
	section, ok := payload["mal"].(map[string]interface{})
	if !ok {
		section = map[string]interface{}{}
		payload["mal"] = section
	}
	auth, ok := section["authorization"].(map[string]interface{})
	if !ok {
		auth = map[string]interface{}{}
		section["authorization"] = auth
	}
	if v, ok := auth["code_verifier"].(string); ok && v != "" {
		return nil
	}
	verifier, err := shared.GenerateCodeVerifier()
	if err != nil {
		return err
	}
	auth["code_verifier"] = verifier
	return nil
}

func validConfigName(name string) error {
	if !configNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
