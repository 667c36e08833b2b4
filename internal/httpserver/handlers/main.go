package handlers

import (
	"quickstart/internal/config"
	"quickstart/internal/iso"
	"quickstart/internal/schema"
	"quickstart/internal/services"
)

// Handlers holds the shared dependencies of all API handlers.
type Handlers struct {
	Wizard  services.WizardService
	Builder services.BuilderService
	Info    services.InfoService
	Lists   *iso.Lists
	Schemas *schema.Loader
	Branch  string

	Cfg *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	wizard services.WizardService,
	builder services.BuilderService,
	info services.InfoService,
	lists *iso.Lists,
	schemas *schema.Loader,
	branch string,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Wizard:  wizard,
		Builder: builder,
		Info:    info,
		Lists:   lists,
		Schemas: schemas,
		Branch:  branch,
		Cfg:     cfg,
	}
}
