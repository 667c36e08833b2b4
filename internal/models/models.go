package models

import "time"

// StepState is everything a wizard page needs to render: the stored (or
// prototype) data plus navigation and progress flags.
type StepState struct {
	Name        string                 `json:"name"`
	Source      string                 `json:"source"`
	Section     string                 `json:"section"`
	Title       string                 `json:"title"`
	Prev        string                 `json:"prev,omitempty"`
	Next        string                 `json:"next,omitempty"`
	Validated   bool                   `json:"validated"`
	UserEntered bool                   `json:"user_entered"`
	Data        map[string]interface{} `json:"data"`
}

// SectionStatus is one section's progress within a named configuration.
type SectionStatus struct {
	Section     string `json:"section"`
	Validated   bool   `json:"validated"`
	UserEntered bool   `json:"user_entered"`
}

// WalkStatus summarizes a configuration's progress across all sections.
type WalkStatus struct {
	Name                   string          `json:"name"`
	Sections               []SectionStatus `json:"sections"`
	MinimumReached         bool            `json:"minimum_reached"`
	MissingSections        []string        `json:"missing_sections,omitempty"`
	NotificationsAvailable bool            `json:"notifications_available"`
}

// BuildResult is a composed configuration document with its validation
// outcome. YAML is always present, even when validation failed.
type BuildResult struct {
	Name            string `json:"name"`
	YAML            string `json:"yaml"`
	Valid           bool   `json:"valid"`
	ValidationError string `json:"validation_error,omitempty"`
}

// ValidationResult reports one provider connection check.
type ValidationResult struct {
	Provider string                 `json:"provider"`
	Valid    bool                   `json:"valid"`
	Error    string                 `json:"error,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Info describes the running service.
type Info struct {
	ServiceName     string    `json:"service_name"`
	Version         string    `json:"version"`
	Branch          string    `json:"branch"`
	LatestVersion   string    `json:"latest_version,omitempty"`
	UpdateAvailable bool      `json:"update_available"`
	UptimeSince     time.Time `json:"uptime_since"`
}
