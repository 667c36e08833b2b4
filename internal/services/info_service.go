package services

import (
	"time"

	"quickstart/internal/models"
	"quickstart/internal/version"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Build     version.Info
	StartTime time.Time
	Checker   *version.Checker
}

// NewInfoService creates a new InfoService. The checker may be nil when
// update checks are disabled.
func NewInfoService(build version.Info, startTime time.Time, checker *version.Checker) *infoService {
	return &infoService{
		Build:     build,
		StartTime: startTime,
		Checker:   checker,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	info := models.Info{
		ServiceName: "Kometa Quickstart API",
		Version:     s.Build.Version,
		Branch:      s.Build.Branch,
		UptimeSince: s.StartTime,
	}
	if s.Checker != nil {
		info.LatestVersion = s.Checker.Latest()
		info.UpdateAvailable = s.Checker.UpdateAvailable()
	}
	return info
}
