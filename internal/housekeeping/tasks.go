package housekeeping

import (
	"quickstart/internal/logging"
)

// runRefresh re-mirrors the schema files for every tracked branch. A failed
// branch keeps its previous mirror; the next cycle retries.
func (s *Service) runRefresh() {
	for _, branch := range s.Deps.Branches {
		if err := s.Deps.Schemas.EnsureCurrent(branch); err != nil {
			logging.Log.Warnf("Schema refresh failed for branch %s: %v", branch, err)
			continue
		}
		logging.Log.Debugf("Schema mirror refreshed for branch %s.", branch)
	}
}
