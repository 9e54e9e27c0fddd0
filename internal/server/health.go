package server

import (
	"net/http"
	"time"
)

type healthResponse struct {
	OK  bool       `json:"ok"`
	Now *time.Time `json:"now"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	now, err := s.health.Now(ctx)
	if err != nil {
		s.requestLogger(r).WithError(err).Warn("health check failed")
		s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{OK: false})
		return
	}

	s.writeJSON(w, http.StatusOK, healthResponse{OK: true, Now: &now})
}
