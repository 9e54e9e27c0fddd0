package server

import (
	"net/http"

	"comunidad/pkg/types"
)

type responseListQuery struct {
	QuestionID int64 `form:"questionId"`
}

func (s *Service) handleListResponses(w http.ResponseWriter, r *http.Request) {
	var query responseListQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		s.requestLogger(r).WithError(err).Debug("ignoring malformed responses query")
		query.QuestionID = 0
	}

	filter := types.ResponseFilter{Limit: types.MaxResponses}
	if query.QuestionID > 0 {
		filter.QuestionID = &query.QuestionID
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	responses, err := s.reports.Responses(ctx, filter)
	if err != nil {
		s.internalServerError(w, r, err, "failed to list responses")
		return
	}

	if responses == nil {
		responses = []*types.Response{}
	}

	s.writeJSON(w, http.StatusOK, responses)
}

func (s *Service) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	stats, err := s.reports.CategoryStats(ctx)
	if err != nil {
		s.internalServerError(w, r, err, "failed to compute category stats")
		return
	}

	if stats == nil {
		stats = []*types.CategoryStat{}
	}

	s.writeJSON(w, http.StatusOK, stats)
}
