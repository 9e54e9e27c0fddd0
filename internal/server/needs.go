package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"comunidad/pkg/types"

	"github.com/sirupsen/logrus"
)

type needListQuery struct {
	Limit int `form:"limit"`
}

func (s *Service) handleCreateNeed(w http.ResponseWriter, r *http.Request) {
	var req types.CreateNeedRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	participant, err := s.participants.ParticipantByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, types.ErrParticipantNotFound) {
			s.writeError(w, http.StatusNotFound, msgParticipantNotFound)
			return
		}
		s.internalServerError(w, r, err, "failed to look up participant")
		return
	}

	questionID := *req.QuestionID

	categoryID, err := s.resolveCategory(ctx, questionID, req.CategorySlug)
	switch {
	case errors.Is(err, types.ErrCategoryRequired):
		s.writeError(w, http.StatusBadRequest, msgCategoryRequired)
		return
	case errors.Is(err, types.ErrInvalidCategory):
		s.writeError(w, http.StatusBadRequest, msgInvalidCategory)
		return
	case err != nil:
		s.internalServerError(w, r, err, "failed to resolve category")
		return
	}

	need, err := s.needs.CreateNeed(ctx, &types.Need{
		ParticipantID: participant.ID,
		QuestionID:    questionID,
		CategoryID:    categoryID,
		Description:   req.Description,
	})
	if err != nil {
		s.internalServerError(w, r, err, "failed to create need")
		return
	}

	needsCreatedTotal.WithLabelValues(strconv.FormatInt(questionID, 10)).Inc()
	s.requestLogger(r).WithFields(logrus.Fields{
		"need_id":        need.ID,
		"participant_id": participant.ID,
		"question_id":    questionID,
	}).Info("need created")

	s.writeJSON(w, http.StatusCreated, need)
}

// resolveCategory maps the submitted slug to a category id. Only the
// category question requires a known slug; for every other question an
// unknown slug leaves the need uncategorized.
func (s *Service) resolveCategory(ctx context.Context, questionID int64, slug *string) (*int64, error) {
	required := questionID == types.CategoryRequiredQuestionID

	if slug == nil {
		if required {
			categoryResolutionTotal.WithLabelValues(resolutionMissing).Inc()
			return nil, types.ErrCategoryRequired
		}
		categoryResolutionTotal.WithLabelValues(resolutionNone).Inc()
		return nil, nil
	}

	category, err := s.categories.CategoryBySlug(ctx, *slug)
	if err != nil {
		if !errors.Is(err, types.ErrCategoryNotFound) {
			return nil, err
		}
		if required {
			categoryResolutionTotal.WithLabelValues(resolutionRejected).Inc()
			return nil, types.ErrInvalidCategory
		}
		categoryResolutionTotal.WithLabelValues(resolutionIgnored).Inc()
		return nil, nil
	}

	categoryResolutionTotal.WithLabelValues(resolutionBound).Inc()
	return &category.ID, nil
}

func (s *Service) handleListNeeds(w http.ResponseWriter, r *http.Request) {
	var query needListQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		s.requestLogger(r).WithError(err).Debug("ignoring malformed needs query")
		query.Limit = 0
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	needs, err := s.needs.LatestNeeds(ctx, types.ClampNeedsLimit(query.Limit))
	if err != nil {
		s.internalServerError(w, r, err, "failed to list needs")
		return
	}

	if needs == nil {
		needs = []*types.Need{}
	}

	s.writeJSON(w, http.StatusOK, needs)
}
