package server

import (
	"net/http"

	"comunidad/pkg/types"
)

func (s *Service) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	categories, err := s.categories.Categories(ctx)
	if err != nil {
		s.internalServerError(w, r, err, "failed to list categories")
		return
	}

	if categories == nil {
		categories = []*types.Category{}
	}

	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Service) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	questions, err := s.questions.Questions(ctx)
	if err != nil {
		s.internalServerError(w, r, err, "failed to list questions")
		return
	}

	if questions == nil {
		questions = []*types.Question{}
	}

	s.writeJSON(w, http.StatusOK, questions)
}
