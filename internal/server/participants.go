package server

import (
	"net/http"

	"comunidad/pkg/types"
)

func (s *Service) handleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterParticipantRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	participant, err := s.participants.UpsertParticipant(ctx, req.Participant())
	if err != nil {
		s.internalServerError(w, r, err, "failed to register participant")
		return
	}

	participantsRegisteredTotal.Inc()
	s.requestLogger(r).WithField("participant_id", participant.ID).Info("participant registered")

	s.writeJSON(w, http.StatusCreated, participant)
}
