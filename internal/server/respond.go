package server

import (
	"encoding/json"
	"net/http"

	"comunidad/internal/validation"
)

// maxBodyBytes matches the default body limit of common JSON middleware.
const maxBodyBytes = 100 << 10

const (
	msgInternalError       = "internal server error"
	msgNotFound            = "not found"
	msgMethodNotAllowed    = "method not allowed"
	msgParticipantNotFound = "Participant not found. Register first."
	msgCategoryRequired    = "categorySlug is required for question 1"
	msgInvalidCategory     = "Invalid categorySlug"
)

type errorResponse struct {
	Error any `json:"error"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode JSON response")
	}
}

func (s *Service) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// internalServerError logs the cause and answers with a generic message.
func (s *Service) internalServerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	s.requestLogger(r).WithError(err).Error(msg)
	s.writeError(w, http.StatusInternalServerError, msgInternalError)
}

// decodeRequest decodes and validates a JSON body into dst. On failure it
// writes the 400 payload and returns false.
func (s *Service) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	errs := validation.New()

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if errs.Decode(body, dst) {
		errs.Struct(dst)
	}

	if errs.Empty() {
		return true
	}

	s.requestLogger(r).WithField("field_errors", errs.FieldErrors).Info("validation errors in request body")
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errs})
	return false
}

func (s *Service) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusNotFound, msgNotFound)
}

func (s *Service) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
