package types

import (
	"time"
)

const (
	DefaultNeedsLimit uint64 = 50
	MaxNeedsLimit     uint64 = 200
	MaxResponses      uint64 = 200
)

type Need struct {
	ID            int64     `db:"id" json:"id"`
	ParticipantID int64     `db:"participant_id" json:"participantId"`
	QuestionID    int64     `db:"question_id" json:"questionId"`
	CategoryID    *int64    `db:"category_id" json:"categoryId"`
	Description   string    `db:"description" json:"description"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// CreateNeedRequest is the body of POST /needs.
type CreateNeedRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	QuestionID   *int64  `json:"questionId" validate:"required"`
	CategorySlug *string `json:"categorySlug" validate:"omitempty,min=1"`
	Description  string  `json:"description" validate:"required,min=1,max=1000"`
}

// Response is a need joined with the display fields of its participant,
// question and (optional) category.
type Response struct {
	ID               int64     `db:"id" json:"id"`
	QuestionID       int64     `db:"question_id" json:"question_id"`
	Description      string    `db:"description" json:"description"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	Question         string    `db:"question" json:"question"`
	ParticipantName  string    `db:"participant_name" json:"participant_name"`
	ParticipantEmail string    `db:"participant_email" json:"participant_email"`
	CategoryName     *string   `db:"category_name" json:"category_name"`
	CategorySlug     *string   `db:"category_slug" json:"category_slug"`
}

type ResponseFilter struct {
	// QuestionID restricts the result to one question when non-nil.
	QuestionID *int64
	Limit      uint64
}

// ClampNeedsLimit applies the default and the hard ceiling to a requested
// page size.
func ClampNeedsLimit(requested int) uint64 {
	if requested <= 0 {
		return DefaultNeedsLimit
	}
	if uint64(requested) > MaxNeedsLimit {
		return MaxNeedsLimit
	}
	return uint64(requested)
}
