package types

import "time"

type Participant struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Age          *int      `db:"age" json:"age"`
	Country      *string   `db:"country" json:"country"`
	City         *string   `db:"city" json:"city"`
	Neighborhood *string   `db:"neighborhood" json:"neighborhood"`
	Phone        *string   `db:"phone" json:"phone"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// RegisterParticipantRequest is the body of POST /participants/register.
type RegisterParticipantRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Age          *int    `json:"age" validate:"omitempty,min=0,max=120"`
	Country      *string `json:"country"`
	City         *string `json:"city"`
	Neighborhood *string `json:"neighborhood"`
	Phone        *string `json:"phone"`
}

// Participant maps the request onto a row. Optional fields left out of the
// request stay nil so a re-registration clears them.
func (r *RegisterParticipantRequest) Participant() *Participant {
	return &Participant{
		Name:         r.Name,
		Email:        r.Email,
		Age:          r.Age,
		Country:      r.Country,
		City:         r.City,
		Neighborhood: r.Neighborhood,
		Phone:        r.Phone,
	}
}
