package types

import "time"

// CategoryRequiredQuestionID is the catalog question whose answers must be
// tagged with a category.
const CategoryRequiredQuestionID int64 = 1

type Question struct {
	ID        int64     `db:"id" json:"id"`
	Prompt    string    `db:"prompt" json:"prompt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
