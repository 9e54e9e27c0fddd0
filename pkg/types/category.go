package types

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// CategoryStat is one row of the per-category need counts.
type CategoryStat struct {
	Name  string `db:"name" json:"name"`
	Slug  string `db:"slug" json:"slug"`
	Count int    `db:"count" json:"count"`
}
