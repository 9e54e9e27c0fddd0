package seed

import (
	"context"
	"fmt"
	"io"

	"comunidad/pkg/types"
)

type QuestionRepository interface {
	UpsertQuestion(ctx context.Context, question *types.Question) error
	SyncSequence(ctx context.Context) error
}

// Question ids are fixed so clients and the category rule can refer to them.
var questions = []types.Question{
	{ID: types.CategoryRequiredQuestionID, Prompt: "¿Cuál crees que es la mayor necesidad en tu comunidad?"},
	{ID: 2, Prompt: "¿Qué acción concreta propondrías para mejorar esa situación?"},
}

func Questions() []types.Question {
	out := make([]types.Question, len(questions))
	copy(out, questions)
	return out
}

// SeedQuestions upserts the question catalog by id and then moves the id
// sequence past the highest seeded id.
func SeedQuestions(ctx context.Context, repo QuestionRepository, out io.Writer) error {
	fmt.Fprintln(out, "Starting question sync...")

	for _, q := range questions {
		fmt.Fprintf(out, "  Upserting question %d: %s\n", q.ID, q.Prompt)
		if err := repo.UpsertQuestion(ctx, &q); err != nil {
			return fmt.Errorf("failed to upsert question %d: %w", q.ID, err)
		}
	}

	if err := repo.SyncSequence(ctx); err != nil {
		return fmt.Errorf("failed to sync question id sequence: %w", err)
	}

	fmt.Fprintf(out, "\nSync complete: %d questions upserted\n", len(questions))
	return nil
}
