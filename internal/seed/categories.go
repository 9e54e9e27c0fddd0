package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"comunidad/pkg/types"
)

type CategoryRepository interface {
	Categories(ctx context.Context) ([]*types.Category, error)
	UpsertCategory(ctx context.Context, category *types.Category) error
	DeleteCategory(ctx context.Context, slug string) error
}

// categories is the source of truth for the category catalog. Slugs are
// the stable key: renaming an entry updates the row in place, changing a
// slug creates a new category.
//
// To add a category: add it here and run `comunidad seed`
// To remove one: remove it here and run `comunidad seed --prune`
var categories = []types.Category{
	{Name: "Salud", Slug: "salud"},
	{Name: "Educación", Slug: "educacion"},
	{Name: "Empleo", Slug: "empleo"},
	{Name: "Seguridad", Slug: "seguridad"},
	{Name: "Vivienda", Slug: "vivienda"},
	{Name: "Servicios Públicos", Slug: "servicios-publicos"},
	{Name: "Espacio Público / Medio Ambiente", Slug: "medio-ambiente"},
	{Name: "Movilidad / Transporte", Slug: "movilidad"},
	{Name: "Alimentación", Slug: "alimentacion"},
	{Name: "Cultura / Deporte", Slug: "cultura-deporte"},
}

// Categories returns a copy of the seeded category catalog.
func Categories() []types.Category {
	out := make([]types.Category, len(categories))
	copy(out, categories)
	return out
}

// SeedCategories syncs the database with the catalog above:
// - Inserts categories that don't exist yet
// - Renames existing ones whose name changed
// - With prune, deletes categories missing from the catalog unless needs
//   still reference them
func SeedCategories(ctx context.Context, repo CategoryRepository, prune bool, out io.Writer) error {
	fmt.Fprintln(out, "Starting category sync...")
	fmt.Fprintf(out, "  Seed file contains %d categories\n", len(categories))

	seedSlugs := make(map[string]bool, len(categories))
	for _, cat := range categories {
		seedSlugs[cat.Slug] = true
	}

	existing, err := repo.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch existing categories: %w", err)
	}
	fmt.Fprintf(out, "  Database contains %d categories\n", len(existing))

	deletedCount, keptCount := 0, 0
	if prune {
		for _, existingCat := range existing {
			if seedSlugs[existingCat.Slug] {
				continue
			}

			err := repo.DeleteCategory(ctx, existingCat.Slug)
			switch {
			case errors.Is(err, types.ErrCategoryInUse):
				fmt.Fprintf(out, "  Keeping category still referenced by needs: %s (slug: %s)\n", existingCat.Name, existingCat.Slug)
				keptCount++
			case errors.Is(err, types.ErrCategoryNotFound):
				// removed concurrently
			case err != nil:
				return fmt.Errorf("failed to delete category %s: %w", existingCat.Slug, err)
			default:
				fmt.Fprintf(out, "  Deleted category: %s (slug: %s)\n", existingCat.Name, existingCat.Slug)
				deletedCount++
			}
		}
	}

	upsertedCount := 0
	for _, cat := range categories {
		fmt.Fprintf(out, "  Upserting category: %s (slug: %s)\n", cat.Name, cat.Slug)
		if err := repo.UpsertCategory(ctx, &cat); err != nil {
			return fmt.Errorf("failed to upsert category %s: %w", cat.Slug, err)
		}
		upsertedCount++
	}

	fmt.Fprintf(out, "\nSync complete: %d upserted, %d deleted, %d kept\n", upsertedCount, deletedCount, keptCount)
	return nil
}
