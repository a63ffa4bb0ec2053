package docstore

import (
	"context"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/storage"
)

// Ensure CategoryRepository satisfies the storage.CategoryStore interface at compile time.
var _ storage.CategoryStore = (*CategoryRepository)(nil)

type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := r.store.view(ctx, func(doc *storage.Document) error {
		out = doc.Categories
		return nil
	})
	return out, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (models.Category, error) {
	var out models.Category
	err := r.store.view(ctx, func(doc *storage.Document) error {
		idx := categoryIndex(doc, id)
		if idx < 0 {
			return storage.ErrNotFound
		}
		out = doc.Categories[idx]
		return nil
	})
	return out, err
}

func (r *CategoryRepository) Create(ctx context.Context, category models.NewCategory) (models.Category, error) {
	var out models.Category
	err := r.store.update(ctx, func(doc *storage.Document) error {
		out = models.Category{
			ID:          r.store.newID(),
			Name:        category.Name,
			Description: category.Description,
			ShortTitle:  category.ShortTitle,
			CreatedAt:   r.store.timestamp(),
		}
		doc.Categories = append(doc.Categories, out)
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return out, nil
}

// Update merges the present fields and stamps updatedAt. It returns
// storage.ErrNotFound when no category has the id.
func (r *CategoryRepository) Update(ctx context.Context, id string, update models.CategoryUpdate) (models.Category, error) {
	var out models.Category
	err := r.store.update(ctx, func(doc *storage.Document) error {
		idx := categoryIndex(doc, id)
		if idx < 0 {
			return storage.ErrNotFound
		}
		c := &doc.Categories[idx]
		update.Apply(c)
		now := r.store.timestamp()
		c.UpdatedAt = &now
		out = *c
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return out, nil
}

// Delete removes every item referencing id, then the category itself, in a
// single write. Success is false when the category did not exist.
func (r *CategoryRepository) Delete(ctx context.Context, id string) (storage.DeleteResult, error) {
	var res storage.DeleteResult
	err := r.store.update(ctx, func(doc *storage.Document) error {
		items := doc.Items[:0]
		for _, it := range doc.Items {
			if it.CategoryID == id {
				res.DeletedItemsCount++
				continue
			}
			items = append(items, it)
		}
		doc.Items = items

		categories := doc.Categories[:0]
		for _, c := range doc.Categories {
			if c.ID == id {
				res.Success = true
				continue
			}
			categories = append(categories, c)
		}
		doc.Categories = categories
		return nil
	})
	if err != nil {
		return storage.DeleteResult{}, err
	}
	return res, nil
}

func categoryIndex(doc *storage.Document, id string) int {
	for i, c := range doc.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
