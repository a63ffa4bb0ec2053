package docstore

import (
	"context"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/storage"
)

// Ensure ItemRepository satisfies the storage.ItemStore interface at compile time.
var _ storage.ItemStore = (*ItemRepository)(nil)

type ItemRepository struct {
	store *Store
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	var out []models.Item
	err := r.store.view(ctx, func(doc *storage.Document) error {
		out = doc.Items
		return nil
	})
	return out, err
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (models.Item, error) {
	var out models.Item
	err := r.store.view(ctx, func(doc *storage.Document) error {
		idx := itemIndex(doc, id)
		if idx < 0 {
			return storage.ErrNotFound
		}
		out = doc.Items[idx]
		return nil
	})
	return out, err
}

func (r *ItemRepository) FindByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	out := []models.Item{}
	err := r.store.view(ctx, func(doc *storage.Document) error {
		for _, it := range doc.Items {
			if it.CategoryID == categoryID {
				out = append(out, it)
			}
		}
		return nil
	})
	return out, err
}

// Create stores the item when its category exists; otherwise it returns
// storage.ErrCategoryNotFound and writes nothing.
func (r *ItemRepository) Create(ctx context.Context, item models.NewItem) (models.Item, error) {
	var out models.Item
	err := r.store.update(ctx, func(doc *storage.Document) error {
		if categoryIndex(doc, item.CategoryID) < 0 {
			return storage.ErrCategoryNotFound
		}
		out = models.Item{
			ID:          r.store.newID(),
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			CategoryID:  item.CategoryID,
			CreatedAt:   r.store.timestamp(),
		}
		doc.Items = append(doc.Items, out)
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}
	return out, nil
}

// Update checks a new categoryId first, then looks the item up. The category
// check wins when both are missing.
func (r *ItemRepository) Update(ctx context.Context, id string, update models.ItemUpdate) (models.Item, error) {
	var out models.Item
	err := r.store.update(ctx, func(doc *storage.Document) error {
		if update.CategoryID != nil && categoryIndex(doc, *update.CategoryID) < 0 {
			return storage.ErrCategoryNotFound
		}
		idx := itemIndex(doc, id)
		if idx < 0 {
			return storage.ErrNotFound
		}
		it := &doc.Items[idx]
		update.Apply(it)
		now := r.store.timestamp()
		it.UpdatedAt = &now
		out = *it
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}
	return out, nil
}

// Delete reports whether an item was removed.
func (r *ItemRepository) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := r.store.update(ctx, func(doc *storage.Document) error {
		idx := itemIndex(doc, id)
		if idx < 0 {
			return nil
		}
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
		removed = true
		return nil
	})
	return removed, err
}

func itemIndex(doc *storage.Document, id string) int {
	for i, it := range doc.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
