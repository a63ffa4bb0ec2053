package cache

import (
	"context"
	"slices"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/models/dto"
)

// CreateCategory creates on the server, then adds the result to the mirror.
func (s *Store) CreateCategory(ctx context.Context, req dto.CategoryRequest) (models.Category, error) {
	category, err := s.api.CreateCategory(ctx, req)
	if err != nil {
		return models.Category{}, err
	}
	s.AddCategory(category)
	return category, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) (models.Category, error) {
	category, err := s.api.UpdateCategory(ctx, id, req)
	if err != nil {
		return models.Category{}, err
	}
	s.ReplaceCategory(category)
	return category, nil
}

// DeleteCategory deletes on the server and drops the category and its items
// locally. It returns the server's deleted item count.
func (s *Store) DeleteCategory(ctx context.Context, id string) (int, error) {
	deleted, err := s.api.DeleteCategory(ctx, id)
	if err != nil {
		return 0, err
	}
	s.RemoveCategory(id)
	return deleted, nil
}

func (s *Store) CreateItem(ctx context.Context, req dto.ItemRequest) (models.Item, error) {
	item, err := s.api.CreateItem(ctx, req)
	if err != nil {
		return models.Item{}, err
	}
	s.AddItem(item)
	return item, nil
}

func (s *Store) UpdateItem(ctx context.Context, id string, req dto.ItemRequest) (models.Item, error) {
	item, err := s.api.UpdateItem(ctx, id, req)
	if err != nil {
		return models.Item{}, err
	}
	s.ReplaceItem(item)
	return item, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := s.api.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.RemoveItem(id)
	return nil
}

func (s *Store) AddCategory(category models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, category)
	s.catGen++
}

// ReplaceCategory swaps the mirrored category with the same id.
func (s *Store) ReplaceCategory(category models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories[i] = category
		}
	}
	s.catGen++
}

// RemoveCategory drops the category and every item that belongs to it, the
// same cascade the server applies.
func (s *Store) RemoveCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = slices.DeleteFunc(s.categories, func(c models.Category) bool { return c.ID == id })
	s.items = slices.DeleteFunc(s.items, func(it models.Item) bool { return it.CategoryID == id })
	s.catGen++
	s.itemGen++
}

func (s *Store) AddItem(item models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.itemGen++
}

func (s *Store) ReplaceItem(item models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
		}
	}
	s.itemGen++
}

func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.DeleteFunc(s.items, func(it models.Item) bool { return it.ID == id })
	s.itemGen++
}
