package storage

import (
	"context"

	"github.com/hongminglow/catalog-api/internal/models"
)

// Document is the whole persisted state: one JSON object with three
// collections.
type Document struct {
	Users      []models.UserRecord `json:"users"`
	Categories []models.Category   `json:"categories"`
	Items      []models.Item       `json:"items"`
}

// Normalize replaces missing collections with empty ones so a fresh or
// partially written document always serializes with all three keys.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []models.UserRecord{}
	}
	if d.Categories == nil {
		d.Categories = []models.Category{}
	}
	if d.Items == nil {
		d.Items = []models.Item{}
	}
}

// Backend loads and saves the whole document. Implementations live under
// internal/storage/<driver>/.
type Backend interface {
	// Load returns the current document, or an empty normalized one when
	// nothing has been written yet.
	Load(ctx context.Context) (Document, error)
	// Save replaces the stored document.
	Save(ctx context.Context, doc Document) error
	Close() error
}

// UserStore captures persistence operations needed by the auth service.
type UserStore interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	// FindByEmail returns the record with its password hash; callers must not
	// forward it to a response.
	FindByEmail(ctx context.Context, email string) (models.UserRecord, error)
	Create(ctx context.Context, user models.NewUser) (models.User, error)
}

// DeleteResult reports the outcome of a cascading category delete.
type DeleteResult struct {
	Success           bool `json:"success"`
	DeletedItemsCount int  `json:"deletedItemsCount"`
}

type CategoryStore interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (models.Category, error)
	Create(ctx context.Context, category models.NewCategory) (models.Category, error)
	Update(ctx context.Context, id string, update models.CategoryUpdate) (models.Category, error)
	// Delete removes the category and every item that references it.
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

type ItemStore interface {
	FindAll(ctx context.Context) ([]models.Item, error)
	FindByID(ctx context.Context, id string) (models.Item, error)
	FindByCategory(ctx context.Context, categoryID string) ([]models.Item, error)
	Create(ctx context.Context, item models.NewItem) (models.Item, error)
	Update(ctx context.Context, id string, update models.ItemUpdate) (models.Item, error)
	Delete(ctx context.Context, id string) (bool, error)
}
