package docstore

import (
	"context"
	"strings"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/storage"
)

// Ensure UserRepository satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	store *Store
}

// FindAll returns every user without password hashes.
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := r.store.view(ctx, func(doc *storage.Document) error {
		out = make([]models.User, 0, len(doc.Users))
		for _, u := range doc.Users {
			out = append(out, u.User)
		}
		return nil
	})
	return out, err
}

// FindByID returns the user without its password hash.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var out models.User
	err := r.store.view(ctx, func(doc *storage.Document) error {
		rec, ok := findUser(doc, func(u models.UserRecord) bool { return u.ID == id })
		if !ok {
			return storage.ErrNotFound
		}
		out = rec.User
		return nil
	})
	return out, err
}

// FindByEmail matches the email exactly as stored.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	var out models.UserRecord
	err := r.store.view(ctx, func(doc *storage.Document) error {
		rec, ok := findUser(doc, func(u models.UserRecord) bool { return u.Email == email })
		if !ok {
			return storage.ErrNotFound
		}
		out = rec
		return nil
	})
	return out, err
}

// Create stores a new user after checking that the email is unused.
func (r *UserRepository) Create(ctx context.Context, user models.NewUser) (models.User, error) {
	var out models.User
	err := r.store.update(ctx, func(doc *storage.Document) error {
		email := strings.TrimSpace(user.Email)
		if _, exists := findUser(doc, func(u models.UserRecord) bool { return u.Email == email }); exists {
			return storage.ErrEmailExists
		}
		rec := models.UserRecord{
			User: models.User{
				ID:        r.store.newID(),
				Email:     email,
				Name:      strings.TrimSpace(user.Name),
				CreatedAt: r.store.timestamp(),
			},
			Password: user.PasswordHash,
		}
		doc.Users = append(doc.Users, rec)
		out = rec.User
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return out, nil
}

func findUser(doc *storage.Document, match func(models.UserRecord) bool) (models.UserRecord, bool) {
	for _, u := range doc.Users {
		if match(u) {
			return u, true
		}
	}
	return models.UserRecord{}, false
}
