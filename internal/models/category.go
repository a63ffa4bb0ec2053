package models

import "time"

// Category groups items. Deleting a category deletes its items.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ShortTitle  string     `json:"shortTitle,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type NewCategory struct {
	Name        string
	Description string
	ShortTitle  string
}

// CategoryUpdate lists the fields to change; nil leaves a field untouched.
type CategoryUpdate struct {
	Name        *string
	Description *string
	ShortTitle  *string
}

// Empty reports whether the update carries no field at all.
func (u CategoryUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.ShortTitle == nil
}

// Apply merges the present fields into c.
func (u CategoryUpdate) Apply(c *Category) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.ShortTitle != nil {
		c.ShortTitle = *u.ShortTitle
	}
}
