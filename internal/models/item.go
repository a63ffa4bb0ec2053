package models

import "time"

// Item belongs to exactly one category through CategoryID.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	CategoryID  string     `json:"categoryId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type NewItem struct {
	Name        string
	Description string
	Price       float64
	CategoryID  string
}

// ItemUpdate lists the fields to change; nil leaves a field untouched.
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *string
}

// Apply merges the present fields into it.
func (u ItemUpdate) Apply(it *Item) {
	if u.Name != nil {
		it.Name = *u.Name
	}
	if u.Description != nil {
		it.Description = *u.Description
	}
	if u.Price != nil {
		it.Price = *u.Price
	}
	if u.CategoryID != nil {
		it.CategoryID = *u.CategoryID
	}
}
