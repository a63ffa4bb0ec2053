package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hongminglow/catalog-api/internal/models"
)

// CategoryRequest is the body of POST and PUT /api/categories. Pointer fields
// distinguish an absent key from an empty one.
type CategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ShortTitle  *string `json:"shortTitle,omitempty"`
}

// Update converts the request into a partial update. Blank strings count as
// absent, matching the create path where a blank name is rejected.
func (r CategoryRequest) Update() models.CategoryUpdate {
	return models.CategoryUpdate{
		Name:        nonBlank(r.Name),
		Description: nonBlank(r.Description),
		ShortTitle:  nonBlank(r.ShortTitle),
	}
}

type CategoryResponse struct {
	Category models.Category `json:"category"`
}

type CategoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

type DeleteCategoryResponse struct {
	Message           string `json:"message"`
	DeletedItemsCount int    `json:"deletedItemsCount"`
}

// ItemRequest is the body of POST and PUT /api/items.
type ItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *Price  `json:"price,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

// Update converts the request into a partial update. A blank categoryId is
// ignored instead of detaching the item from its category.
func (r ItemRequest) Update() models.ItemUpdate {
	return models.ItemUpdate{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.Float(),
		CategoryID:  nonBlank(r.CategoryID),
	}
}

// Price accepts a JSON number or a numeric string, since HTML forms submit
// prices as text. An empty string decodes to zero.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*p = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("price must be a number: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("price must be a number: %q", raw)
	}
	*p = Price(v)
	return nil
}

// Float returns nil for a nil receiver.
func (p *Price) Float() *float64 {
	if p == nil {
		return nil
	}
	v := float64(*p)
	return &v
}

type ItemResponse struct {
	Item models.Item `json:"item"`
}

type ItemsResponse struct {
	Items []models.Item `json:"items"`
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
