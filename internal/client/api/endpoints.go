package api

import (
	"context"
	"net/http"

	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/models/dto"
)

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/auth/register", body: req}, &out); err != nil {
		return dto.AuthResponse{}, err
	}
	return out, c.tokens.SetToken(out.Token)
}

// Login exchanges credentials for a token and keeps it.
func (c *Client) Login(ctx context.Context, email, password string) (dto.AuthResponse, error) {
	var out dto.AuthResponse
	body := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/auth/login", body: body}, &out); err != nil {
		return dto.AuthResponse{}, err
	}
	return out, c.tokens.SetToken(out.Token)
}

// Logout forgets the token. The server keeps no session state.
func (c *Client) Logout() error {
	return c.tokens.ClearToken()
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var out dto.ProfileResponse
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/auth/profile"}, &out)
	return out.User, err
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out dto.CategoriesResponse
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/categories"}, &out)
	return out.Categories, err
}

func (c *Client) Category(ctx context.Context, id string) (models.Category, error) {
	var out dto.CategoryResponse
	err := c.do(ctx, call{
		method:     http.MethodGet,
		path:       "/api/categories/{id}",
		pathParams: map[string]string{"id": id},
	}, &out)
	return out.Category, err
}

func (c *Client) CreateCategory(ctx context.Context, req dto.CategoryRequest) (models.Category, error) {
	var out dto.CategoryResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/categories", body: req}, &out)
	return out.Category, err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) (models.Category, error) {
	var out dto.CategoryResponse
	err := c.do(ctx, call{
		method:     http.MethodPut,
		path:       "/api/categories/{id}",
		pathParams: map[string]string{"id": id},
		body:       req,
	}, &out)
	return out.Category, err
}

// DeleteCategory returns how many items the server removed with it.
func (c *Client) DeleteCategory(ctx context.Context, id string) (int, error) {
	var out dto.DeleteCategoryResponse
	err := c.do(ctx, call{
		method:     http.MethodDelete,
		path:       "/api/categories/{id}",
		pathParams: map[string]string{"id": id},
	}, &out)
	return out.DeletedItemsCount, err
}

// Items lists items, restricted to one category when categoryID is set.
func (c *Client) Items(ctx context.Context, categoryID string) ([]models.Item, error) {
	var out dto.ItemsResponse
	in := call{method: http.MethodGet, path: "/api/items"}
	if categoryID != "" {
		in.query = map[string]string{"categoryId": categoryID}
	}
	err := c.do(ctx, in, &out)
	return out.Items, err
}

func (c *Client) Item(ctx context.Context, id string) (models.Item, error) {
	var out dto.ItemResponse
	err := c.do(ctx, call{
		method:     http.MethodGet,
		path:       "/api/items/{id}",
		pathParams: map[string]string{"id": id},
	}, &out)
	return out.Item, err
}

func (c *Client) CreateItem(ctx context.Context, req dto.ItemRequest) (models.Item, error) {
	var out dto.ItemResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/items", body: req}, &out)
	return out.Item, err
}

func (c *Client) UpdateItem(ctx context.Context, id string, req dto.ItemRequest) (models.Item, error) {
	var out dto.ItemResponse
	err := c.do(ctx, call{
		method:     http.MethodPut,
		path:       "/api/items/{id}",
		pathParams: map[string]string{"id": id},
		body:       req,
	}, &out)
	return out.Item, err
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method:     http.MethodDelete,
		path:       "/api/items/{id}",
		pathParams: map[string]string{"id": id},
	}, nil)
}
