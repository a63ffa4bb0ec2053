package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/catalog-api/internal/http/respond"
	"github.com/hongminglow/catalog-api/internal/models"
	"github.com/hongminglow/catalog-api/internal/models/dto"
	"github.com/hongminglow/catalog-api/internal/storage"
)

const itemNotFound = "Item not found"

// ItemHandler serves /api/items. Reads are public; writes need a token.
type ItemHandler struct {
	store storage.ItemStore
}

func NewItemHandler(store storage.ItemStore) *ItemHandler {
	return &ItemHandler{store: store}
}

func (h *ItemHandler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.With(requireAuth).Post("/", h.handleCreate)
		r.With(requireAuth).Put("/{id}", h.handleUpdate)
		r.With(requireAuth).Delete("/{id}", h.handleDelete)
	})
}

// handleList filters by ?categoryId= when present.
func (h *ItemHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.Item
		err   error
	)
	if categoryID := strings.TrimSpace(r.URL.Query().Get("categoryId")); categoryID != "" {
		items, err = h.store.FindByCategory(r.Context(), categoryID)
	} else {
		items, err = h.store.FindAll(r.Context())
	}
	if err != nil {
		respondStoreError(w, r, err, itemNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ItemsResponse{Items: items})
}

func (h *ItemHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, err, itemNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ItemResponse{Item: item})
}

func (h *ItemHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.ItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name, description, categoryID := deref(req.Name), deref(req.Description), deref(req.CategoryID)
	price := req.Price.Float()
	if name == "" || description == "" || categoryID == "" || price == nil || *price == 0 {
		respond.Error(w, http.StatusBadRequest, "Name, description, price and categoryId are required")
		return
	}

	item, err := h.store.Create(r.Context(), models.NewItem{
		Name:        name,
		Description: description,
		Price:       *price,
		CategoryID:  categoryID,
	})
	if err != nil {
		respondStoreError(w, r, err, itemNotFound)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.ItemResponse{Item: item})
}

func (h *ItemHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.ItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	item, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), req.Update())
	if err != nil {
		respondStoreError(w, r, err, itemNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ItemResponse{Item: item})
}

func (h *ItemHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, err, itemNotFound)
		return
	}
	if !removed {
		respond.Error(w, http.StatusNotFound, itemNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Item deleted successfully"})
}
