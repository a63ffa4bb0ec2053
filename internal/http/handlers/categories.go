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

const categoryNotFound = "Category not found"

// CategoryHandler serves /api/categories. Reads are public; writes need a
// token.
type CategoryHandler struct {
	store storage.CategoryStore
}

func NewCategoryHandler(store storage.CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

func (h *CategoryHandler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.With(requireAuth).Post("/", h.handleCreate)
		r.With(requireAuth).Put("/{id}", h.handleUpdate)
		r.With(requireAuth).Delete("/{id}", h.handleDelete)
	})
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.FindAll(r.Context())
	if err != nil {
		respondStoreError(w, r, err, categoryNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	category, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, err, categoryNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.CategoryResponse{Category: category})
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	fields := req.Update()
	if fields.Name == nil {
		respond.Error(w, http.StatusBadRequest, "Name is required")
		return
	}

	category, err := h.store.Create(r.Context(), models.NewCategory{
		Name:        *fields.Name,
		Description: deref(fields.Description),
		ShortTitle:  deref(fields.ShortTitle),
	})
	if err != nil {
		respondStoreError(w, r, err, categoryNotFound)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.CategoryResponse{Category: category})
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	update := req.Update()
	if update.Empty() {
		respond.Error(w, http.StatusBadRequest, "At least one field must be provided")
		return
	}

	category, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		respondStoreError(w, r, err, categoryNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.CategoryResponse{Category: category})
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, err, categoryNotFound)
		return
	}
	if !result.Success {
		respond.Error(w, http.StatusNotFound, categoryNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DeleteCategoryResponse{
		Message:           "Category deleted successfully",
		DeletedItemsCount: result.DeletedItemsCount,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
