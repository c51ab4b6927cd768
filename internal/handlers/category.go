package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crucial707/asset-inventory/internal/repo"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	Repo *repo.CategoryRepo
}

type categoryInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// ListCategories returns every category, unbounded.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Repo.List(r.Context())
	if err != nil {
		StoreError(w, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CreateCategory inserts a category. A duplicate name is rejected before any
// write and answered with 400.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, KindValidationError, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	category, err := h.Repo.Create(r.Context(), input.Name, input.Description)
	if err != nil {
		StoreError(w, err, "category")
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory replaces name and description. No duplicate pre-check here:
// create checks first, update leans on the unique index.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, KindValidationError, "invalid category id", http.StatusBadRequest)
		return
	}

	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, KindValidationError, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	category, err := h.Repo.Update(r.Context(), id, input.Name, input.Description)
	if err != nil {
		StoreError(w, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory removes a category. Categories with assets still attached are
// protected by the foreign key and answered as invalid_reference.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, KindValidationError, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		StoreError(w, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
