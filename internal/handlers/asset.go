package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crucial707/asset-inventory/internal/models"
	"github.com/crucial707/asset-inventory/internal/repo"
	"github.com/go-chi/chi/v5"
)

type AssetHandler struct {
	Repo *repo.AssetRepo
}

// assetInput is the full-replace payload for create and update. Omitted
// optional fields come through as nulls and are written as such; there is no
// partial-patch path.
type assetInput struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   *string  `json:"description"`
	SerialNumber  *string  `json:"serial_number" validate:"omitempty,max=255"`
	PurchaseDate  *string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	PurchasePrice *float64 `json:"purchase_price"`
	CurrentValue  *float64 `json:"current_value"`
	Status        string   `json:"status" validate:"max=50"`
	Location      *string  `json:"location" validate:"omitempty,max=255"`
	CategoryID    int      `json:"category_id" validate:"required"`
	AssignedTo    *string  `json:"assigned_to" validate:"omitempty,max=255"`
	ImagePath     *string  `json:"image_path" validate:"omitempty,max=512"`
}

func (in assetInput) toModel() models.Asset {
	status := in.Status
	if status == "" {
		status = models.StatusActive
	}
	return models.Asset{
		Name:          in.Name,
		Description:   in.Description,
		SerialNumber:  in.SerialNumber,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: in.PurchasePrice,
		CurrentValue:  in.CurrentValue,
		Status:        status,
		Location:      in.Location,
		CategoryID:    in.CategoryID,
		AssignedTo:    in.AssignedTo,
		ImagePath:     in.ImagePath,
	}
}

// ListAssets returns assets matching the optional status and category_id
// filters (AND semantics). No filters means the full listing.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	categoryID := 0
	if c := r.URL.Query().Get("category_id"); c != "" {
		val, err := strconv.Atoi(c)
		if err != nil {
			JSONError(w, KindValidationError, "invalid category_id", http.StatusBadRequest)
			return
		}
		categoryID = val
	}

	assets, err := h.Repo.List(r.Context(), status, categoryID)
	if err != nil {
		StoreError(w, err, "asset")
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

// GetAsset returns one asset with its category nested.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, KindValidationError, "invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		StoreError(w, err, "asset")
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// CreateAsset inserts an asset and its CREATE history entry in one
// transaction. Schema violations answer 422 before anything is written.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input assetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, KindValidationError, "invalid JSON", http.StatusUnprocessableEntity)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusUnprocessableEntity)
		return
	}

	asset, err := h.Repo.Create(r.Context(), input.toModel())
	if err != nil {
		StoreError(w, err, "asset")
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

// UpdateAsset replaces every field of the asset, refreshes updated_at, and
// appends the UPDATE history entry, all atomically.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, KindValidationError, "invalid asset id", http.StatusBadRequest)
		return
	}

	var input assetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, KindValidationError, "invalid JSON", http.StatusUnprocessableEntity)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusUnprocessableEntity)
		return
	}

	asset, err := h.Repo.Update(r.Context(), id, input.toModel())
	if err != nil {
		StoreError(w, err, "asset")
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// DeleteAsset removes the asset and, via cascade, its history. Deletion
// itself writes no history entry.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, KindValidationError, "invalid asset id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		StoreError(w, err, "asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAssetHistory returns the asset's history, newest first. 404 when the
// asset itself does not exist.
func (h *AssetHandler) GetAssetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, KindValidationError, "invalid asset id", http.StatusBadRequest)
		return
	}

	entries, err := h.Repo.History(r.Context(), id)
	if err != nil {
		StoreError(w, err, "asset")
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
