package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/asset-inventory/internal/models"
	"github.com/crucial707/asset-inventory/internal/repo"
)

func assetColumns() []string {
	return []string{
		"id", "name", "description", "serial_number", "purchase_date",
		"purchase_price", "current_value", "status", "location",
		"category_id", "assigned_to", "image_path", "created_at", "updated_at",
		"c_id", "c_name", "c_description", "c_created_at",
	}
}

func TestCreateAsset(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO assets`).
		WithArgs("Laptop", nil, nil, nil, nil, nil, "Active", nil, 1, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`INSERT INTO asset_history`).
		WithArgs(7, repo.ActionCreate, "Asset 'Laptop' created").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT a\.id, a\.name`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(assetColumns()).
			AddRow(7, "Laptop", nil, nil, nil, nil, nil, "Active", nil, 1, nil, nil, now, now, 1, "Electronics", nil, now))

	h := &AssetHandler{Repo: repo.NewAssetRepo(db)}
	// Status omitted on purpose; it defaults to Active.
	body := `{"name": "Laptop", "category_id": 1}`
	req := httptest.NewRequest("POST", "/api/assets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateAsset(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var asset models.Asset
	if err := json.NewDecoder(rec.Body).Decode(&asset); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if asset.ID != 7 || asset.Status != "Active" {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if asset.Category == nil || asset.Category.Name != "Electronics" {
		t.Errorf("expected nested category, got %+v", asset.Category)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateAsset_ValidationError(t *testing.T) {
	h := &AssetHandler{}

	body := `{"category_id": 1, "purchase_date": "01/03/2026"}`
	req := httptest.NewRequest("POST", "/api/assets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateAsset(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Kind != KindValidationError {
		t.Errorf("expected kind %q, got %q", KindValidationError, resp.Kind)
	}
	if resp.Fields["name"] != "required" {
		t.Errorf("expected name:required in fields, got %v", resp.Fields)
	}
	if resp.Fields["purchasedate"] != "datetime" {
		t.Errorf("expected purchasedate:datetime in fields, got %v", resp.Fields)
	}
}

func TestCreateAsset_DanglingCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO assets`).
		WillReturnError(repo.ErrInvalidReference)
	mock.ExpectRollback()

	h := &AssetHandler{Repo: repo.NewAssetRepo(db)}
	body := `{"name": "Laptop", "category_id": 999}`
	req := httptest.NewRequest("POST", "/api/assets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateAsset(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Kind != KindInvalidReference {
		t.Errorf("expected kind %q, got %q", KindInvalidReference, resp.Kind)
	}
}

func TestGetAsset_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT a\.id, a\.name`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows(assetColumns()))

	h := &AssetHandler{Repo: repo.NewAssetRepo(db)}
	req := withURLParam(httptest.NewRequest("GET", "/api/assets/999", nil), "id", "999")
	rec := httptest.NewRecorder()
	h.GetAsset(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Kind != KindNotFound {
		t.Errorf("expected kind %q, got %q", KindNotFound, resp.Kind)
	}
}

func TestGetAsset_InvalidID(t *testing.T) {
	h := &AssetHandler{}
	req := withURLParam(httptest.NewRequest("GET", "/api/assets/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()
	h.GetAsset(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListAssets_EmptyIsJSONArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM assets a`).
		WillReturnRows(sqlmock.NewRows(assetColumns()))

	h := &AssetHandler{Repo: repo.NewAssetRepo(db)}
	req := httptest.NewRequest("GET", "/api/assets", nil)
	rec := httptest.NewRecorder()
	h.ListAssets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected [], got %s", got)
	}
}

func TestListAssets_BadCategoryFilter(t *testing.T) {
	h := &AssetHandler{}
	req := httptest.NewRequest("GET", "/api/assets?category_id=abc", nil)
	rec := httptest.NewRecorder()
	h.ListAssets(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteAsset(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM assets`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := &AssetHandler{Repo: repo.NewAssetRepo(db)}
	req := withURLParam(httptest.NewRequest("DELETE", "/api/assets/7", nil), "id", "7")
	rec := httptest.NewRecorder()
	h.DeleteAsset(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGetAssetHistory_AssetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM assets`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	h := &AssetHandler{Repo: repo.NewAssetRepo(db)}
	req := withURLParam(httptest.NewRequest("GET", "/api/assets/999/history", nil), "id", "999")
	rec := httptest.NewRecorder()
	h.GetAssetHistory(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
