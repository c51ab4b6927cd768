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
	"github.com/lib/pq"
)

func TestCreateCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM categories`).
		WithArgs("Tools").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Tools", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(6, "Tools", nil, time.Now()))

	h := &CategoryHandler{Repo: repo.NewCategoryRepo(db)}
	req := httptest.NewRequest("POST", "/api/categories", strings.NewReader(`{"name": "Tools"}`))
	rec := httptest.NewRecorder()
	h.CreateCategory(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var c models.Category
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if c.ID != 6 || c.Name != "Tools" {
		t.Errorf("unexpected category: %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM categories`).
		WithArgs("Electronics").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	h := &CategoryHandler{Repo: repo.NewCategoryRepo(db)}
	req := httptest.NewRequest("POST", "/api/categories", strings.NewReader(`{"name": "Electronics"}`))
	rec := httptest.NewRecorder()
	h.CreateCategory(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Kind != KindAlreadyExists {
		t.Errorf("expected kind %q, got %q", KindAlreadyExists, resp.Kind)
	}
}

func TestCreateCategory_MissingName(t *testing.T) {
	h := &CategoryHandler{}
	req := httptest.NewRequest("POST", "/api/categories", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreateCategory(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Kind != KindValidationError || resp.Fields["name"] != "required" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestDeleteCategory_StillReferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM categories`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "assets_category_id_fkey"})

	h := &CategoryHandler{Repo: repo.NewCategoryRepo(db)}
	req := withURLParam(httptest.NewRequest("DELETE", "/api/categories/1", nil), "id", "1")
	rec := httptest.NewRecorder()
	h.DeleteCategory(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Kind != KindInvalidReference {
		t.Errorf("expected kind %q, got %q", KindInvalidReference, resp.Kind)
	}
}

func TestDeleteCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM categories`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := &CategoryHandler{Repo: repo.NewCategoryRepo(db)}
	req := withURLParam(httptest.NewRequest("DELETE", "/api/categories/3", nil), "id", "3")
	rec := httptest.NewRecorder()
	h.DeleteCategory(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUpdateCategory_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE categories`).
		WithArgs("Tools", nil, 999).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}))

	h := &CategoryHandler{Repo: repo.NewCategoryRepo(db)}
	req := withURLParam(
		httptest.NewRequest("PUT", "/api/categories/999", strings.NewReader(`{"name": "Tools"}`)),
		"id", "999")
	rec := httptest.NewRecorder()
	h.UpdateCategory(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
