package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/asset-inventory/internal/models"
)

// CategoryRepo persists categories.
type CategoryRepo struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{DB: db}
}

// Create inserts a category. The duplicate-name check runs before the insert
// so a taken name surfaces as ErrAlreadyExists without touching the table.
func (r *CategoryRepo) Create(ctx context.Context, name string, description *string) (models.Category, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`,
		name,
	).Scan(&exists)
	if err != nil {
		return models.Category{}, err
	}
	if exists {
		return models.Category{}, ErrAlreadyExists
	}

	var c models.Category
	err = r.DB.QueryRowContext(ctx,
		`INSERT INTO categories (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, description, created_at`,
		name, description,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		return models.Category{}, normalizeError(err)
	}
	return c, nil
}

// Update replaces name and description. Unlike Create there is no duplicate
// pre-check; a rename onto a taken name is rejected by the unique index.
func (r *CategoryRepo) Update(ctx context.Context, id int, name string, description *string) (models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx,
		`UPDATE categories
		 SET name = $1, description = $2
		 WHERE id = $3
		 RETURNING id, name, description, created_at`,
		name, description, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		return models.Category{}, normalizeError(err)
	}
	return c, nil
}

// Delete removes a category. There is no ON DELETE rule on assets.category_id,
// so deleting a category that still has assets fails with ErrInvalidReference.
func (r *CategoryRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return normalizeError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all categories, unbounded.
func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
