package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/crucial707/asset-inventory/internal/models"
)

// Actions recorded in asset_history. Deletion is intentionally not audited;
// the cascade removes the asset's history with it.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
)

// AssetRepo persists assets and their history log. Create and Update wrap the
// asset write and the history append in a single transaction so an asset can
// never exist without its matching history entry.
type AssetRepo struct {
	DB *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{DB: db}
}

const assetSelect = `SELECT a.id, a.name, a.description, a.serial_number,
		to_char(a.purchase_date, 'YYYY-MM-DD'),
		a.purchase_price, a.current_value, a.status, a.location,
		a.category_id, a.assigned_to, a.image_path, a.created_at, a.updated_at,
		c.id, c.name, c.description, c.created_at
	 FROM assets a
	 JOIN categories c ON c.id = a.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (models.Asset, error) {
	var a models.Asset
	var c models.Category
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.SerialNumber,
		&a.PurchaseDate,
		&a.PurchasePrice, &a.CurrentValue, &a.Status, &a.Location,
		&a.CategoryID, &a.AssignedTo, &a.ImagePath, &a.CreatedAt, &a.UpdatedAt,
		&c.ID, &c.Name, &c.Description, &c.CreatedAt,
	)
	if err != nil {
		return models.Asset{}, err
	}
	a.Category = &c
	return a, nil
}

// Create inserts an asset and appends its CREATE history entry atomically.
// A dangling category_id is rejected by the foreign key and surfaces as
// ErrInvalidReference; a duplicate serial number as ErrConstraintViolation.
func (r *AssetRepo) Create(ctx context.Context, in models.Asset) (models.Asset, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Asset{}, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO assets (name, description, serial_number, purchase_date,
			purchase_price, current_value, status, location, category_id,
			assigned_to, image_path)
		 VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		in.Name, in.Description, in.SerialNumber, in.PurchaseDate,
		in.PurchasePrice, in.CurrentValue, in.Status, in.Location, in.CategoryID,
		in.AssignedTo, in.ImagePath,
	).Scan(&id)
	if err != nil {
		return models.Asset{}, normalizeError(err)
	}

	details := fmt.Sprintf("Asset '%s' created", in.Name)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO asset_history (asset_id, action, details) VALUES ($1, $2, $3)`,
		id, ActionCreate, details,
	)
	if err != nil {
		return models.Asset{}, normalizeError(err)
	}

	if err := tx.Commit(); err != nil {
		return models.Asset{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns an asset with its category, or ErrNotFound.
func (r *AssetRepo) GetByID(ctx context.Context, id int) (models.Asset, error) {
	asset, err := scanAsset(r.DB.QueryRowContext(ctx, assetSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return models.Asset{}, normalizeError(err)
	}
	return asset, nil
}

// Update replaces every field of the asset with the supplied values (full
// replace, not a patch), refreshes updated_at, and appends the UPDATE history
// entry in the same transaction.
func (r *AssetRepo) Update(ctx context.Context, id int, in models.Asset) (models.Asset, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Asset{}, err
	}
	defer tx.Rollback()

	var updatedID int
	err = tx.QueryRowContext(ctx,
		`UPDATE assets
		 SET name = $1, description = $2, serial_number = $3, purchase_date = $4::date,
			purchase_price = $5, current_value = $6, status = $7, location = $8,
			category_id = $9, assigned_to = $10, image_path = $11, updated_at = NOW()
		 WHERE id = $12
		 RETURNING id`,
		in.Name, in.Description, in.SerialNumber, in.PurchaseDate,
		in.PurchasePrice, in.CurrentValue, in.Status, in.Location,
		in.CategoryID, in.AssignedTo, in.ImagePath, id,
	).Scan(&updatedID)
	if err != nil {
		return models.Asset{}, normalizeError(err)
	}

	details := fmt.Sprintf("Asset '%s' updated", in.Name)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO asset_history (asset_id, action, details) VALUES ($1, $2, $3)`,
		updatedID, ActionUpdate, details,
	)
	if err != nil {
		return models.Asset{}, normalizeError(err)
	}

	if err := tx.Commit(); err != nil {
		return models.Asset{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an asset. Its history rows go with it via ON DELETE CASCADE.
func (r *AssetRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
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

// List returns assets matching the supplied filters (AND semantics). An empty
// status or zero categoryID means that filter is off; no filters means all.
func (r *AssetRepo) List(ctx context.Context, status string, categoryID int) ([]models.Asset, error) {
	query := assetSelect
	var conds []string
	var args []any
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if categoryID != 0 {
		args = append(args, categoryID)
		conds = append(conds, fmt.Sprintf("a.category_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// History returns all history entries for an asset, newest first. Timestamp
// ties break by id descending so the order is stable.
func (r *AssetRepo) History(ctx context.Context, assetID int) ([]models.HistoryEntry, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM assets WHERE id = $1)`, assetID,
	).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, asset_id, action, details, timestamp
		 FROM asset_history
		 WHERE asset_id = $1
		 ORDER BY timestamp DESC, id DESC`,
		assetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.AssetID, &e.Action, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
