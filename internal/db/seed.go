package db

import (
	"context"
	"database/sql"
)

// defaultCategories are inserted on first startup so a fresh deployment has
// something to attach assets to.
var defaultCategories = []struct {
	name        string
	description string
}{
	{"Electronics", "Electronic devices and equipment"},
	{"Furniture", "Office and home furniture"},
	{"Vehicles", "Company vehicles and transportation"},
	{"Software", "Software licenses and subscriptions"},
	{"Equipment", "General equipment and tools"},
}

// SeedCategories inserts the default categories when the table is empty.
// It does nothing on a database that already has categories.
func SeedCategories(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, c := range defaultCategories {
		_, err := db.ExecContext(ctx,
			`INSERT INTO categories (name, description) VALUES ($1, $2)`,
			c.name, c.description,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
