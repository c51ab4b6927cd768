package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/crucial707/asset-inventory/internal/models"
)

// recentActivityLimit caps the history entries shown on the dashboard.
const recentActivityLimit = 10

// DashboardRepo runs the read-only aggregation queries for the dashboard.
type DashboardRepo struct {
	DB *sql.DB
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{DB: db}
}

// Summary computes the dashboard aggregation fresh from the store. The
// category distribution uses an inner join, so categories with no assets are
// omitted. Null current_value counts as zero toward total_value.
func (r *DashboardRepo) Summary(ctx context.Context) (models.DashboardSummary, error) {
	var s models.DashboardSummary
	s.CategoryDistribution = []models.CategoryCount{}
	s.StatusDistribution = []models.StatusCount{}
	s.RecentActivities = []models.DashboardActivity{}

	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(current_value), 0),
			COUNT(*) FILTER (WHERE status = 'Active'),
			COUNT(*) FILTER (WHERE status = 'Maintenance')
		 FROM assets`,
	).Scan(&s.TotalAssets, &s.TotalValue, &s.ActiveAssets, &s.MaintenanceDue)
	if err != nil {
		return models.DashboardSummary{}, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.name, COUNT(a.id)
		 FROM categories c
		 JOIN assets a ON a.category_id = c.id
		 GROUP BY c.name
		 ORDER BY c.name`,
	)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var cc models.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return models.DashboardSummary{}, err
		}
		s.CategoryDistribution = append(s.CategoryDistribution, cc)
	}
	if err := rows.Err(); err != nil {
		return models.DashboardSummary{}, err
	}

	statusRows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM assets GROUP BY status ORDER BY status`)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var sc models.StatusCount
		if err := statusRows.Scan(&sc.Status, &sc.Count); err != nil {
			return models.DashboardSummary{}, err
		}
		s.StatusDistribution = append(s.StatusDistribution, sc)
	}
	if err := statusRows.Err(); err != nil {
		return models.DashboardSummary{}, err
	}

	activityRows, err := r.DB.QueryContext(ctx,
		`SELECT id, asset_id, action, details, timestamp
		 FROM asset_history
		 ORDER BY timestamp DESC, id DESC
		 LIMIT $1`,
		recentActivityLimit,
	)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	defer activityRows.Close()
	for activityRows.Next() {
		var (
			a  models.DashboardActivity
			ts time.Time
		)
		if err := activityRows.Scan(&a.ID, &a.AssetID, &a.Action, &a.Details, &ts); err != nil {
			return models.DashboardSummary{}, err
		}
		a.Timestamp = ts.UTC().Format(time.RFC3339)
		s.RecentActivities = append(s.RecentActivities, a)
	}
	if err := activityRows.Err(); err != nil {
		return models.DashboardSummary{}, err
	}

	return s, nil
}
