package models

// DashboardSummary is the aggregation returned by GET /api/dashboard/summary.
// It is computed fresh on every call; nothing here is cached.
type DashboardSummary struct {
	TotalAssets          int                 `json:"total_assets"`
	TotalValue           float64             `json:"total_value"`
	ActiveAssets         int                 `json:"active_assets"`
	MaintenanceDue       int                 `json:"maintenance_due"`
	CategoryDistribution []CategoryCount     `json:"category_distribution"`
	StatusDistribution   []StatusCount       `json:"status_distribution"`
	RecentActivities     []DashboardActivity `json:"recent_activities"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardActivity is a history entry rendered for the dashboard, with the
// timestamp as an ISO-8601 string.
type DashboardActivity struct {
	ID        int     `json:"id"`
	AssetID   int     `json:"asset_id"`
	Action    string  `json:"action"`
	Details   *string `json:"details"`
	Timestamp string  `json:"timestamp"`
}
