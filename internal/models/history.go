package models

import "time"

// HistoryEntry represents one asset_history row. Entries are append-only:
// they are written when an asset is created or updated and only ever removed
// by the cascade when the asset itself is deleted.
type HistoryEntry struct {
	ID        int       `json:"id"`
	AssetID   int       `json:"asset_id"`
	Action    string    `json:"action"` // CREATE, UPDATE
	Details   *string   `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
