package models

import "time"

// Asset is a tracked inventory item. PurchaseDate travels as a "YYYY-MM-DD"
// string on the wire and is cast to/from the DATE column in SQL.
type Asset struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	SerialNumber  *string   `json:"serial_number"`
	PurchaseDate  *string   `json:"purchase_date"`
	PurchasePrice *float64  `json:"purchase_price"`
	CurrentValue  *float64  `json:"current_value"`
	Status        string    `json:"status"`
	Location      *string   `json:"location"`
	CategoryID    int       `json:"category_id"`
	AssignedTo    *string   `json:"assigned_to"`
	ImagePath     *string   `json:"image_path"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Category      *Category `json:"category,omitempty"`
}

// StatusActive is the default asset status when none is supplied.
const StatusActive = "Active"
