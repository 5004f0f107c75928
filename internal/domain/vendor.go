// internal/domain/vendor.go
package domain

import "time"

// Vendor is a stall or shop selling items at the event. The owning user's
// wallet receives the tokens when a charge completes.
type Vendor struct {
	ID        int64     `db:"id" json:"id"`
	UserID    *int64    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Location  *string   `db:"location" json:"location"`
	Longitude *float64  `db:"longitude" json:"longitude"`
	Latitude  *float64  `db:"latitude" json:"latitude"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
