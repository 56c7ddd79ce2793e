package model

import "time"

// Favorite links a user to a store they bookmarked. The pair is unique;
// favoriting twice is a conflict surfaced to the caller rather than a
// silent no-op, so double submissions are visible client-side.
type Favorite struct {
	UserID    uint64    // favorite.user_id
	StoreID   uint64    // favorite.store_id
	CreatedAt time.Time // favorite.created_at
}
