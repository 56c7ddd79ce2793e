package model

import (
	"sort"
	"time"
)

// Notice is an announcement posted by a store's manager. At most one
// notice per store may be pinned at any time; the pin protocol in the
// notice handler enforces that inside a single transaction.
type Notice struct {
	ID        uint64    // store_notice.id
	StoreID   uint64    // store_notice.store_id
	Title     string    // store_notice.title
	Content   string    // store_notice.content
	IsPinned  bool      // store_notice.is_pinned
	CreatedAt time.Time // store_notice.created_at
	UpdatedAt time.Time // store_notice.updated_at
}

// SortNotices orders a notice list for display: pinned entries first,
// then newest created_at first within each group. ID breaks ties so
// the order is stable across reloads.
func SortNotices(list []Notice) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsPinned != list[j].IsPinned {
			return list[i].IsPinned
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
