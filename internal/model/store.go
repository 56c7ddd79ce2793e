package model

import "time"

// Status is the derived operating state of a store. It is recomputed
// from the weekly schedule — never set directly by a request — and
// cached on the store row so list endpoints can return it without
// touching store_hours.
type Status string

const (
	StatusOpened    Status = "opened"
	StatusClosed    Status = "closed"
	StatusBreakTime Status = "breaktime"
)

// StoreCategory maps a store into the directory's browse groups
// (cafeteria, cafe, convenience, facilities...).
//
// Fields:
//  ID           – primary key identifier.
//  MainCategory – top-level group name.
//  SubCategory  – optional finer classification.
type StoreCategory struct {
	ID           uint64  // store_category.id
	MainCategory string  // store_category.main_category
	SubCategory  *string // store_category.sub_category (nullable)
}

// Store is one directory entry. Display fields are opaque to the
// service; Status is owned by the status resolver. ManagerID links the
// user account allowed to mutate this store's hours and notices.
type Store struct {
	SID        uint64    // store.sid
	SchoolID   uint64    // store.school_id
	CategoryID uint64    // store.category_id
	ManagerID  *uint64   // store.manager_id (nullable until a manager claims it)
	Name       string    // store.store_name
	Number     *string   // store.store_number (nullable)
	Location   *string   // store.store_location (nullable)
	ImgURL     *string   // store.store_img_url (nullable)
	Status     Status    // store.status, derived
	CreatedAt  time.Time // store.created_at
	UpdatedAt  time.Time // store.updated_at
}

// StoreHours is one weekday row of a store's weekly schedule. At most
// one row exists per (store, weekday). A missing row, or a nil opening
// or closing time, means the store is closed all day. Break bounds are
// only honored when both are present.
type StoreHours struct {
	ID             uint64     // store_hours.id
	StoreID        uint64     // store_hours.store_id
	Weekday        Weekday    // store_hours.weekday
	OpeningTime    *TimeOfDay // store_hours.opening_time (nullable)
	ClosingTime    *TimeOfDay // store_hours.closing_time (nullable)
	BreakStartTime *TimeOfDay // store_hours.break_start_time (nullable)
	BreakExitTime  *TimeOfDay // store_hours.break_exit_time (nullable)
}
