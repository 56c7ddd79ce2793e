package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/haeun-dev/campus-life-server/internal/model"
	"github.com/haeun-dev/campus-life-server/internal/status"
)

// StoreRepo provides directory queries and schedule mutations for
// stores. Multi-step writes (hours upsert + status recompute, the
// scheduler batch) run inside a transaction owned by the caller or by
// the batch method itself.
type StoreRepo struct{ db *sql.DB }

func NewStoreRepo(db *sql.DB) *StoreRepo { return &StoreRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *StoreRepo) DB() *sql.DB { return r.db }

// StoreSummary is the list-view projection of a store joined with its
// category, as returned by the browse and search endpoints.
type StoreSummary struct {
	SID          uint64       `json:"sid"`
	Name         string       `json:"store_name"`
	Number       *string      `json:"store_number"`
	Location     *string      `json:"store_location"`
	Status       model.Status `json:"status"`
	ImgURL       *string      `json:"store_img_url"`
	MainCategory string       `json:"main_category"`
	SubCategory  *string      `json:"sub_category"`
}

const summaryColumns = `s.sid, s.store_name, s.store_number, s.store_location, s.status, s.store_img_url, c.main_category, c.sub_category`

func scanSummaries(rows *sql.Rows) ([]StoreSummary, error) {
	defer rows.Close()
	out := []StoreSummary{}
	for rows.Next() {
		var s StoreSummary
		if err := rows.Scan(&s.SID, &s.Name, &s.Number, &s.Location, &s.Status, &s.ImgURL, &s.MainCategory, &s.SubCategory); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListBySchool returns every store of a school.
func (r *StoreRepo) ListBySchool(ctx context.Context, schoolID uint64) ([]StoreSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM store s JOIN store_category c ON c.id = s.category_id
		 WHERE s.school_id = ? ORDER BY s.sid`, schoolID)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

// ListByCategories returns a school's stores restricted to the given
// category ids (one of the browse groups: food, cafe, convenience,
// facilities).
func (r *StoreRepo) ListByCategories(ctx context.Context, schoolID uint64, categoryIDs []uint64) ([]StoreSummary, error) {
	if len(categoryIDs) == 0 {
		return []StoreSummary{}, nil
	}
	query := `SELECT ` + summaryColumns + ` FROM store s JOIN store_category c ON c.id = s.category_id
		 WHERE s.school_id = ? AND s.category_id IN (`
	args := []any{schoolID}
	for i, id := range categoryIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ") ORDER BY s.sid"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

// SearchByName matches store names by substring within a school.
func (r *StoreRepo) SearchByName(ctx context.Context, schoolID uint64, name string) ([]StoreSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM store s JOIN store_category c ON c.id = s.category_id
		 WHERE s.school_id = ? AND s.store_name LIKE CONCAT('%', ?, '%') ORDER BY s.sid`,
		schoolID, name)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

// GetByID fetches one store row or ErrStoreNotFound.
func (r *StoreRepo) GetByID(ctx context.Context, sid uint64) (model.Store, error) {
	var s model.Store
	err := r.db.QueryRowContext(ctx,
		`SELECT sid, school_id, category_id, manager_id, store_name, store_number, store_location, store_img_url, status, created_at, updated_at
		 FROM store WHERE sid = ? LIMIT 1`, sid).
		Scan(&s.SID, &s.SchoolID, &s.CategoryID, &s.ManagerID, &s.Name, &s.Number, &s.Location, &s.ImgURL, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, ErrStoreNotFound
	}
	return s, err
}

// ManagedBy fetches a store and verifies userID is its manager of
// record, returning ErrForbidden when it is not. The role middleware
// has already required the MANAGER role; this binds it to one store.
func (r *StoreRepo) ManagedBy(ctx context.Context, sid, userID uint64) (model.Store, error) {
	s, err := r.GetByID(ctx, sid)
	if err != nil {
		return s, err
	}
	if s.ManagerID == nil || *s.ManagerID != userID {
		return s, ErrForbidden
	}
	return s, nil
}

// Category fetches a store category row.
func (r *StoreRepo) Category(ctx context.Context, id uint64) (model.StoreCategory, error) {
	var c model.StoreCategory
	err := r.db.QueryRowContext(ctx,
		`SELECT id, main_category, sub_category FROM store_category WHERE id = ? LIMIT 1`, id).
		Scan(&c.ID, &c.MainCategory, &c.SubCategory)
	return c, err
}

// HoursByStore returns the store's weekly schedule rows, at most one
// per weekday.
func (r *StoreRepo) HoursByStore(ctx context.Context, storeID uint64) ([]model.StoreHours, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, store_id, weekday, opening_time, closing_time, break_start_time, break_exit_time
		 FROM store_hours WHERE store_id = ?`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.StoreHours{}
	for rows.Next() {
		var h model.StoreHours
		if err := rows.Scan(&h.ID, &h.StoreID, &h.Weekday, &h.OpeningTime, &h.ClosingTime, &h.BreakStartTime, &h.BreakExitTime); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// UpdateFieldsTx updates the mutable display fields that arrive on an
// hours update. Nil values leave the column untouched.
func (r *StoreRepo) UpdateFieldsTx(ctx context.Context, tx *sql.Tx, sid uint64, number, location *string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE store SET store_number = COALESCE(?, store_number),
		        store_location = COALESCE(?, store_location), updated_at = NOW()
		 WHERE sid = ?`, number, location, sid)
	return err
}

// UpsertHoursTx writes one weekday schedule row, replacing all four
// time columns. Explicit nulls clear a column; the (store_id, weekday)
// unique key guarantees at most one row per weekday.
func (r *StoreRepo) UpsertHoursTx(ctx context.Context, tx *sql.Tx, h model.StoreHours) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO store_hours (store_id, weekday, opening_time, closing_time, break_start_time, break_exit_time)
		 VALUES (?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE opening_time = VALUES(opening_time), closing_time = VALUES(closing_time),
		        break_start_time = VALUES(break_start_time), break_exit_time = VALUES(break_exit_time)`,
		h.StoreID, h.Weekday, h.OpeningTime, h.ClosingTime, h.BreakStartTime, h.BreakExitTime)
	return err
}

// HoursForWeekdayTx reads the schedule row for one weekday inside the
// caller's transaction; (nil, nil) when no row exists.
func (r *StoreRepo) HoursForWeekdayTx(ctx context.Context, tx *sql.Tx, storeID uint64, day model.Weekday) (*model.StoreHours, error) {
	var h model.StoreHours
	err := tx.QueryRowContext(ctx,
		`SELECT id, store_id, weekday, opening_time, closing_time, break_start_time, break_exit_time
		 FROM store_hours WHERE store_id = ? AND weekday = ? LIMIT 1`, storeID, day).
		Scan(&h.ID, &h.StoreID, &h.Weekday, &h.OpeningTime, &h.ClosingTime, &h.BreakStartTime, &h.BreakExitTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateStatusTx persists a derived status inside the caller's
// transaction.
func (r *StoreRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, sid uint64, st model.Status) error {
	_, err := tx.ExecContext(ctx, `UPDATE store SET status = ? WHERE sid = ?`, st, sid)
	return err
}

// RefreshStatuses re-resolves the status of every store from its
// schedule row for the weekday of now and persists the rows that
// changed. The whole batch runs in one transaction: a single failure
// rolls back every update of this firing, matching the scheduler's
// all-or-nothing contract. Returns how many stores changed status.
func (r *StoreRepo) RefreshStatuses(ctx context.Context, now time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	day := model.WeekdayOf(now)
	rows, err := tx.QueryContext(ctx,
		`SELECT s.sid, s.status, h.id, h.opening_time, h.closing_time, h.break_start_time, h.break_exit_time
		 FROM store s
		 LEFT JOIN store_hours h ON h.store_id = s.sid AND h.weekday = ?`, day)
	if err != nil {
		return 0, err
	}

	type pending struct {
		sid  uint64
		next model.Status
	}
	var updates []pending
	clock := model.ClockOf(now)
	for rows.Next() {
		var (
			sid     uint64
			current model.Status
			hoursID sql.NullInt64
			h       model.StoreHours
		)
		if err := rows.Scan(&sid, &current, &hoursID, &h.OpeningTime, &h.ClosingTime, &h.BreakStartTime, &h.BreakExitTime); err != nil {
			rows.Close()
			return 0, err
		}
		var today *model.StoreHours
		if hoursID.Valid {
			today = &h
		}
		if next := status.Resolve(today, clock); next != current {
			updates = append(updates, pending{sid: sid, next: next})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, `UPDATE store SET status = ? WHERE sid = ?`, u.next, u.sid); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(updates), nil
}
