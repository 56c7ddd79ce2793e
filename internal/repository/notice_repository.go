package repository

import (
	"context"
	"database/sql"

	"github.com/haeun-dev/campus-life-server/internal/model"
)

// NoticeRepo persists store notices. Pin-sensitive writes take a
// transaction so the handler can run the lock / check / unpin / write
// sequence atomically.
type NoticeRepo struct{ db *sql.DB }

func NewNoticeRepo(db *sql.DB) *NoticeRepo { return &NoticeRepo{db: db} }

// ListByStore returns a store's notices with pinned entries first and
// newest created_at first within each group.
func (r *NoticeRepo) ListByStore(ctx context.Context, storeID uint64) ([]model.Notice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, store_id, title, content, is_pinned, created_at, updated_at
		 FROM store_notice WHERE store_id = ?
		 ORDER BY is_pinned DESC, created_at DESC, id DESC`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Notice{}
	for rows.Next() {
		var n model.Notice
		if err := rows.Scan(&n.ID, &n.StoreID, &n.Title, &n.Content, &n.IsPinned, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Get fetches one notice scoped to its store, or ErrNoticeNotFound.
func (r *NoticeRepo) Get(ctx context.Context, storeID, noticeID uint64) (model.Notice, error) {
	var n model.Notice
	err := r.db.QueryRowContext(ctx,
		`SELECT id, store_id, title, content, is_pinned, created_at, updated_at
		 FROM store_notice WHERE store_id = ? AND id = ? LIMIT 1`, storeID, noticeID).
		Scan(&n.ID, &n.StoreID, &n.Title, &n.Content, &n.IsPinned, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return n, ErrNoticeNotFound
	}
	return n, err
}

// PinnedExceptTx returns the id of the store's currently pinned notice
// other than exceptID (0 to exclude nothing). MySQL has no partial
// unique index to enforce the single-pin invariant at the schema
// level, so concurrent pin attempts serialize on a FOR UPDATE lock of
// the parent store row. The store row is locked rather than the pinned
// notice row because a FOR UPDATE on a non-existent row locks nothing:
// two first-ever pins on the same store could both pass the check.
func (r *NoticeRepo) PinnedExceptTx(ctx context.Context, tx *sql.Tx, storeID, exceptID uint64) (uint64, bool, error) {
	var sid uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT sid FROM store WHERE sid = ? FOR UPDATE`, storeID).Scan(&sid); err != nil {
		return 0, false, err
	}
	var id uint64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM store_notice WHERE store_id = ? AND is_pinned = 1 AND id <> ? LIMIT 1`,
		storeID, exceptID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// UnpinTx clears the pin flag on one notice.
func (r *NoticeRepo) UnpinTx(ctx context.Context, tx *sql.Tx, noticeID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE store_notice SET is_pinned = 0, updated_at = NOW() WHERE id = ?`, noticeID)
	return err
}

// CreateTx inserts a notice and fills in its generated id.
func (r *NoticeRepo) CreateTx(ctx context.Context, tx *sql.Tx, n *model.Notice) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO store_notice (store_id, title, content, is_pinned, created_at, updated_at)
		 VALUES (?,?,?,?,?,?)`,
		n.StoreID, n.Title, n.Content, n.IsPinned, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// UpdateTx rewrites title, content and pin flag of an existing notice.
func (r *NoticeRepo) UpdateTx(ctx context.Context, tx *sql.Tx, n *model.Notice) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE store_notice SET title = ?, content = ?, is_pinned = ?, updated_at = ?
		 WHERE store_id = ? AND id = ?`,
		n.Title, n.Content, n.IsPinned, n.UpdatedAt, n.StoreID, n.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// RowsAffected is also 0 when the update is a no-op on an
		// existing row, so double-check existence before reporting
		// not-found.
		var one int
		if err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM store_notice WHERE store_id = ? AND id = ? LIMIT 1`, n.StoreID, n.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrNoticeNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a notice. Deleting a pinned notice just removes it;
// no other notice is promoted.
func (r *NoticeRepo) Delete(ctx context.Context, storeID, noticeID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM store_notice WHERE store_id = ? AND id = ?`, storeID, noticeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoticeNotFound
	}
	return nil
}
