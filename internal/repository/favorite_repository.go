package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/haeun-dev/campus-life-server/internal/model"
	"github.com/haeun-dev/campus-life-server/internal/utils"
)

// FavoriteRepo persists the user↔store favorite relation. Both
// operations fail loudly on repetition (conflict on a duplicate add,
// not-found on a stray remove) instead of silently no-opping.
type FavoriteRepo struct{ db *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) storeExists(ctx context.Context, storeID uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM store WHERE sid = ? LIMIT 1`, storeID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrStoreNotFound
	}
	return err
}

// Add inserts a favorite for (user, store). The composite primary key
// turns a duplicate insert into MySQL error 1062, mapped to
// ErrFavoriteExists.
func (r *FavoriteRepo) Add(ctx context.Context, userID, storeID uint64) error {
	if err := r.storeExists(ctx, storeID); err != nil {
		return err
	}
	f := model.Favorite{UserID: userID, StoreID: storeID, CreatedAt: utils.NowKST()}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorite (user_id, store_id, created_at) VALUES (?,?,?)`,
		f.UserID, f.StoreID, f.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "1062") {
		return ErrFavoriteExists
	}
	return err
}

// Remove deletes the favorite for (user, store), failing with
// ErrFavoriteNotFound when no such record exists.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, storeID uint64) error {
	if err := r.storeExists(ctx, storeID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorite WHERE user_id = ? AND store_id = ?`, userID, storeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListByUser returns the stores a user favorited, newest first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]StoreSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM favorite f
		 JOIN store s ON s.sid = f.store_id
		 JOIN store_category c ON c.id = s.category_id
		 WHERE f.user_id = ? ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}
