package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/haeun-dev/campus-life-server/internal/model"
	"github.com/haeun-dev/campus-life-server/internal/utils"
)

// UserRepo mirrors the 'user' table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `uid, std_id, name, email, password, school_id, role, sign_url, created_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.UID, &u.StdID, &u.Name, &u.Email, &u.PasswordHash, &u.SchoolID, &u.Role, &u.SignURL, &u.CreatedAt)
	return u, err
}

// Create hashes the password and inserts the account, returning the
// generated uid. Unique keys on email and std_id surface duplicate
// signups as sentinel errors.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, bcryptCost int) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user (std_id, name, email, password, school_id, role, sign_url, created_at)
		 VALUES (?,?,?,?,?,?,?,NOW())`,
		u.StdID, u.Name, u.Email, hash, u.SchoolID, u.Role, u.SignURL)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "std_id") {
				return ErrStdIDExists
			}
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.UID = uint64(id)
	u.PasswordHash = hash
	return nil
}

// GetByStdID fetches a user by student number, the login identifier.
func (r *UserRepo) GetByStdID(ctx context.Context, stdID string) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user WHERE std_id = ? LIMIT 1`, strings.TrimSpace(stdID)))
}

// GetByID fetches a user by uid.
func (r *UserRepo) GetByID(ctx context.Context, uid uint64) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user WHERE uid = ? LIMIT 1`, uid))
}

// EmailExists reports whether an email is already registered.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM user WHERE email = ? LIMIT 1`, email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// School fetches the school a user belongs to, for the profile view.
func (r *UserRepo) School(ctx context.Context, id uint64) (model.School, error) {
	var s model.School
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, campus FROM school WHERE id = ? LIMIT 1`, id).
		Scan(&s.ID, &s.Name, &s.Campus)
	return s, err
}
