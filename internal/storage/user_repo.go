package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, created_at, level, current_xp, total_xp, gold, gems,
	strength, intelligence, vitality, agility, sense, willpower,
	current_streak, best_streak, last_activity_date`

func (r *UserRepo) Get(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE id = ?`, id)
	return scanUser(row)
}

// First returns the install's user row, or nil when onboarding has not run.
func (r *UserRepo) First(ctx context.Context) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user ORDER BY id ASC LIMIT 1`)
	return scanUser(row)
}

func (r *UserRepo) Create(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO user (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("user insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	return id, nil
}

func (r *UserRepo) Update(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user
		SET name = ?, level = ?, current_xp = ?, total_xp = ?, gold = ?, gems = ?,
			strength = ?, intelligence = ?, vitality = ?, agility = ?, sense = ?, willpower = ?,
			current_streak = ?, best_streak = ?, last_activity_date = ?
		WHERE id = ?
	`, u.Name, u.Level, u.CurrentXP, u.TotalXP, u.Gold, u.Gems,
		u.Strength, u.Intelligence, u.Vitality, u.Agility, u.Sense, u.Willpower,
		u.CurrentStreak, u.BestStreak, u.LastActivityDate, u.ID)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var lastActivity sql.NullString
	err := row.Scan(
		&u.ID, &u.Name, &u.CreatedAt, &u.Level, &u.CurrentXP, &u.TotalXP, &u.Gold, &u.Gems,
		&u.Strength, &u.Intelligence, &u.Vitality, &u.Agility, &u.Sense, &u.Willpower,
		&u.CurrentStreak, &u.BestStreak, &lastActivity,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if lastActivity.Valid {
		v := lastActivity.String
		u.LastActivityDate = &v
	}
	return &u, nil
}
