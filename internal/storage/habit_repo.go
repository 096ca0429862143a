package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HabitRepo struct {
	db DBTX
}

func NewHabitRepo(db DBTX) *HabitRepo {
	return &HabitRepo{db: db}
}

type HabitInsert struct {
	UserID      int64
	Title       string
	Description *string
	Category    string
	Difficulty  int
	XPReward    int
	TargetStat  string
	Frequency   string
	IsPriority  bool
	AITip       *string
}

const habitColumns = `id, user_id, title, description, category, difficulty, xp_reward,
	target_stat, frequency, streak, best_streak, total_completions,
	is_priority, is_active, created_at, ai_tip`

func (r *HabitRepo) Insert(ctx context.Context, in HabitInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (user_id, title, description, category, difficulty, xp_reward, target_stat, frequency, is_priority, ai_tip)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.UserID, in.Title, in.Description, in.Category, in.Difficulty, in.XPReward, in.TargetStat, in.Frequency, boolToInt(in.IsPriority), in.AITip)
	if err != nil {
		return 0, fmt.Errorf("habit insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("habit last insert id: %w", err)
	}
	return id, nil
}

func (r *HabitRepo) Get(ctx context.Context, id int64) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (r *HabitRepo) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY is_priority DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit rows: %w", err)
	}
	return out, nil
}

// UpdateAfterCompletion persists the streak counters bumped by a completion.
func (r *HabitRepo) UpdateAfterCompletion(ctx context.Context, id int64, streak, bestStreak, totalCompletions int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE habits SET streak = ?, best_streak = ?, total_completions = ? WHERE id = ?
	`, streak, bestStreak, totalCompletions, id)
	if err != nil {
		return fmt.Errorf("habit update after completion: %w", err)
	}
	return nil
}

func (r *HabitRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("habit set active: %w", err)
	}
	return nil
}

func (r *HabitRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("habit delete: %w", err)
	}
	return nil
}

func (r *HabitRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("habit count: %w", err)
	}
	return n, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (*Habit, error) {
	var (
		h           Habit
		description sql.NullString
		aiTip       sql.NullString
		isPriority  int
		isActive    int
	)
	err := row.Scan(
		&h.ID, &h.UserID, &h.Title, &description, &h.Category, &h.Difficulty, &h.XPReward,
		&h.TargetStat, &h.Frequency, &h.Streak, &h.BestStreak, &h.TotalCompletions,
		&isPriority, &isActive, &h.CreatedAt, &aiTip,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit scan: %w", err)
	}
	if description.Valid {
		v := description.String
		h.Description = &v
	}
	if aiTip.Valid {
		v := aiTip.String
		h.AITip = &v
	}
	h.IsPriority = isPriority != 0
	h.IsActive = isActive != 0
	return &h, nil
}
