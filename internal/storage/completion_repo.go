package storage

import (
	"context"
	"fmt"
	"time"
)

type CompletionRepo struct {
	db DBTX
}

func NewCompletionRepo(db DBTX) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, habitID int64, completedAt time.Time, completionDate string, xpEarned, streakBonus int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_completions (habit_id, completed_at, completion_date, xp_earned, streak_bonus)
		VALUES (?, ?, ?, ?, ?)
	`, habitID, completedAt, completionDate, xpEarned, streakBonus)
	if err != nil {
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

// ExistsForDay reports whether the habit already has a completion for the
// given calendar day.
func (r *CompletionRepo) ExistsForDay(ctx context.Context, habitID int64, completionDate string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM habit_completions WHERE habit_id = ? AND completion_date = ?
	`, habitID, completionDate).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("completion exists: %w", err)
	}
	return n > 0, nil
}

// HabitIDsForDay returns the user's habits completed on the given day.
func (r *CompletionRepo) HabitIDsForDay(ctx context.Context, userID int64, completionDate string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT hc.habit_id
		FROM habit_completions hc
		JOIN habits h ON hc.habit_id = h.id
		WHERE h.user_id = ? AND hc.completion_date = ?
	`, userID, completionDate)
	if err != nil {
		return nil, fmt.Errorf("completion day list: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("completion day scan: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion day rows: %w", err)
	}
	return out, nil
}

func (r *CompletionRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM habit_completions hc
		JOIN habits h ON hc.habit_id = h.id
		WHERE h.user_id = ?
	`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}

func (r *CompletionRepo) DeleteByHabit(ctx context.Context, habitID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habit_completions WHERE habit_id = ?`, habitID)
	if err != nil {
		return fmt.Errorf("completion delete by habit: %w", err)
	}
	return nil
}

// DailyStats returns per-day completion counts and XP since the given day.
func (r *CompletionRepo) DailyStats(ctx context.Context, userID int64, sinceDate string) ([]DailyCompletionStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT hc.completion_date, COUNT(*), COALESCE(SUM(hc.xp_earned), 0)
		FROM habit_completions hc
		JOIN habits h ON hc.habit_id = h.id
		WHERE h.user_id = ? AND hc.completion_date >= ?
		GROUP BY hc.completion_date
		ORDER BY hc.completion_date
	`, userID, sinceDate)
	if err != nil {
		return nil, fmt.Errorf("completion daily stats: %w", err)
	}
	defer rows.Close()

	var out []DailyCompletionStat
	for rows.Next() {
		var s DailyCompletionStat
		if err := rows.Scan(&s.Date, &s.Count, &s.XP); err != nil {
			return nil, fmt.Errorf("completion daily stats scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion daily stats rows: %w", err)
	}
	return out, nil
}

// CategoryStats returns completion counts grouped by habit category.
func (r *CompletionRepo) CategoryStats(ctx context.Context, userID int64, sinceDate string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT h.category, COUNT(*)
		FROM habit_completions hc
		JOIN habits h ON hc.habit_id = h.id
		WHERE h.user_id = ? AND hc.completion_date >= ?
		GROUP BY h.category
	`, userID, sinceDate)
	if err != nil {
		return nil, fmt.Errorf("completion category stats: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("completion category stats scan: %w", err)
		}
		out[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion category stats rows: %w", err)
	}
	return out, nil
}
