package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type GoalRepo struct {
	db DBTX
}

func NewGoalRepo(db DBTX) *GoalRepo {
	return &GoalRepo{db: db}
}

type GoalInsert struct {
	UserID         int64
	Title          string
	Description    *string
	Category       string
	Difficulty     int
	XPReward       int
	TargetStat     string
	DueDate        *time.Time
	EstimatedWeeks *int
}

type GoalStepInsert struct {
	StepNumber        int
	Title             string
	Description       *string
	EstimatedDuration *string
	XPReward          int
}

const goalColumns = `id, user_id, title, description, category, difficulty, xp_reward,
	target_stat, due_date, estimated_weeks, is_completed, completed_at, created_at`

const stepColumns = `id, goal_id, step_number, title, description, estimated_duration,
	xp_reward, is_completed, completed_at`

func (r *GoalRepo) Insert(ctx context.Context, in GoalInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (user_id, title, description, category, difficulty, xp_reward, target_stat, due_date, estimated_weeks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.UserID, in.Title, in.Description, in.Category, in.Difficulty, in.XPReward, in.TargetStat, in.DueDate, in.EstimatedWeeks)
	if err != nil {
		return 0, fmt.Errorf("goal insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal last insert id: %w", err)
	}
	return id, nil
}

func (r *GoalRepo) InsertStep(ctx context.Context, goalID int64, in GoalStepInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goal_steps (goal_id, step_number, title, description, estimated_duration, xp_reward)
		VALUES (?, ?, ?, ?, ?, ?)
	`, goalID, in.StepNumber, in.Title, in.Description, in.EstimatedDuration, in.XPReward)
	if err != nil {
		return 0, fmt.Errorf("goal step insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal step last insert id: %w", err)
	}
	return id, nil
}

func (r *GoalRepo) Get(ctx context.Context, id int64) (*Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	return scanGoal(row)
}

func (r *GoalRepo) ListByUser(ctx context.Context, userID int64, includeCompleted bool) ([]Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ?`
	if !includeCompleted {
		query += ` AND is_completed = 0`
	}
	query += ` ORDER BY due_date ASC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal rows: %w", err)
	}
	return out, nil
}

func (r *GoalRepo) GetStep(ctx context.Context, stepID int64) (*GoalStep, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stepColumns+` FROM goal_steps WHERE id = ?`, stepID)
	return scanStep(row)
}

func (r *GoalRepo) ListSteps(ctx context.Context, goalID int64) ([]GoalStep, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+stepColumns+` FROM goal_steps WHERE goal_id = ? ORDER BY step_number
	`, goalID)
	if err != nil {
		return nil, fmt.Errorf("goal step list: %w", err)
	}
	defer rows.Close()

	var out []GoalStep
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal step rows: %w", err)
	}
	return out, nil
}

// StepCounts returns (completed, total) for a goal. Progress is always
// derived from these, never stored.
func (r *GoalRepo) StepCounts(ctx context.Context, goalID int64) (completed, total int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(is_completed), 0), COUNT(*) FROM goal_steps WHERE goal_id = ?
	`, goalID).Scan(&completed, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("goal step counts: %w", err)
	}
	return completed, total, nil
}

func (r *GoalRepo) MarkStepCompleted(ctx context.Context, stepID int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE goal_steps SET is_completed = 1, completed_at = ? WHERE id = ?
	`, at, stepID)
	if err != nil {
		return fmt.Errorf("goal step mark completed: %w", err)
	}
	return nil
}

func (r *GoalRepo) MarkCompleted(ctx context.Context, goalID int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE goals SET is_completed = 1, completed_at = ? WHERE id = ?
	`, at, goalID)
	if err != nil {
		return fmt.Errorf("goal mark completed: %w", err)
	}
	return nil
}

func (r *GoalRepo) Delete(ctx context.Context, goalID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goal_steps WHERE goal_id = ?`, goalID); err != nil {
		return fmt.Errorf("goal steps delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, goalID); err != nil {
		return fmt.Errorf("goal delete: %w", err)
	}
	return nil
}

func (r *GoalRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("goal count: %w", err)
	}
	return n, nil
}

func scanGoal(row scanner) (*Goal, error) {
	var (
		g           Goal
		description sql.NullString
		dueDate     sql.NullTime
		weeks       sql.NullInt64
		isCompleted int
		completedAt sql.NullTime
	)
	err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &description, &g.Category, &g.Difficulty, &g.XPReward,
		&g.TargetStat, &dueDate, &weeks, &isCompleted, &completedAt, &g.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("goal scan: %w", err)
	}
	if description.Valid {
		v := description.String
		g.Description = &v
	}
	if dueDate.Valid {
		v := dueDate.Time
		g.DueDate = &v
	}
	if weeks.Valid {
		v := int(weeks.Int64)
		g.EstimatedWeeks = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		g.CompletedAt = &v
	}
	g.IsCompleted = isCompleted != 0
	return &g, nil
}

func scanStep(row scanner) (*GoalStep, error) {
	var (
		s           GoalStep
		description sql.NullString
		duration    sql.NullString
		isCompleted int
		completedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID, &s.GoalID, &s.StepNumber, &s.Title, &description, &duration,
		&s.XPReward, &isCompleted, &completedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("goal step scan: %w", err)
	}
	if description.Valid {
		v := description.String
		s.Description = &v
	}
	if duration.Valid {
		v := duration.String
		s.EstimatedDuration = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		s.CompletedAt = &v
	}
	s.IsCompleted = isCompleted != 0
	return &s, nil
}
