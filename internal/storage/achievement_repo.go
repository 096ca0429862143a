package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

func (r *AchievementRepo) ListAll(ctx context.Context) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, key, title, description, category, tier, xp_reward, requirement_type, requirement_value
		FROM achievements
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var a Achievement
		var description, category, reqType sql.NullString
		var reqValue sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Key, &a.Title, &description, &category, &a.Tier, &a.XPReward, &reqType, &reqValue); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		a.Description = description.String
		a.Category = category.String
		a.RequirementType = reqType.String
		a.RequirementValue = int(reqValue.Int64)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

// UnlockedIDs returns the achievement IDs already unlocked by the user.
func (r *AchievementRepo) UnlockedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT achievement_id FROM user_achievements WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("unlocked achievements: %w", err)
	}
	defer rows.Close()

	out := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unlocked achievements scan: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unlocked achievements rows: %w", err)
	}
	return out, nil
}

// Unlock records the pair once; repeated calls are no-ops. Returns true when
// the row was newly inserted.
func (r *AchievementRepo) Unlock(ctx context.Context, userID, achievementID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_achievements (user_id, achievement_id) VALUES (?, ?)
	`, userID, achievementID)
	if err != nil {
		return false, fmt.Errorf("achievement unlock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("achievement unlock rows affected: %w", err)
	}
	return n > 0, nil
}
