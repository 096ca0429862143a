package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			level INTEGER DEFAULT 1,
			current_xp INTEGER DEFAULT 0,
			total_xp INTEGER DEFAULT 0,
			gold INTEGER DEFAULT 100,
			gems INTEGER DEFAULT 10,
			strength INTEGER DEFAULT 1,
			intelligence INTEGER DEFAULT 1,
			vitality INTEGER DEFAULT 1,
			agility INTEGER DEFAULT 1,
			sense INTEGER DEFAULT 1,
			willpower INTEGER DEFAULT 1,
			current_streak INTEGER DEFAULT 0,
			best_streak INTEGER DEFAULT 0,
			last_activity_date TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT DEFAULT 'personal',
			difficulty INTEGER DEFAULT 3,
			xp_reward INTEGER DEFAULT 100,
			target_stat TEXT DEFAULT 'willpower',
			frequency TEXT DEFAULT 'daily',
			streak INTEGER DEFAULT 0,
			best_streak INTEGER DEFAULT 0,
			total_completions INTEGER DEFAULT 0,
			is_priority INTEGER DEFAULT 0,
			is_active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ai_tip TEXT,
			FOREIGN KEY (user_id) REFERENCES user(id)
		);`,
		// One completion per habit per calendar day is the core idempotency
		// invariant; the unique index is the last line of defense.
		`CREATE TABLE IF NOT EXISTS habit_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id INTEGER NOT NULL,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completion_date TEXT NOT NULL,
			xp_earned INTEGER DEFAULT 0,
			streak_bonus INTEGER DEFAULT 0,
			FOREIGN KEY (habit_id) REFERENCES habits(id),
			UNIQUE(habit_id, completion_date)
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT DEFAULT 'personal',
			difficulty INTEGER DEFAULT 3,
			xp_reward INTEGER DEFAULT 2000,
			target_stat TEXT DEFAULT 'intelligence',
			due_date DATETIME,
			estimated_weeks INTEGER,
			is_completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES user(id)
		);`,
		`CREATE TABLE IF NOT EXISTS goal_steps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			goal_id INTEGER NOT NULL,
			step_number INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			estimated_duration TEXT,
			xp_reward INTEGER DEFAULT 200,
			is_completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			FOREIGN KEY (goal_id) REFERENCES goals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS shop_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			item_type TEXT,
			rarity TEXT DEFAULT 'common',
			gold_cost INTEGER DEFAULT 0,
			gem_cost INTEGER DEFAULT 0,
			level_required INTEGER DEFAULT 1,
			effects TEXT,
			is_available INTEGER DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS user_inventory (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			item_id INTEGER NOT NULL,
			quantity INTEGER DEFAULT 1,
			purchased_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES user(id),
			FOREIGN KEY (item_id) REFERENCES shop_items(id),
			UNIQUE(user_id, item_id)
		);`,
		`CREATE TABLE IF NOT EXISTS wisdom_quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quote TEXT NOT NULL,
			author TEXT,
			source TEXT,
			tradition TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT,
			tier TEXT DEFAULT 'bronze',
			xp_reward INTEGER DEFAULT 100,
			requirement_type TEXT,
			requirement_value INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			achievement_id INTEGER NOT NULL,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES user(id),
			FOREIGN KEY (achievement_id) REFERENCES achievements(id),
			UNIQUE(user_id, achievement_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_habit_completions_date ON habit_completions(completion_date);`,
		`CREATE INDEX IF NOT EXISTS idx_goal_steps_goal_id ON goal_steps(goal_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if err := seedShopItems(ctx, db); err != nil {
		return err
	}
	if err := seedQuotes(ctx, db); err != nil {
		return err
	}
	return seedAchievements(ctx, db)
}

func tableEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return n == 0, nil
}

func seedShopItems(ctx context.Context, db *sql.DB) error {
	empty, err := tableEmpty(ctx, db, "shop_items")
	if err != nil || !empty {
		return err
	}

	items := []struct {
		name, desc, itemType, rarity string
		gold, gems, level            int
		effects                      string
	}{
		{"XP Boost (Minor)", "Gain 25% more XP for 1 hour", "consumable", "common", 100, 0, 1, `{"xp_multiplier": 1.25, "duration_hours": 1}`},
		{"XP Boost (Major)", "Gain 50% more XP for 2 hours", "consumable", "uncommon", 250, 0, 5, `{"xp_multiplier": 1.5, "duration_hours": 2}`},
		{"Streak Shield", "Protect your streak for one missed day", "consumable", "rare", 500, 0, 10, `{"streak_protection": 1}`},
		{"Motivation Elixir", "Double XP for next habit completion", "consumable", "uncommon", 150, 0, 5, `{"next_habit_multiplier": 2}`},
		{"XP Boost (Legendary)", "Double XP for 24 hours", "consumable", "legendary", 0, 50, 25, `{"xp_multiplier": 2, "duration_hours": 24}`},
		{"Strength Elixir", "+5 temporary Strength for 24h", "boost", "rare", 300, 0, 15, `{"stat": "strength", "boost": 5}`},
		{"Wisdom Scroll", "+5 temporary Intelligence for 24h", "boost", "rare", 300, 0, 15, `{"stat": "intelligence", "boost": 5}`},
	}
	for _, it := range items {
		_, err := db.ExecContext(ctx, `
			INSERT INTO shop_items (name, description, item_type, rarity, gold_cost, gem_cost, level_required, effects)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, it.name, it.desc, it.itemType, it.rarity, it.gold, it.gems, it.level, it.effects)
		if err != nil {
			return fmt.Errorf("seed shop items: %w", err)
		}
	}
	return nil
}

func seedQuotes(ctx context.Context, db *sql.DB) error {
	empty, err := tableEmpty(ctx, db, "wisdom_quotes")
	if err != nil || !empty {
		return err
	}

	quotes := [][4]string{
		{"The impediment to action advances action. What stands in the way becomes the way.", "Marcus Aurelius", "Meditations", "stoic"},
		{"We suffer more in imagination than in reality.", "Seneca", "Letters", "stoic"},
		{"No man is free who is not master of himself.", "Epictetus", "Discourses", "stoic"},
		{"I can do all things through Christ who strengthens me.", "Philippians 4:13", "Bible", "biblical"},
		{"Trust in the Lord with all your heart.", "Proverbs 3:5", "Bible", "biblical"},
		{"The journey of a thousand miles begins with a single step.", "Lao Tzu", "Tao Te Ching", "eastern"},
		{"The mind is everything. What you think you become.", "Buddha", "Dhammapada", "eastern"},
		{"Today is victory over yourself of yesterday.", "Miyamoto Musashi", "Book of Five Rings", "samurai"},
		{"Think lightly of yourself and deeply of the world.", "Miyamoto Musashi", "Book of Five Rings", "samurai"},
	}
	for _, q := range quotes {
		_, err := db.ExecContext(ctx, `
			INSERT INTO wisdom_quotes (quote, author, source, tradition)
			VALUES (?, ?, ?, ?)
		`, q[0], q[1], q[2], q[3])
		if err != nil {
			return fmt.Errorf("seed quotes: %w", err)
		}
	}
	return nil
}

func seedAchievements(ctx context.Context, db *sql.DB) error {
	empty, err := tableEmpty(ctx, db, "achievements")
	if err != nil || !empty {
		return err
	}

	achievements := []struct {
		key, title, desc, category, tier string
		xp                               int
		reqType                          string
		reqValue                         int
	}{
		{"first_flame", "First Flame", "Complete your first habit", "streaks", "bronze", 100, "completions", 1},
		{"kindling", "Kindling", "Maintain a 7-day streak", "streaks", "bronze", 200, "streak", 7},
		{"bonfire", "Bonfire", "Maintain a 14-day streak", "streaks", "silver", 400, "streak", 14},
		{"inferno", "Inferno", "Maintain a 30-day streak", "streaks", "gold", 800, "streak", 30},
		{"awakened", "Awakened", "Reach Level 5", "levels", "bronze", 150, "level", 5},
		{"novice_hunter", "Novice Hunter", "Reach Level 10", "levels", "bronze", 300, "level", 10},
		{"habit_former", "Habit Former", "Create 5 habits", "habits", "bronze", 100, "habit_count", 5},
		{"goal_setter", "Goal Setter", "Create your first goal", "goals", "bronze", 100, "goal_count", 1},
	}
	for _, a := range achievements {
		_, err := db.ExecContext(ctx, `
			INSERT INTO achievements (key, title, description, category, tier, xp_reward, requirement_type, requirement_value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, a.key, a.title, a.desc, a.category, a.tier, a.xp, a.reqType, a.reqValue)
		if err != nil {
			return fmt.Errorf("seed achievements: %w", err)
		}
	}
	return nil
}
