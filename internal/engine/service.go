package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"goalquest/internal/storage"
)

// Service is the progression engine. Every operation takes the user ID
// explicitly; nothing assumes an ambient singleton.
type Service struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time

	users        *storage.UserRepo
	habits       *storage.HabitRepo
	completions  *storage.CompletionRepo
	goals        *storage.GoalRepo
	achievements *storage.AchievementRepo
	shop         *storage.ShopRepo
	quotes       *storage.QuoteRepo
}

func NewService(db *sql.DB, log zerolog.Logger) *Service {
	return &Service{
		db:           db,
		log:          log,
		now:          time.Now,
		users:        storage.NewUserRepo(db),
		habits:       storage.NewHabitRepo(db),
		completions:  storage.NewCompletionRepo(db),
		goals:        storage.NewGoalRepo(db),
		achievements: storage.NewAchievementRepo(db),
		shop:         storage.NewShopRepo(db),
		quotes:       storage.NewQuoteRepo(db),
	}
}

func (s *Service) UserRepo() *storage.UserRepo   { return s.users }
func (s *Service) HabitRepo() *storage.HabitRepo { return s.habits }
func (s *Service) GoalRepo() *storage.GoalRepo   { return s.goals }

// today returns the current calendar day in the local timezone; habit
// completion idempotency keys on this value.
func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// GetUser loads a user by ID, or ErrNotFound.
func (s *Service) GetUser(ctx context.Context, userID int64) (*storage.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return u, nil
}

// GetOrCreateUser returns the install's user row, creating it on first run.
func (s *Service) GetOrCreateUser(ctx context.Context, name string) (*storage.User, error) {
	u, err := s.users.First(ctx)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Hunter"
	}
	id, err := s.users.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", id).Str("name", name).Msg("created user")
	return s.GetUser(ctx, id)
}
