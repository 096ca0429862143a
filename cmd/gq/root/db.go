package root

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"goalquest/internal/advisor"
	"goalquest/internal/config"
	"goalquest/internal/engine"
	"goalquest/internal/storage"
)

// app bundles everything a command needs. The user row is resolved eagerly
// since every command operates on the single local profile.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	svc    *engine.Service
	userID int64
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	svc := engine.NewService(db, log)
	user, err := svc.GetOrCreateUser(ctx, "Hunter")
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &app{cfg: cfg, log: log, svc: svc, userID: user.ID}, cleanup, nil
}

func (a *app) advisor() *advisor.Advisor {
	return advisor.New(a.cfg.OpenAIKey, a.cfg.OpenAIBaseURL, a.cfg.AIModel, a.cfg.AITimeout, a.log)
}
