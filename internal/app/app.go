package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/blog-platform/internal/config"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/search"
	"github.com/example/blog-platform/internal/session"
	"github.com/example/blog-platform/internal/transport/http"
)

type Application struct {
	Config   *config.Config
	DB       *db.Database
	Sessions *session.RedisStore
	Search   *search.Elastic
	Router   http.Router
}

func Initialize() (*Application, error) {
	cfg := config.Load()

	database, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
		&models.ActivityLog{},
	); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	if err := database.EnsureVisibilityIndex(); err != nil {
		return nil, fmt.Errorf("ensure visibility index: %w", err)
	}

	sessions, err := session.NewRedisStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	es, err := search.NewElastic(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := es.EnsurePostsIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure ES index: %w", err)
	}

	r := http.NewRouter(cfg, database, sessions, es)

	return &Application{
		Config:   cfg,
		DB:       database,
		Sessions: sessions,
		Search:   es,
		Router:   r,
	}, nil
}

func (a *Application) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}
	if a.Sessions != nil {
		_ = a.Sessions.Close()
	}
}
