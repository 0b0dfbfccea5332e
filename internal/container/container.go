package container

import (
	"log/slog"

	"github.com/skills4mind/events-api/internal/config"
	"github.com/skills4mind/events-api/internal/models"
	"github.com/skills4mind/events-api/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Config         *config.Config
	MongoDBClient  *mongo.Client
	EventService   *services.EventService
	AccountService *services.AccountService
	StatsService   *services.StatsService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config, mongoDBClient *mongo.Client) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	eventService := services.NewEventService(repo, cfg.StatsExportPath)
	accountService := services.NewAccountService(repo, cfg.JWTSecret)
	statsService := services.NewStatsService(repo, repo)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		EventService:   eventService,
		AccountService: accountService,
		StatsService:   statsService,
	}
}
