package services

import (
	"context"

	"github.com/skills4mind/events-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type StatsService struct {
	stats     models.StatsRepo
	ancillary models.AncillaryRepo
}

func NewStatsService(stats models.StatsRepo, ancillary models.AncillaryRepo) *StatsService {
	return &StatsService{
		stats:     stats,
		ancillary: ancillary,
	}
}

func (ss *StatsService) DescriptionStats(ctx context.Context) (*models.DescriptionStats, error) {
	return ss.stats.DescriptionStats(ctx)
}

func (ss *StatsService) MediaEventsByCreator(ctx context.Context) ([]models.CreatorMediaStats, error) {
	return ss.stats.MediaEventsByCreator(ctx)
}

func (ss *StatsService) ListIncidents(ctx context.Context, limit int) ([]bson.M, error) {
	return ss.ancillary.ListCollection(ctx, models.IncidentsColName, limit)
}

func (ss *StatsService) ListServices(ctx context.Context, limit int) ([]bson.M, error) {
	return ss.ancillary.ListCollection(ctx, models.ServicesColName, limit)
}
